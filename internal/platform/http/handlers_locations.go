package http

import (
	"github.com/gin-gonic/gin"
)

func (r *Router) listLocations(c *gin.Context) {
	locations, err := r.svc.Locations(c.Request.Context())
	respond(c, locations, err)
}

func (r *Router) getLocation(c *gin.Context) {
	metrics, err := r.svc.Location(c.Request.Context(), c.Param("city"))
	respond(c, metrics, err)
}

func (r *Router) topRevenueLocations(c *gin.Context) {
	top, err := r.svc.TopRevenueLocations(c.Request.Context())
	respond(c, gin.H{"topLocations": top}, err)
}

func (r *Router) opportunities(c *gin.Context) {
	top, err := r.svc.Opportunities(c.Request.Context())
	respond(c, gin.H{"topLocations": top}, err)
}
