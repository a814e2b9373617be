package http

import (
	"github.com/gin-gonic/gin"
)

func (r *Router) userGrowth(c *gin.Context) {
	growth, err := r.svc.UserGrowth(c.Request.Context())
	respond(c, growth, err)
}

func (r *Router) dailyUserGrowth(c *gin.Context) {
	growth, err := r.svc.DailyUserGrowth(c.Request.Context())
	respond(c, growth, err)
}

func (r *Router) engagement(c *gin.Context) {
	eng, err := r.svc.Engagement(c.Request.Context())
	respond(c, eng, err)
}

func (r *Router) topUserLocations(c *gin.Context) {
	top, err := r.svc.TopUserLocations(c.Request.Context())
	respond(c, gin.H{"topLocations": top}, err)
}

func (r *Router) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := r.svc.User(c.Request.Context(), id)
	respond(c, user, err)
}
