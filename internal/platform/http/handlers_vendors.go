package http

import (
	"github.com/gin-gonic/gin"
)

func (r *Router) topVendorLocations(c *gin.Context) {
	top, err := r.svc.TopVendorLocations(c.Request.Context())
	respond(c, gin.H{"topLocations": top}, err)
}

func (r *Router) averageVendorRevenue(c *gin.Context) {
	avg, err := r.svc.AverageVendorRevenue(c.Request.Context())
	respond(c, gin.H{"averageRevenue": avg}, err)
}

func (r *Router) verificationStatus(c *gin.Context) {
	summary, err := r.svc.VerificationSummary(c.Request.Context())
	respond(c, summary, err)
}

func (r *Router) onboardingStatus(c *gin.Context) {
	summary, err := r.svc.OnboardingSummary(c.Request.Context())
	respond(c, summary, err)
}

func (r *Router) getVendor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	vendor, err := r.svc.Vendor(c.Request.Context(), id)
	respond(c, vendor, err)
}
