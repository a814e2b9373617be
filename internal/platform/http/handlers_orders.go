package http

import (
	"github.com/gin-gonic/gin"
)

func (r *Router) totalOrders(c *gin.Context) {
	total, err := r.svc.TotalOrders(c.Request.Context())
	respond(c, gin.H{"totalOrders": total}, err)
}

func (r *Router) orderStatusReview(c *gin.Context) {
	review, err := r.svc.OrderStatusReview(c.Request.Context())
	respond(c, review, err)
}

func (r *Router) orderGrowth(c *gin.Context) {
	growth, err := r.svc.OrderGrowth(c.Request.Context())
	respond(c, growth, err)
}

func (r *Router) averageOrderValue(c *gin.Context) {
	summary, err := r.svc.AverageOrderValue(c.Request.Context())
	respond(c, summary, err)
}

func (r *Router) revenueDistribution(c *gin.Context) {
	dist, err := r.svc.RevenueDistribution(c.Request.Context())
	respond(c, dist, err)
}

func (r *Router) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := r.svc.Order(c.Request.Context(), id)
	respond(c, order, err)
}
