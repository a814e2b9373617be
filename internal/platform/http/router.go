package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentwise/admin-dashboard/internal/platform/logger"
	"github.com/rentwise/admin-dashboard/internal/platform/metrics"
	"github.com/rentwise/admin-dashboard/pkg/model"
)

// DashboardService is the query surface the handlers call.
type DashboardService interface {
	Locations(ctx context.Context) ([]model.LocationMetrics, error)
	Location(ctx context.Context, city string) (model.LocationMetrics, error)
	TopRevenueLocations(ctx context.Context) ([]model.TopRevenueLocation, error)
	Opportunities(ctx context.Context) ([]model.OpportunityLocation, error)

	TotalOrders(ctx context.Context) (int64, error)
	OrderStatusReview(ctx context.Context) (model.OrderStatusReview, error)
	OrderGrowth(ctx context.Context) (model.OrderGrowth, error)
	AverageOrderValue(ctx context.Context) (model.OrderValueSummary, error)
	RevenueDistribution(ctx context.Context) (model.RevenueDistribution, error)
	Order(ctx context.Context, id int64) (model.OrderDetail, error)

	UserGrowth(ctx context.Context) (model.UserGrowth, error)
	DailyUserGrowth(ctx context.Context) (model.DailyUserGrowth, error)
	Engagement(ctx context.Context) (model.Engagement, error)
	TopUserLocations(ctx context.Context) ([]model.TopUserLocation, error)
	User(ctx context.Context, id int64) (model.UserRecord, error)

	TopVendorLocations(ctx context.Context) ([]model.TopVendorLocation, error)
	AverageVendorRevenue(ctx context.Context) (float64, error)
	VerificationSummary(ctx context.Context) (model.VerificationSummary, error)
	OnboardingSummary(ctx context.Context) (model.OnboardingSummary, error)
	Vendor(ctx context.Context, id int64) (model.VendorRecord, error)
}

// Options configures the router.
type Options struct {
	AllowedOrigins string
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// Router wires HTTP handlers.
type Router struct {
	svc     DashboardService
	origins string
	timeout time.Duration
	logger  *zap.Logger
}

func NewRouter(svc DashboardService, opts Options) *gin.Engine {
	r := &Router{
		svc:     svc,
		origins: opts.AllowedOrigins,
		timeout: opts.RequestTimeout,
		logger:  opts.Logger,
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		requestIDMiddleware(),
		logger.Recovery(r.logger),
		logger.GinMiddleware(r.logger),
		metrics.GinMiddleware(),
		r.corsMiddleware(),
		r.timeoutMiddleware(),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	// The dashboard client calls the routes unprefixed; /api mirrors them.
	r.register(router)
	r.register(router.Group("/api"))

	return router
}

func (r *Router) register(g gin.IRoutes) {
	g.GET("/locations", r.listLocations)
	g.GET("/locations/top-revenue", r.topRevenueLocations)
	g.GET("/locations/opportunities", r.opportunities)
	g.GET("/locations/:city", r.getLocation)

	g.GET("/orders/total-orders", r.totalOrders)
	g.GET("/orders/status-review", r.orderStatusReview)
	g.GET("/orders/growth", r.orderGrowth)
	g.GET("/orders/average-value", r.averageOrderValue)
	g.GET("/orders/revenue-distribution", r.revenueDistribution)
	g.GET("/orders/:id", r.getOrder)

	g.GET("/users/growth", r.userGrowth)
	g.GET("/users/daily-growth", r.dailyUserGrowth)
	g.GET("/users/engagement", r.engagement)
	g.GET("/users/top-locations", r.topUserLocations)
	g.GET("/users/:id", r.getUser)

	g.GET("/vendors/top-vendor-locations", r.topVendorLocations)
	g.GET("/vendors/avg-revenue", r.averageVendorRevenue)
	g.GET("/vendors/verification-status", r.verificationStatus)
	g.GET("/vendors/onboarding-status", r.onboardingStatus)
	g.GET("/vendors/:id", r.getVendor)
}

// RequestIDHeader carries the request ID in and out.
const RequestIDHeader = "X-Request-ID"

// requestIDMiddleware reuses a caller-supplied request ID or mints one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// timeoutMiddleware bounds the store queries of one request.
func (r *Router) timeoutMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), r.timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		if allowed, ok := allowOrigin(trimmed, c.GetHeader("Origin")); ok {
			c.Header("Access-Control-Allow-Origin", allowed)
		}
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

// allowOrigin picks the Access-Control-Allow-Origin value. An empty allowlist
// allows any origin; otherwise only listed origins (or a "*" entry) are echoed.
func allowOrigin(allowlist []string, origin string) (string, bool) {
	if len(allowlist) == 0 {
		return "*", true
	}
	for _, o := range allowlist {
		if o == "*" || o == origin {
			if origin == "" {
				return "*", true
			}
			return origin, true
		}
	}
	return "", false
}
