package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rentwise/admin-dashboard/internal/business/dashboard"
	"github.com/rentwise/admin-dashboard/internal/platform/logger"
)

// fail maps a service error to its status. Store errors are logged and
// replaced by a generic message.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, dashboard.ErrInvalidIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
	case errors.Is(err, dashboard.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		fields := []zap.Field{zap.Error(err)}
		var qe *dashboard.QueryError
		if errors.As(err, &qe) {
			fields = append(fields, zap.String("collection", qe.Collection), zap.String("op", qe.Op))
		}
		logger.FromGin(c).Error("dashboard query failed", fields...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard data"})
	}
}

// respond writes v as 200 JSON, or maps err.
func respond[T any](c *gin.Context, v T, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// pathID parses the :id parameter, answering 400 itself on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := dashboard.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err)
		return 0, false
	}
	return id, true
}
