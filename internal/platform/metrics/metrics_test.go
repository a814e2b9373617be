package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStoreQuery(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		err      error
		wantType string
	}{
		{"success", "list", nil, ""},
		{"timeout", "get", fmt.Errorf("get orders: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", "count", context.Canceled, "canceled"},
		{"other", "list_since", errors.New("connection reset"), "query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before float64
			if tt.wantType != "" {
				before = testutil.ToFloat64(StoreQueryErrors.WithLabelValues("orders", tt.op, tt.wantType))
			}

			RecordStoreQuery("orders", tt.op, 3*time.Millisecond, tt.err)

			if tt.wantType != "" {
				after := testutil.ToFloat64(StoreQueryErrors.WithLabelValues("orders", tt.op, tt.wantType))
				assert.Equal(t, before+1, after)
			}
			assert.Positive(t, testutil.CollectAndCount(StoreQueryDuration))
		})
	}
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/vendors/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", Handler())

	counter := APIRequestsTotal.WithLabelValues(http.MethodGet, "/vendors/:id", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vendors/"+id, nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	unmatched := APIRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before = testutil.ToFloat64(unmatched)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(unmatched))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "dashboard_api_requests_total"))
}
