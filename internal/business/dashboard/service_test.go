package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rentwise/admin-dashboard/internal/repository/memory"
	"github.com/rentwise/admin-dashboard/pkg/model"
	"github.com/rentwise/admin-dashboard/pkg/util"
)

// Wednesday 2026-10-14 12:00 UTC; the week began Monday 2026-10-12.
var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2026, 10, d, 9, 0, 0, 0, time.UTC)
}

func fixtureStore() *memory.Store {
	austin := util.StringPtr("Austin")
	dallas := util.StringPtr("Dallas")
	return &memory.Store{
		Users: []model.UserRecord{
			{ID: 1, Location: austin, TotalSpend: 100.0, CreatedAt: day(6)},
			{ID: 2, Location: austin, TotalSpend: "50", CreatedAt: day(7)},
			{ID: 3, Location: dallas, TotalSpend: 10.0, CreatedAt: day(12)},
			{ID: 4, Location: nil, TotalSpend: nil, CreatedAt: day(13)},
			{ID: 5, Location: dallas, TotalSpend: 5.0, CreatedAt: day(14)},
		},
		Vendors: []model.VendorRecord{
			{ID: 10, Location: austin, Revenue: 1000.0, VerificationStatus: "Completed", OnboardingStatus: "complete"},
			{ID: 11, Location: austin, Revenue: 500.0, VerificationStatus: "pending", OnboardingStatus: "Incomplete"},
			{ID: 12, Location: dallas, Revenue: 0.0, VerificationStatus: "rejected", OnboardingStatus: "pending"},
		},
		Orders: []model.OrderRecord{
			{ID: 100, UserID: 1, Location: austin, TotalAmount: 50.0, Status: "active", CreatedAt: day(8),
				UserDetails: model.ManyUserDetail([]model.UserInfo{{Name: "Ada"}, {Name: "Grace"}})},
			{ID: 101, UserID: 1, Location: austin, TotalAmount: "100", Status: "Pending", CreatedAt: day(13)},
			{ID: 102, UserID: 3, Location: dallas, TotalAmount: 25.0, Status: "completed", CreatedAt: day(14)},
		},
	}
}

func newTestService(store *memory.Store, opts ...Option) *Service {
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewService(store, store, store, opts...)
}

func TestService_Locations(t *testing.T) {
	svc := newTestService(fixtureStore())

	got, err := svc.Locations(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Austin", got[0].Location)
	assert.Equal(t, 2, got[0].UserCount)
	assert.Equal(t, 2, got[0].VendorCount)
	assert.Equal(t, 2, got[0].OrderCount)
	assert.Equal(t, 150.0, got[0].Revenue)
	assert.Equal(t, "1.0users/vendor", got[0].MarketDensity)
	assert.Equal(t, "$75", got[0].AverageOrderValue)

	assert.Equal(t, "Dallas", got[1].Location)
	assert.Equal(t, 2, got[1].UserCount)
}

func TestService_Location(t *testing.T) {
	svc := newTestService(fixtureStore())
	ctx := context.Background()

	t.Run("case-insensitive match", func(t *testing.T) {
		got, err := svc.Location(ctx, "  austin ")
		require.NoError(t, err)
		assert.Equal(t, 2, got.UserCount)
		assert.Equal(t, 150.0, got.Revenue)
	})

	t.Run("no rows", func(t *testing.T) {
		_, err := svc.Location(ctx, "Houston")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank city", func(t *testing.T) {
		_, err := svc.Location(ctx, "   ")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_QueryFailureFailsRequest(t *testing.T) {
	boom := errors.New("connection reset")
	store := fixtureStore()
	store.Fail = map[string]error{CollectionOrders: boom}
	svc := newTestService(store)

	_, err := svc.Locations(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, CollectionOrders, qe.Collection)
	assert.Equal(t, "list", qe.Op)

	_, err = svc.Engagement(context.Background())
	assert.ErrorAs(t, err, &qe)

	// vendor-only endpoints are unaffected
	_, err = svc.VerificationSummary(context.Background())
	assert.NoError(t, err)
}

func TestService_Rankings(t *testing.T) {
	svc := newTestService(fixtureStore())
	ctx := context.Background()

	revenue, err := svc.TopRevenueLocations(ctx)
	require.NoError(t, err)
	require.Len(t, revenue, 2)
	assert.Equal(t, "Austin", revenue[0].Location)
	assert.Equal(t, 150.0, revenue[0].Revenue)

	users, err := svc.TopUserLocations(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Austin", users[0].City)
	assert.Equal(t, 150.0, users[0].Revenue)
	assert.Equal(t, util.UnknownLocation, users[2].City)

	vendors, err := svc.TopVendorLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Austin", vendors[0].Location)
	assert.Equal(t, 1500.0, vendors[0].TotalRevenue)

	opps, err := svc.Opportunities(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, opps)
	assert.Equal(t, "Dallas", opps[0].Location)
}

func TestService_Orders(t *testing.T) {
	svc := newTestService(fixtureStore())
	ctx := context.Background()

	total, err := svc.TotalOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	review, err := svc.OrderStatusReview(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusReview{
		ActiveOrders: 1, PendingOrders: 1, CompletedOrders: 1, TotalOrders: 3,
	}, review)

	value, err := svc.AverageOrderValue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$58.33", value.AverageOrderValue)
	assert.Equal(t, 175.0, value.TotalRevenue)

	dist, err := svc.RevenueDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, dist.Distribution, 2)
	assert.Equal(t, "85.7%", dist.Distribution[0].Share)

	growth, err := svc.OrderGrowth(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.OrderGrowth{OrdersLastWeek: 1, OrdersThisWeek: 2, OrderGrowthRate: "100.00%"}, growth)
}

func TestService_Order(t *testing.T) {
	svc := newTestService(fixtureStore())
	ctx := context.Background()

	got, err := svc.Order(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Customer.Name)

	got, err = svc.Order(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, model.UserInfo{}, got.Customer)

	_, err = svc.Order(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Users(t *testing.T) {
	svc := newTestService(fixtureStore())
	ctx := context.Background()

	growth, err := svc.UserGrowth(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.UserGrowth{UsersLastWeek: 2, NewUsersThisWeek: 3, UserGrowthRate: "50.00%"}, growth)

	daily, err := svc.DailyUserGrowth(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DailyUserGrowth{UsersYesterday: 1, NewUsersToday: 1, DailyGrowthRate: "0.00%"}, daily)

	eng, err := svc.Engagement(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, eng.TotalUsers)
	assert.Equal(t, 2, eng.UniqueActiveUsers)
	assert.Equal(t, "40.00%", eng.ActiveUserRate)
	assert.Equal(t, 1, eng.PendingOrders)
	assert.Equal(t, "33.3%", eng.CartAbandonmentRate)

	user, err := svc.User(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Dallas", *user.Location)

	_, err = svc.User(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Vendors(t *testing.T) {
	svc := newTestService(fixtureStore())
	ctx := context.Background()

	avg, err := svc.AverageVendorRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500.0, avg)

	ver, err := svc.VerificationSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.VerificationSummary{Verified: 1, Pending: 1, Rejected: 1, TotalVendors: 3}, ver)

	onb, err := svc.OnboardingSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.OnboardingSummary{Completed: 1, Pending: 1, Incomplete: 1, TotalVendors: 3}, onb)

	_, err = svc.Vendor(ctx, 10)
	require.NoError(t, err)

	_, err = svc.Vendor(ctx, 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ObservesQueries(t *testing.T) {
	type call struct {
		collection, op string
		failed         bool
	}
	var (
		mu    sync.Mutex
		calls []call
	)
	observe := func(collection, op string, _ time.Duration, err error) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, call{collection, op, err != nil})
	}

	core, logs := observer.New(zapcore.DebugLevel)
	store := fixtureStore()
	store.Fail = map[string]error{CollectionVendors: errors.New("timeout")}
	svc := newTestService(store, WithQueryObserver(observe), WithLogger(zap.New(core)))

	_, err := svc.TotalOrders(context.Background())
	require.NoError(t, err)
	_, err = svc.Vendor(context.Background(), 10)
	require.Error(t, err)

	assert.Equal(t, []call{
		{CollectionOrders, "count", false},
		{CollectionVendors, "get", true},
	}, calls)
	assert.Equal(t, 1, logs.FilterMessage("store query failed").Len())
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{" 7 ", 7, false},
		{"abc", 0, true},
		{"", 0, true},
		{"0", 0, false},
		{"-3", -3, false},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
