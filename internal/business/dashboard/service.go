package dashboard

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rentwise/admin-dashboard/pkg/market"
	"github.com/rentwise/admin-dashboard/pkg/model"
)

// Service answers dashboard queries by reading the record store and handing
// the rows to the market aggregation functions. It keeps no state between calls.
type Service struct {
	users   UserStore
	vendors VendorStore
	orders  OrderStore
	now     func() time.Time
	observe QueryObserver
	logger  *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for growth periods.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithQueryObserver registers a callback for store query timings.
func WithQueryObserver(fn QueryObserver) Option {
	return func(s *Service) { s.observe = fn }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(users UserStore, vendors VendorStore, orders OrderStore, opts ...Option) *Service {
	s := &Service{
		users:   users,
		vendors: vendors,
		orders:  orders,
		now:     time.Now,
		observe: func(string, string, time.Duration, error) {},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// track runs one store query and reports it to the observer.
func (s *Service) track(collection, op string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.observe(collection, op, time.Since(start), err)
	if err != nil {
		s.logger.Debug("store query failed",
			zap.String("collection", collection),
			zap.String("op", op),
			zap.Error(err),
		)
	}
	return queryErr(collection, op, err)
}

func (s *Service) listUsers(ctx context.Context) (users []model.UserRecord, err error) {
	err = s.track(CollectionUsers, "list", func() error {
		users, err = s.users.ListUsers(ctx)
		return err
	})
	return users, err
}

func (s *Service) listUsersSince(ctx context.Context, since time.Time) (users []model.UserRecord, err error) {
	err = s.track(CollectionUsers, "list_since", func() error {
		users, err = s.users.ListUsersCreatedSince(ctx, since)
		return err
	})
	return users, err
}

func (s *Service) listVendors(ctx context.Context) (vendors []model.VendorRecord, err error) {
	err = s.track(CollectionVendors, "list", func() error {
		vendors, err = s.vendors.ListVendors(ctx)
		return err
	})
	return vendors, err
}

func (s *Service) listOrders(ctx context.Context) (orders []model.OrderRecord, err error) {
	err = s.track(CollectionOrders, "list", func() error {
		orders, err = s.orders.ListOrders(ctx)
		return err
	})
	return orders, err
}

func (s *Service) listOrdersSince(ctx context.Context, since time.Time) (orders []model.OrderRecord, err error) {
	err = s.track(CollectionOrders, "list_since", func() error {
		orders, err = s.orders.ListOrdersCreatedSince(ctx, since)
		return err
	})
	return orders, err
}

// snapshot is the three collections fetched for one request.
type snapshot struct {
	users   []model.UserRecord
	vendors []model.VendorRecord
	orders  []model.OrderRecord
}

// fetchAll reads the three collections concurrently. The first failure
// cancels the remaining queries and fails the request.
func (s *Service) fetchAll(ctx context.Context) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.users, err = s.listUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.vendors, err = s.listVendors(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.orders, err = s.listOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// Locations returns metrics for every location with at least one located row.
func (s *Service) Locations(ctx context.Context) ([]model.LocationMetrics, error) {
	snap, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	aggs := market.AggregateLocations(snap.users, snap.vendors, snap.orders)
	s.logger.Debug("aggregated locations", zap.Int("locations", len(aggs)))
	return market.LocationMetricsList(aggs), nil
}

// Location returns metrics for one city, matched case-insensitively.
func (s *Service) Location(ctx context.Context, city string) (model.LocationMetrics, error) {
	if strings.TrimSpace(city) == "" {
		return model.LocationMetrics{}, ErrNotFound
	}
	snap, err := s.fetchAll(ctx)
	if err != nil {
		return model.LocationMetrics{}, err
	}
	agg, found := market.LocationDetail(city, snap.users, snap.vendors, snap.orders)
	if !found {
		return model.LocationMetrics{}, ErrNotFound
	}
	return market.DeriveMetrics(agg), nil
}

// TopRevenueLocations ranks locations by order revenue.
func (s *Service) TopRevenueLocations(ctx context.Context) ([]model.TopRevenueLocation, error) {
	orders, err := s.listOrders(ctx)
	if err != nil {
		return nil, err
	}
	return market.TopRevenueLocations(orders), nil
}

// Opportunities ranks locations by users per vendor.
func (s *Service) Opportunities(ctx context.Context) ([]model.OpportunityLocation, error) {
	snap, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	aggs := market.AggregateLocations(snap.users, snap.vendors, snap.orders)
	return market.TopOpportunities(aggs), nil
}

// TotalOrders counts orders with a store-side count query.
func (s *Service) TotalOrders(ctx context.Context) (total int64, err error) {
	err = s.track(CollectionOrders, "count", func() error {
		total, err = s.orders.CountOrders(ctx)
		return err
	})
	return total, err
}

// OrderStatusReview tallies orders by status.
func (s *Service) OrderStatusReview(ctx context.Context) (model.OrderStatusReview, error) {
	orders, err := s.listOrders(ctx)
	if err != nil {
		return model.OrderStatusReview{}, err
	}
	return market.TallyOrderStatuses(market.OrderStatuses(orders)), nil
}

// OrderGrowth compares this week's orders with last week's.
func (s *Service) OrderGrowth(ctx context.Context) (model.OrderGrowth, error) {
	now := s.now()
	lastWeek, _ := market.WeekPeriods(now)
	orders, err := s.listOrdersSince(ctx, lastWeek.Start)
	if err != nil {
		return model.OrderGrowth{}, err
	}
	return market.WeeklyOrderGrowth(orders, now), nil
}

// AverageOrderValue summarizes order revenue.
func (s *Service) AverageOrderValue(ctx context.Context) (model.OrderValueSummary, error) {
	orders, err := s.listOrders(ctx)
	if err != nil {
		return model.OrderValueSummary{}, err
	}
	return market.OrderValue(orders), nil
}

// RevenueDistribution splits order revenue by location.
func (s *Service) RevenueDistribution(ctx context.Context) (model.RevenueDistribution, error) {
	orders, err := s.listOrders(ctx)
	if err != nil {
		return model.RevenueDistribution{}, err
	}
	return market.RevenueDistributionOf(orders), nil
}

// Order returns one order with its joined user normalized to first-or-default.
func (s *Service) Order(ctx context.Context, id int64) (model.OrderDetail, error) {
	var (
		order model.OrderRecord
		found bool
	)
	err := s.track(CollectionOrders, "get", func() (err error) {
		order, found, err = s.orders.GetOrder(ctx, id)
		return err
	})
	if err != nil {
		return model.OrderDetail{}, err
	}
	if !found {
		return model.OrderDetail{}, ErrNotFound
	}
	return model.OrderDetail{OrderRecord: order, Customer: order.UserDetails.FirstOrDefault()}, nil
}

// UserGrowth compares this week's signups with last week's.
func (s *Service) UserGrowth(ctx context.Context) (model.UserGrowth, error) {
	now := s.now()
	lastWeek, _ := market.WeekPeriods(now)
	users, err := s.listUsersSince(ctx, lastWeek.Start)
	if err != nil {
		return model.UserGrowth{}, err
	}
	return market.WeeklyUserGrowth(users, now), nil
}

// DailyUserGrowth compares today's signups with yesterday's.
func (s *Service) DailyUserGrowth(ctx context.Context) (model.DailyUserGrowth, error) {
	now := s.now()
	yesterday, _ := market.DayPeriods(now)
	users, err := s.listUsersSince(ctx, yesterday.Start)
	if err != nil {
		return model.DailyUserGrowth{}, err
	}
	return market.DailyUserGrowth(users, now), nil
}

// Engagement relates users to the orders they place.
func (s *Service) Engagement(ctx context.Context) (model.Engagement, error) {
	var (
		users  []model.UserRecord
		orders []model.OrderRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.listUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.listOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Engagement{}, err
	}
	return market.EngagementOf(users, orders), nil
}

// TopUserLocations ranks locations by the total spend of their users.
func (s *Service) TopUserLocations(ctx context.Context) ([]model.TopUserLocation, error) {
	users, err := s.listUsers(ctx)
	if err != nil {
		return nil, err
	}
	return market.TopUserLocations(users), nil
}

// User returns one user.
func (s *Service) User(ctx context.Context, id int64) (model.UserRecord, error) {
	var (
		user  model.UserRecord
		found bool
	)
	err := s.track(CollectionUsers, "get", func() (err error) {
		user, found, err = s.users.GetUser(ctx, id)
		return err
	})
	if err != nil {
		return model.UserRecord{}, err
	}
	if !found {
		return model.UserRecord{}, ErrNotFound
	}
	return user, nil
}

// TopVendorLocations ranks locations by vendor count.
func (s *Service) TopVendorLocations(ctx context.Context) ([]model.TopVendorLocation, error) {
	vendors, err := s.listVendors(ctx)
	if err != nil {
		return nil, err
	}
	return market.TopVendorLocations(vendors), nil
}

// AverageVendorRevenue is the mean vendor revenue.
func (s *Service) AverageVendorRevenue(ctx context.Context) (float64, error) {
	vendors, err := s.listVendors(ctx)
	if err != nil {
		return 0, err
	}
	return market.AverageVendorRevenue(vendors), nil
}

// VerificationSummary tallies vendor verification states.
func (s *Service) VerificationSummary(ctx context.Context) (model.VerificationSummary, error) {
	vendors, err := s.listVendors(ctx)
	if err != nil {
		return model.VerificationSummary{}, err
	}
	return market.TallyVerification(market.VerificationStatuses(vendors)), nil
}

// OnboardingSummary tallies vendor onboarding states.
func (s *Service) OnboardingSummary(ctx context.Context) (model.OnboardingSummary, error) {
	vendors, err := s.listVendors(ctx)
	if err != nil {
		return model.OnboardingSummary{}, err
	}
	return market.TallyOnboarding(market.OnboardingStatuses(vendors)), nil
}

// Vendor returns one vendor.
func (s *Service) Vendor(ctx context.Context, id int64) (model.VendorRecord, error) {
	var (
		vendor model.VendorRecord
		found  bool
	)
	err := s.track(CollectionVendors, "get", func() (err error) {
		vendor, found, err = s.vendors.GetVendor(ctx, id)
		return err
	})
	if err != nil {
		return model.VendorRecord{}, err
	}
	if !found {
		return model.VendorRecord{}, ErrNotFound
	}
	return vendor, nil
}
