// Package market folds user, vendor and order rows into per-location
// aggregates and the derived market metrics shown on the dashboard.
//
// Everything here is pure: callers pass rows already fetched from the record
// store, and each call builds its own buckets. Money is accumulated with
// decimal arithmetic so totals do not depend on row order.
package market

import (
	"github.com/shopspring/decimal"

	"github.com/rentwise/admin-dashboard/pkg/metric"
	"github.com/rentwise/admin-dashboard/pkg/model"
	"github.com/rentwise/admin-dashboard/pkg/util"
)

// bucket is a location aggregate under construction.
type bucket struct {
	location    string
	userCount   int
	vendorCount int
	orderCount  int
	revenue     decimal.Decimal
}

func (b *bucket) aggregate() model.LocationAggregate {
	return model.LocationAggregate{
		Location:    b.location,
		UserCount:   b.userCount,
		VendorCount: b.vendorCount,
		OrderCount:  b.orderCount,
		Revenue:     b.revenue.InexactFloat64(),
	}
}

// buckets keeps location buckets in first-seen order.
type buckets struct {
	index map[string]*bucket
	order []*bucket
}

func newBuckets() *buckets {
	return &buckets{index: make(map[string]*bucket)}
}

func (bs *buckets) get(key string) *bucket {
	if b, ok := bs.index[key]; ok {
		return b
	}
	b := &bucket{location: key}
	bs.index[key] = b
	bs.order = append(bs.order, b)
	return b
}

// amount converts a semi-structured amount to an exact decimal.
func amount(v any) decimal.Decimal {
	return decimal.NewFromFloat(util.ToFloat(v))
}

// AggregateLocations builds one aggregate per location seen across the three
// row sets. Rows without a location are left out. Buckets are case-sensitive
// and returned in order of first appearance (users, then vendors, then orders).
// Revenue is the sum of order totals; vendor revenue is not mixed in.
func AggregateLocations(users []model.UserRecord, vendors []model.VendorRecord, orders []model.OrderRecord) []model.LocationAggregate {
	bs := newBuckets()
	for _, u := range users {
		if key, ok := util.LocationKey(u.Location); ok {
			bs.get(key).userCount++
		}
	}
	for _, v := range vendors {
		if key, ok := util.LocationKey(v.Location); ok {
			bs.get(key).vendorCount++
		}
	}
	for _, o := range orders {
		if key, ok := util.LocationKey(o.Location); ok {
			b := bs.get(key)
			b.orderCount++
			b.revenue = b.revenue.Add(amount(o.TotalAmount))
		}
	}

	result := make([]model.LocationAggregate, 0, len(bs.order))
	for _, b := range bs.order {
		result = append(result, b.aggregate())
	}
	return result
}

// LocationDetail aggregates the rows whose location matches city, ignoring
// case. It reports false when no row of any collection matches.
func LocationDetail(city string, users []model.UserRecord, vendors []model.VendorRecord, orders []model.OrderRecord) (model.LocationAggregate, bool) {
	b := &bucket{location: city}
	if key, ok := util.LocationKey(&city); ok {
		b.location = key
	}
	for _, u := range users {
		if util.MatchLocation(u.Location, city) {
			b.userCount++
		}
	}
	for _, v := range vendors {
		if util.MatchLocation(v.Location, city) {
			b.vendorCount++
		}
	}
	for _, o := range orders {
		if util.MatchLocation(o.Location, city) {
			b.orderCount++
			b.revenue = b.revenue.Add(amount(o.TotalAmount))
		}
	}
	found := b.userCount+b.vendorCount+b.orderCount > 0
	return b.aggregate(), found
}

// DeriveMetrics computes the display ratios of one location.
func DeriveMetrics(agg model.LocationAggregate) model.LocationMetrics {
	users := float64(agg.UserCount)
	vendors := float64(agg.VendorCount)
	return model.LocationMetrics{
		LocationAggregate: model.LocationAggregate{
			Location:    agg.Location,
			UserCount:   agg.UserCount,
			VendorCount: agg.VendorCount,
			OrderCount:  agg.OrderCount,
			Revenue:     metric.Round(agg.Revenue, 2),
		},
		MarketDensity:     metric.FormatRatio(users, vendors, metric.Density),
		AverageOrderValue: metric.FormatRatio(agg.Revenue, float64(agg.OrderCount), metric.CurrencyWhole),
		MarketPenetration: metric.FormatRatio(users*100, vendors, metric.Percent2),
		RevenuePerUser:    metric.FormatRatio(agg.Revenue, users, metric.CurrencyCents),
	}
}

// LocationMetricsList derives metrics for every aggregate, preserving order.
func LocationMetricsList(aggs []model.LocationAggregate) []model.LocationMetrics {
	result := make([]model.LocationMetrics, 0, len(aggs))
	for _, agg := range aggs {
		result = append(result, DeriveMetrics(agg))
	}
	return result
}
