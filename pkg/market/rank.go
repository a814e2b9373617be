package market

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rentwise/admin-dashboard/pkg/metric"
	"github.com/rentwise/admin-dashboard/pkg/model"
	"github.com/rentwise/admin-dashboard/pkg/util"
)

// TopN is the fixed size of every "top locations" ranking.
const TopN = 5

// rankTop sorts items descending by key and keeps the first TopN. The sort is
// stable: ties keep their first-seen order. The result is never nil.
func rankTop[T any](items []T, key func(T) float64) []T {
	ranked := make([]T, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	return ranked
}

type spendBucket struct {
	count int
	sum   decimal.Decimal
}

// groupSum buckets rows by normalized location (blank rows land in Unknown),
// counting rows and summing amounts. Keys come back in first-seen order.
func groupSum[T any](rows []T, location func(T) *string, value func(T) any) ([]string, map[string]*spendBucket) {
	var keys []string
	groups := make(map[string]*spendBucket)
	for _, row := range rows {
		key := util.NormalizeLocation(location(row))
		g, ok := groups[key]
		if !ok {
			g = &spendBucket{}
			groups[key] = g
			keys = append(keys, key)
		}
		g.count++
		g.sum = g.sum.Add(amount(value(row)))
	}
	return keys, groups
}

// TopUserLocations ranks locations by the summed total spend of their users.
func TopUserLocations(users []model.UserRecord) []model.TopUserLocation {
	keys, groups := groupSum(users,
		func(u model.UserRecord) *string { return u.Location },
		func(u model.UserRecord) any { return u.TotalSpend },
	)
	items := make([]model.TopUserLocation, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		items = append(items, model.TopUserLocation{
			City:      key,
			UserCount: g.count,
			Revenue:   metric.Round(g.sum.InexactFloat64(), 2),
		})
	}
	return rankTop(items, func(l model.TopUserLocation) float64 { return l.Revenue })
}

// TopVendorLocations ranks locations by vendor count and reports the summed
// vendor revenue alongside.
func TopVendorLocations(vendors []model.VendorRecord) []model.TopVendorLocation {
	keys, groups := groupSum(vendors,
		func(v model.VendorRecord) *string { return v.Location },
		func(v model.VendorRecord) any { return v.Revenue },
	)
	items := make([]model.TopVendorLocation, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		items = append(items, model.TopVendorLocation{
			Location:     key,
			VendorCount:  g.count,
			TotalRevenue: metric.Round(g.sum.InexactFloat64(), 2),
		})
	}
	return rankTop(items, func(l model.TopVendorLocation) float64 { return float64(l.VendorCount) })
}

// TopRevenueLocations ranks locations by summed order revenue.
func TopRevenueLocations(orders []model.OrderRecord) []model.TopRevenueLocation {
	keys, groups := groupSum(orders,
		func(o model.OrderRecord) *string { return o.Location },
		func(o model.OrderRecord) any { return o.TotalAmount },
	)
	items := make([]model.TopRevenueLocation, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		items = append(items, model.TopRevenueLocation{
			Location:   key,
			OrderCount: g.count,
			Revenue:    metric.Round(g.sum.InexactFloat64(), 2),
		})
	}
	return rankTop(items, func(l model.TopRevenueLocation) float64 { return l.Revenue })
}

// opportunityScore is users per vendor, with a location lacking vendors
// scored as if it had one.
func opportunityScore(agg model.LocationAggregate) float64 {
	vendors := agg.VendorCount
	if vendors == 0 {
		vendors = 1
	}
	return float64(agg.UserCount) / float64(vendors)
}

// TopOpportunities ranks locations by demand per supplier. The displayed ratio
// is N/A for locations without vendors.
func TopOpportunities(aggs []model.LocationAggregate) []model.OpportunityLocation {
	ranked := rankTop(aggs, opportunityScore)
	result := make([]model.OpportunityLocation, 0, len(ranked))
	for _, agg := range ranked {
		result = append(result, model.OpportunityLocation{
			Location:         agg.Location,
			UserCount:        agg.UserCount,
			VendorCount:      agg.VendorCount,
			OpportunityRatio: metric.FormatRatio(float64(agg.UserCount), float64(agg.VendorCount), metric.Density),
		})
	}
	return result
}

// RevenueDistributionOf splits order revenue by location, largest first.
// Unlocated orders are reported under Unknown so shares cover the whole total.
func RevenueDistributionOf(orders []model.OrderRecord) model.RevenueDistribution {
	keys, groups := groupSum(orders,
		func(o model.OrderRecord) *string { return o.Location },
		func(o model.OrderRecord) any { return o.TotalAmount },
	)
	total := decimal.Zero
	for _, key := range keys {
		total = total.Add(groups[key].sum)
	}
	totalF := total.InexactFloat64()

	shares := make([]model.RevenueShare, 0, len(keys))
	for _, key := range keys {
		rev := groups[key].sum.InexactFloat64()
		shares = append(shares, model.RevenueShare{
			Location: key,
			Revenue:  metric.Round(rev, 2),
			Share:    metric.FormatRatio(rev*100, totalF, metric.Percent1),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Revenue > shares[j].Revenue
	})
	return model.RevenueDistribution{
		Distribution: shares,
		TotalRevenue: metric.Round(totalF, 2),
	}
}
