package market

import (
	"github.com/shopspring/decimal"

	"github.com/rentwise/admin-dashboard/pkg/metric"
	"github.com/rentwise/admin-dashboard/pkg/model"
	"github.com/rentwise/admin-dashboard/pkg/util"
)

// EngagementOf relates users to the orders they place. A user is active when
// at least one order references them.
func EngagementOf(users []model.UserRecord, orders []model.OrderRecord) model.Engagement {
	active := make(map[int64]struct{})
	pending := 0
	for _, o := range orders {
		if o.UserID != 0 {
			active[o.UserID] = struct{}{}
		}
		if util.NormalizeStatus(o.Status) == "pending" {
			pending++
		}
	}
	return model.Engagement{
		TotalUsers:          len(users),
		UniqueActiveUsers:   len(active),
		ActiveUserRate:      metric.Rate(float64(len(active)), float64(len(users)), 2),
		PendingOrders:       pending,
		CartAbandonmentRate: metric.Rate(float64(pending), float64(len(orders)), 1),
	}
}

// AverageVendorRevenue is the mean vendor revenue rounded to cents, 0 with no vendors.
func AverageVendorRevenue(vendors []model.VendorRecord) float64 {
	if len(vendors) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range vendors {
		sum = sum.Add(amount(v.Revenue))
	}
	return metric.Round(sum.InexactFloat64()/float64(len(vendors)), 2)
}

// OrderValue summarizes order revenue and its per-order average.
func OrderValue(orders []model.OrderRecord) model.OrderValueSummary {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(amount(o.TotalAmount))
	}
	total := sum.InexactFloat64()
	return model.OrderValueSummary{
		AverageOrderValue: metric.FormatRatio(total, float64(len(orders)), metric.CurrencyCents),
		TotalRevenue:      metric.Round(total, 2),
		TotalOrders:       len(orders),
	}
}
