package market

import (
	"github.com/rentwise/admin-dashboard/pkg/model"
	"github.com/rentwise/admin-dashboard/pkg/util"
)

// Statuses are matched after trimming and lower-casing. A status outside the
// known buckets is still counted in the total, so bucket counts need not add
// up to the total.

// TallyOrderStatuses counts order statuses into the review buckets.
func TallyOrderStatuses(statuses []string) model.OrderStatusReview {
	review := model.OrderStatusReview{TotalOrders: len(statuses)}
	for _, s := range statuses {
		switch util.NormalizeStatus(s) {
		case "active":
			review.ActiveOrders++
		case "pending":
			review.PendingOrders++
		case "disputed":
			review.DisputedOrders++
		case "completed":
			review.CompletedOrders++
		}
	}
	return review
}

// TallyVerification counts vendor verification states. The source writes a
// finished verification as "completed", "complete" or "verified".
func TallyVerification(statuses []string) model.VerificationSummary {
	summary := model.VerificationSummary{TotalVendors: len(statuses)}
	for _, s := range statuses {
		switch util.NormalizeStatus(s) {
		case "completed", "complete", "verified":
			summary.Verified++
		case "pending":
			summary.Pending++
		case "rejected":
			summary.Rejected++
		}
	}
	return summary
}

// TallyOnboarding counts vendor onboarding states.
func TallyOnboarding(statuses []string) model.OnboardingSummary {
	summary := model.OnboardingSummary{TotalVendors: len(statuses)}
	for _, s := range statuses {
		switch util.NormalizeStatus(s) {
		case "completed", "complete":
			summary.Completed++
		case "pending":
			summary.Pending++
		case "incomplete":
			summary.Incomplete++
		}
	}
	return summary
}

// OrderStatuses extracts the raw status of each order.
func OrderStatuses(orders []model.OrderRecord) []string {
	statuses := make([]string, len(orders))
	for i, o := range orders {
		statuses[i] = o.Status
	}
	return statuses
}

// VerificationStatuses extracts the raw verification state of each vendor.
func VerificationStatuses(vendors []model.VendorRecord) []string {
	statuses := make([]string, len(vendors))
	for i, v := range vendors {
		statuses[i] = v.VerificationStatus
	}
	return statuses
}

// OnboardingStatuses extracts the raw onboarding state of each vendor.
func OnboardingStatuses(vendors []model.VendorRecord) []string {
	statuses := make([]string, len(vendors))
	for i, v := range vendors {
		statuses[i] = v.OnboardingStatus
	}
	return statuses
}
