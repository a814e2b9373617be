package model

// LocationAggregate holds the running counts and order revenue of one location bucket.
type LocationAggregate struct {
	Location    string  `json:"location"`
	UserCount   int     `json:"userCount"`
	VendorCount int     `json:"vendorCount"`
	OrderCount  int     `json:"orderCount"`
	Revenue     float64 `json:"revenue"`
}

// LocationMetrics is a LocationAggregate with its display-ready ratios.
type LocationMetrics struct {
	LocationAggregate
	MarketDensity     string `json:"marketDensity"`
	AverageOrderValue string `json:"averageOrderValue"`
	MarketPenetration string `json:"marketPenetration"`
	RevenuePerUser    string `json:"revenuePerUser"`
}

// TopUserLocation ranks locations by summed user total spend.
type TopUserLocation struct {
	City      string  `json:"city"`
	UserCount int     `json:"userCount"`
	Revenue   float64 `json:"revenue"`
}

// TopVendorLocation ranks locations by vendor count.
type TopVendorLocation struct {
	Location     string  `json:"location"`
	VendorCount  int     `json:"vendorCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// TopRevenueLocation ranks locations by summed order revenue.
type TopRevenueLocation struct {
	Location   string  `json:"location"`
	OrderCount int     `json:"orderCount"`
	Revenue    float64 `json:"revenue"`
}

// OpportunityLocation ranks locations by users per vendor.
type OpportunityLocation struct {
	Location         string `json:"location"`
	UserCount        int    `json:"userCount"`
	VendorCount      int    `json:"vendorCount"`
	OpportunityRatio string `json:"opportunityRatio"`
}

// RevenueShare is one location's slice of total order revenue.
type RevenueShare struct {
	Location string  `json:"location"`
	Revenue  float64 `json:"revenue"`
	Share    string  `json:"share"`
}

// RevenueDistribution is the response of /orders/revenue-distribution.
type RevenueDistribution struct {
	Distribution []RevenueShare `json:"distribution"`
	TotalRevenue float64        `json:"totalRevenue"`
}

// OrderStatusReview tallies orders per status bucket. Unrecognized statuses
// count toward TotalOrders only.
type OrderStatusReview struct {
	ActiveOrders    int `json:"activeOrders"`
	PendingOrders   int `json:"pendingOrders"`
	DisputedOrders  int `json:"disputedOrders"`
	CompletedOrders int `json:"completedOrders"`
	TotalOrders     int `json:"totalOrders"`
}

// VerificationSummary tallies vendor verification states.
type VerificationSummary struct {
	Verified     int `json:"verified"`
	Pending      int `json:"pending"`
	Rejected     int `json:"rejected"`
	TotalVendors int `json:"totalVendors"`
}

// OnboardingSummary tallies vendor onboarding states.
type OnboardingSummary struct {
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	Incomplete   int `json:"incomplete"`
	TotalVendors int `json:"totalVendors"`
}

// UserGrowth is week-over-week user signups.
type UserGrowth struct {
	UsersLastWeek    int    `json:"usersLastWeek"`
	NewUsersThisWeek int    `json:"newUsersThisWeek"`
	UserGrowthRate   string `json:"userGrowthRate"`
}

// DailyUserGrowth is day-over-day user signups.
type DailyUserGrowth struct {
	UsersYesterday  int    `json:"usersYesterday"`
	NewUsersToday   int    `json:"newUsersToday"`
	DailyGrowthRate string `json:"dailyGrowthRate"`
}

// OrderGrowth is week-over-week order volume.
type OrderGrowth struct {
	OrdersLastWeek  int    `json:"ordersLastWeek"`
	OrdersThisWeek  int    `json:"ordersThisWeek"`
	OrderGrowthRate string `json:"orderGrowthRate"`
}

// Engagement summarizes how many users place orders. The misspelled
// cartAbondonmentRate key is what the dashboard client reads.
type Engagement struct {
	TotalUsers          int    `json:"totalUsers"`
	UniqueActiveUsers   int    `json:"uniqueActiveUsers"`
	ActiveUserRate      string `json:"activeUserRate"`
	PendingOrders       int    `json:"pendingOrders"`
	CartAbandonmentRate string `json:"cartAbondonmentRate"`
}

// OrderValueSummary is the response of /orders/average-value.
type OrderValueSummary struct {
	AverageOrderValue string  `json:"averageOrderValue"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
}

// OrderDetail is a single order with its joined user normalized to first-or-default.
type OrderDetail struct {
	OrderRecord
	Customer UserInfo `json:"customer"`
}
