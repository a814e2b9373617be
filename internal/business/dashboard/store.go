package dashboard

import (
	"context"
	"time"

	"github.com/rentwise/admin-dashboard/pkg/model"
)

// Collection names shared by every store backend.
const (
	CollectionUsers   = "users"
	CollectionVendors = "vendors"
	CollectionOrders  = "orders"
)

// UserStore reads the users collection.
type UserStore interface {
	ListUsers(ctx context.Context) ([]model.UserRecord, error)
	ListUsersCreatedSince(ctx context.Context, since time.Time) ([]model.UserRecord, error)
	GetUser(ctx context.Context, id int64) (model.UserRecord, bool, error)
}

// VendorStore reads the vendors collection.
type VendorStore interface {
	ListVendors(ctx context.Context) ([]model.VendorRecord, error)
	GetVendor(ctx context.Context, id int64) (model.VendorRecord, bool, error)
}

// OrderStore reads the orders collection.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]model.OrderRecord, error)
	ListOrdersCreatedSince(ctx context.Context, since time.Time) ([]model.OrderRecord, error)
	CountOrders(ctx context.Context) (int64, error)
	GetOrder(ctx context.Context, id int64) (model.OrderRecord, bool, error)
}

// QueryObserver is told about every store query the service issues.
type QueryObserver func(collection, op string, duration time.Duration, err error)
