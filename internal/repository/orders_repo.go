package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"

	"github.com/rentwise/admin-dashboard/pkg/model"
)

// orderDoc mirrors an order document. user_details is stored as a map or a
// list of maps depending on how the order was written.
type orderDoc struct {
	ID          int64     `firestore:"id"`
	UserID      int64     `firestore:"user_id"`
	Location    *string   `firestore:"location"`
	TotalAmount any       `firestore:"total_amount"`
	Status      string    `firestore:"status"`
	CreatedAt   time.Time `firestore:"created_at"`
	UserDetails any       `firestore:"user_details"`
}

func (d orderDoc) record() model.OrderRecord {
	return model.OrderRecord{
		ID:          d.ID,
		UserID:      d.UserID,
		Location:    d.Location,
		TotalAmount: d.TotalAmount,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UserDetails: model.NewUserDetail(d.UserDetails),
	}
}

// OrderRepository reads the orders collection from Firestore.
type OrderRepository struct {
	client *firestore.Client
}

func NewOrderRepository(client *firestore.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

func (r *OrderRepository) col() *firestore.CollectionRef {
	return r.client.Collection("orders")
}

func decodeOrder(doc *firestore.DocumentSnapshot) (model.OrderRecord, error) {
	var d orderDoc
	if err := doc.DataTo(&d); err != nil {
		return model.OrderRecord{}, err
	}
	d.ID = documentID(d.ID, doc)
	return d.record(), nil
}

func (r *OrderRepository) ListOrders(ctx context.Context) ([]model.OrderRecord, error) {
	return collect(r.col().Documents(ctx), "orders", decodeOrder)
}

func (r *OrderRepository) ListOrdersCreatedSince(ctx context.Context, since time.Time) ([]model.OrderRecord, error) {
	return collect(r.col().Where("created_at", ">=", since).Documents(ctx), "orders", decodeOrder)
}

// CountOrders runs a server-side count aggregation instead of reading documents.
func (r *OrderRepository) CountOrders(ctx context.Context) (int64, error) {
	res, err := r.col().NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	v, ok := res["total"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count orders: unexpected result %T", res["total"])
	}
	return v.GetIntegerValue(), nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, id int64) (model.OrderRecord, bool, error) {
	return findByID(ctx, r.col(), id, decodeOrder)
}
