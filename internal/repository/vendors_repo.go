package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/rentwise/admin-dashboard/pkg/model"
)

// VendorRepository reads the vendors collection from Firestore.
type VendorRepository struct {
	client *firestore.Client
}

func NewVendorRepository(client *firestore.Client) *VendorRepository {
	return &VendorRepository{client: client}
}

func decodeVendor(doc *firestore.DocumentSnapshot) (model.VendorRecord, error) {
	var v model.VendorRecord
	if err := doc.DataTo(&v); err != nil {
		return model.VendorRecord{}, err
	}
	v.ID = documentID(v.ID, doc)
	return v, nil
}

func (r *VendorRepository) ListVendors(ctx context.Context) ([]model.VendorRecord, error) {
	return collect(r.client.Collection("vendors").Documents(ctx), "vendors", decodeVendor)
}

func (r *VendorRepository) GetVendor(ctx context.Context, id int64) (model.VendorRecord, bool, error) {
	return findByID(ctx, r.client.Collection("vendors"), id, decodeVendor)
}
