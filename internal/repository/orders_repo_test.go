package repository

import (
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"

	"github.com/rentwise/admin-dashboard/pkg/model"
	"github.com/rentwise/admin-dashboard/pkg/util"
)

func TestOrderDocRecord(t *testing.T) {
	created := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		details  any
		wantKind model.UserDetailKind
		wantName string
	}{
		{"absent", nil, model.UserDetailAbsent, ""},
		{"single map", map[string]any{"name": "Ada", "email": "ada@example.com"}, model.UserDetailSingle, "Ada"},
		{"list of maps", []any{map[string]any{"name": "Grace"}, map[string]any{"name": "Linus"}}, model.UserDetailMany, "Grace"},
		{"empty list", []any{}, model.UserDetailAbsent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := orderDoc{
				ID:          7,
				UserID:      3,
				Location:    util.StringPtr("Austin"),
				TotalAmount: "19.99",
				Status:      "active",
				CreatedAt:   created,
				UserDetails: tt.details,
			}.record()

			assert.Equal(t, int64(7), rec.ID)
			assert.Equal(t, created, rec.CreatedAt)
			assert.Equal(t, tt.wantKind, rec.UserDetails.Kind())
			assert.Equal(t, tt.wantName, rec.UserDetails.FirstOrDefault().Name)
		})
	}
}

func TestDocumentID(t *testing.T) {
	doc := &firestore.DocumentSnapshot{Ref: &firestore.DocumentRef{ID: "41"}}
	assert.Equal(t, int64(9), documentID(9, doc))
	assert.Equal(t, int64(41), documentID(0, doc))

	named := &firestore.DocumentSnapshot{Ref: &firestore.DocumentRef{ID: "abc"}}
	assert.Equal(t, int64(0), documentID(0, named))
}
