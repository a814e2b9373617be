package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/rentwise/admin-dashboard/pkg/model"
)

// UserRepository reads the users collection from Firestore.
type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) col() *firestore.CollectionRef {
	return r.client.Collection("users")
}

func decodeUser(doc *firestore.DocumentSnapshot) (model.UserRecord, error) {
	var u model.UserRecord
	if err := doc.DataTo(&u); err != nil {
		return model.UserRecord{}, err
	}
	u.ID = documentID(u.ID, doc)
	return u, nil
}

// ListUsers loads every user.
func (r *UserRepository) ListUsers(ctx context.Context) ([]model.UserRecord, error) {
	return collect(r.col().Documents(ctx), "users", decodeUser)
}

// ListUsersCreatedSince loads users created at or after since.
func (r *UserRepository) ListUsersCreatedSince(ctx context.Context, since time.Time) ([]model.UserRecord, error) {
	return collect(r.col().Where("created_at", ">=", since).Documents(ctx), "users", decodeUser)
}

// GetUser looks a user up by its numeric id.
func (r *UserRepository) GetUser(ctx context.Context, id int64) (model.UserRecord, bool, error) {
	return findByID(ctx, r.col(), id, decodeUser)
}
