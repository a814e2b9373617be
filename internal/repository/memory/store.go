// Package memory is a record store held in process memory. It backs local
// development from a JSON seed file and stands in for the hosted store in tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rentwise/admin-dashboard/pkg/model"
)

// Store serves the three collections from slices. It is read-only once built.
type Store struct {
	Users   []model.UserRecord   `json:"users"`
	Vendors []model.VendorRecord `json:"vendors"`
	Orders  []model.OrderRecord  `json:"orders"`

	// Fail makes every query against the named collection return the error.
	Fail map[string]error `json:"-"`
}

// LoadFile reads a seed file of the form {"users": [...], "vendors": [...], "orders": [...]}.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return &s, nil
}

func (s *Store) check(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := s.Fail[collection]; ok {
		return err
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]model.UserRecord, error) {
	if err := s.check(ctx, "users"); err != nil {
		return nil, err
	}
	return append([]model.UserRecord(nil), s.Users...), nil
}

func (s *Store) ListUsersCreatedSince(ctx context.Context, since time.Time) ([]model.UserRecord, error) {
	if err := s.check(ctx, "users"); err != nil {
		return nil, err
	}
	var out []model.UserRecord
	for _, u := range s.Users {
		if !u.CreatedAt.Before(since) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.UserRecord, bool, error) {
	if err := s.check(ctx, "users"); err != nil {
		return model.UserRecord{}, false, err
	}
	for _, u := range s.Users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return model.UserRecord{}, false, nil
}

func (s *Store) ListVendors(ctx context.Context) ([]model.VendorRecord, error) {
	if err := s.check(ctx, "vendors"); err != nil {
		return nil, err
	}
	return append([]model.VendorRecord(nil), s.Vendors...), nil
}

func (s *Store) GetVendor(ctx context.Context, id int64) (model.VendorRecord, bool, error) {
	if err := s.check(ctx, "vendors"); err != nil {
		return model.VendorRecord{}, false, err
	}
	for _, v := range s.Vendors {
		if v.ID == id {
			return v, true, nil
		}
	}
	return model.VendorRecord{}, false, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]model.OrderRecord, error) {
	if err := s.check(ctx, "orders"); err != nil {
		return nil, err
	}
	return append([]model.OrderRecord(nil), s.Orders...), nil
}

func (s *Store) ListOrdersCreatedSince(ctx context.Context, since time.Time) ([]model.OrderRecord, error) {
	if err := s.check(ctx, "orders"); err != nil {
		return nil, err
	}
	var out []model.OrderRecord
	for _, o := range s.Orders {
		if !o.CreatedAt.Before(since) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	if err := s.check(ctx, "orders"); err != nil {
		return 0, err
	}
	return int64(len(s.Orders)), nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (model.OrderRecord, bool, error) {
	if err := s.check(ctx, "orders"); err != nil {
		return model.OrderRecord{}, false, err
	}
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true, nil
		}
	}
	return model.OrderRecord{}, false, nil
}
