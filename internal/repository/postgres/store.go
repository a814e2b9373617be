// Package postgres reads the users, vendors and orders tables of the hosted
// relational backend through database/sql.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rentwise/admin-dashboard/pkg/model"
)

const (
	userColumns   = `id, name, email, location, total_spend, status, created_at`
	vendorColumns = `id, name, location, revenue, verification_status, onboarding_status, product_count, rating`
	orderColumns  = `id, user_id, location, total_amount, status, created_at`
)

// orderDetailQuery joins the ordering user as a JSON list so the relation
// arrives in the same shape the document store uses.
const orderDetailQuery = `
	SELECT o.id, o.user_id, o.location, o.total_amount, o.status, o.created_at,
	       (SELECT json_agg(json_build_object('name', u.name, 'email', u.email, 'location', u.location))
	          FROM users u WHERE u.id = o.user_id) AS user_details
	  FROM orders o
	 WHERE o.id = $1`

// Store implements the dashboard record stores over *sql.DB.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// nullable converts a scanned column to the lenient value stored on records.
func nullable(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func scanUser(row rowScanner) (model.UserRecord, error) {
	var (
		u                    model.UserRecord
		name, email, status  sql.NullString
		location, totalSpend sql.NullString
		createdAt            sql.NullTime
	)
	if err := row.Scan(&u.ID, &name, &email, &location, &totalSpend, &status, &createdAt); err != nil {
		return model.UserRecord{}, err
	}
	u.Name = name.String
	u.Email = email.String
	u.Location = stringPtr(location)
	u.TotalSpend = nullable(totalSpend)
	u.Status = status.String
	u.CreatedAt = createdAt.Time
	return u, nil
}

func scanVendor(row rowScanner) (model.VendorRecord, error) {
	var (
		v                 model.VendorRecord
		name, location    sql.NullString
		revenue           sql.NullString
		verification, onb sql.NullString
		productCount      sql.NullInt64
		rating            sql.NullFloat64
	)
	if err := row.Scan(&v.ID, &name, &location, &revenue, &verification, &onb, &productCount, &rating); err != nil {
		return model.VendorRecord{}, err
	}
	v.Name = name.String
	v.Location = stringPtr(location)
	v.Revenue = nullable(revenue)
	v.VerificationStatus = verification.String
	v.OnboardingStatus = onb.String
	v.ProductCount = int(productCount.Int64)
	v.Rating = rating.Float64
	return v, nil
}

func scanOrder(row rowScanner, extra ...any) (model.OrderRecord, error) {
	var (
		o                model.OrderRecord
		userID           sql.NullInt64
		location, status sql.NullString
		totalAmount      sql.NullString
		createdAt        sql.NullTime
	)
	dest := append([]any{&o.ID, &userID, &location, &totalAmount, &status, &createdAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return model.OrderRecord{}, err
	}
	o.UserID = userID.Int64
	o.Location = stringPtr(location)
	o.TotalAmount = nullable(totalAmount)
	o.Status = status.String
	o.CreatedAt = createdAt.Time
	return o, nil
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, table string, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

// queryOne scans a single row, reporting false when there is none.
func queryOne[T any](ctx context.Context, db *sql.DB, table string, scan func(rowScanner) (T, error), query string, args ...any) (T, bool, error) {
	rec, err := scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("get %s: %w", table, err)
	}
	return rec, true, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]model.UserRecord, error) {
	return queryAll(ctx, s.db, "users", scanUser, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (s *Store) ListUsersCreatedSince(ctx context.Context, since time.Time) ([]model.UserRecord, error) {
	return queryAll(ctx, s.db, "users", scanUser,
		`SELECT `+userColumns+` FROM users WHERE created_at >= $1 ORDER BY id`, since)
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.UserRecord, bool, error) {
	return queryOne(ctx, s.db, "users", scanUser, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *Store) ListVendors(ctx context.Context) ([]model.VendorRecord, error) {
	return queryAll(ctx, s.db, "vendors", scanVendor, `SELECT `+vendorColumns+` FROM vendors ORDER BY id`)
}

func (s *Store) GetVendor(ctx context.Context, id int64) (model.VendorRecord, bool, error) {
	return queryOne(ctx, s.db, "vendors", scanVendor, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
}

func (s *Store) ListOrders(ctx context.Context) ([]model.OrderRecord, error) {
	return queryAll(ctx, s.db, "orders", func(r rowScanner) (model.OrderRecord, error) { return scanOrder(r) },
		`SELECT `+orderColumns+` FROM orders ORDER BY id`)
}

func (s *Store) ListOrdersCreatedSince(ctx context.Context, since time.Time) ([]model.OrderRecord, error) {
	return queryAll(ctx, s.db, "orders", func(r rowScanner) (model.OrderRecord, error) { return scanOrder(r) },
		`SELECT `+orderColumns+` FROM orders WHERE created_at >= $1 ORDER BY id`, since)
}

func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// GetOrder loads one order with its joined user relation.
func (s *Store) GetOrder(ctx context.Context, id int64) (model.OrderRecord, bool, error) {
	return queryOne(ctx, s.db, "orders", scanOrderDetail, orderDetailQuery, id)
}

func scanOrderDetail(row rowScanner) (model.OrderRecord, error) {
	var details []byte
	o, err := scanOrder(row, &details)
	if err != nil {
		return model.OrderRecord{}, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &o.UserDetails); err != nil {
			return model.OrderRecord{}, fmt.Errorf("decode user_details: %w", err)
		}
	}
	return o, nil
}
