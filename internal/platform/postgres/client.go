package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Options tunes the connection pool and the startup ping.
type Options struct {
	MaxOpenConns int
	PingAttempts int
	PingInterval time.Duration
	ConnMaxIdle  time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 10
	}
	if o.PingAttempts <= 0 {
		o.PingAttempts = 10
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 2 * time.Second
	}
	if o.ConnMaxIdle <= 0 {
		o.ConnMaxIdle = 5 * time.Minute
	}
	return o
}

// Open connects to PostgreSQL and waits until the server answers a ping.
func Open(ctx context.Context, dsn string, opts Options, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := Configure(ctx, db, opts, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Configure applies pool limits to db and pings it with bounded retries.
func Configure(ctx context.Context, db *sql.DB, opts Options, logger *zap.Logger) error {
	opts = opts.withDefaults()
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxOpenConns)
	db.SetConnMaxIdleTime(opts.ConnMaxIdle)

	var err error
	for attempt := 1; attempt <= opts.PingAttempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		logger.Warn("postgres ping failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", opts.PingAttempts),
			zap.Error(err),
		)
		if attempt == opts.PingAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres: ping: %w", ctx.Err())
		case <-time.After(opts.PingInterval):
		}
	}
	return fmt.Errorf("postgres: ping failed after %d attempts: %w", opts.PingAttempts, err)
}
