package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rentwise/admin-dashboard/internal/business/dashboard"
	"github.com/rentwise/admin-dashboard/internal/platform/config"
	firestoreclient "github.com/rentwise/admin-dashboard/internal/platform/firestore"
	apirouter "github.com/rentwise/admin-dashboard/internal/platform/http"
	"github.com/rentwise/admin-dashboard/internal/platform/logger"
	"github.com/rentwise/admin-dashboard/internal/platform/metrics"
	pgclient "github.com/rentwise/admin-dashboard/internal/platform/postgres"
	"github.com/rentwise/admin-dashboard/internal/repository"
	"github.com/rentwise/admin-dashboard/internal/repository/memory"
	"github.com/rentwise/admin-dashboard/internal/repository/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

// stores bundles the three collection readers of one backend.
type stores struct {
	users   dashboard.UserStore
	vendors dashboard.VendorStore
	orders  dashboard.OrderStore
	close   func() error
}

func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (stores, error) {
	switch cfg.StoreBackend {
	case config.BackendFirestore:
		client, source, err := firestoreclient.New(ctx, cfg.FirebaseProjectID, cfg)
		if err != nil {
			return stores{}, err
		}
		if err := firestoreclient.Ping(ctx, client); err != nil {
			client.Close()
			return stores{}, err
		}
		log.Info("connected to Firestore",
			zap.String("project", cfg.FirebaseProjectID),
			zap.String("credentials", source),
		)
		return stores{
			users:   repository.NewUserRepository(client),
			vendors: repository.NewVendorRepository(client),
			orders:  repository.NewOrderRepository(client),
			close:   client.Close,
		}, nil

	case config.BackendMemory:
		store, err := memory.LoadFile(cfg.SeedFile)
		if err != nil {
			return stores{}, err
		}
		log.Info("serving seed data",
			zap.String("file", cfg.SeedFile),
			zap.Int("users", len(store.Users)),
			zap.Int("vendors", len(store.Vendors)),
			zap.Int("orders", len(store.Orders)),
		)
		return stores{users: store, vendors: store, orders: store, close: func() error { return nil }}, nil

	default:
		db, err := pgclient.Open(ctx, cfg.DatabaseURL, pgclient.Options{MaxOpenConns: cfg.DBMaxOpenConns}, log)
		if err != nil {
			return stores{}, err
		}
		log.Info("connected to PostgreSQL", zap.Int("max_open_conns", cfg.DBMaxOpenConns))
		store := postgres.NewStore(db)
		return stores{users: store, vendors: store, orders: store, close: db.Close}, nil
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	gin.SetMode(cfg.GinMode)

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Warn("store close failed", zap.Error(err))
		}
	}()

	svc := dashboard.NewService(st.users, st.vendors, st.orders,
		dashboard.WithQueryObserver(metrics.RecordStoreQuery),
		dashboard.WithLogger(log.Named("dashboard")),
	)

	router := apirouter.NewRouter(svc, apirouter.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         log.Named("http"),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info("server listening",
		zap.String("port", cfg.Port),
		zap.String("backend", cfg.StoreBackend),
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown error", zap.Error(err))
	}
	log.Info("server exited")
	return nil
}
