package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/joestump/linkboard/internal/config"
	"github.com/joestump/linkboard/internal/db"
	"github.com/joestump/linkboard/internal/logger"
	"github.com/joestump/linkboard/internal/store"
)

// loadRuntime reads configuration and builds the process logger.
func loadRuntime() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	db.SetLogger(log)
	return cfg, log, nil
}

// openStore builds the configured link store and prepares it for use: the
// file backend is seeded when its file is missing, the SQL backend is
// pinged, migrated, and seeded when its table is empty. The returned close
// func releases any database connection.
func openStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (store.LinkStore, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendSQL:
		conn, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(conn, cfg.DB.Driver); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		s := store.NewSQLStore(conn)
		n, err := s.Seed(ctx)
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("seed links: %w", err)
		}
		if n > 0 {
			log.WithField("links", n).Info("seeded empty links table")
		}
		log.WithField("driver", cfg.DB.Driver).Info("using sql link store")
		return s, conn.Close, nil

	default:
		s := store.NewFileStore(afero.NewOsFs(), cfg.Store.File)
		if err := s.Init(ctx); err != nil {
			return nil, nil, fmt.Errorf("initialize %s: %w", cfg.Store.File, err)
		}
		log.WithField("path", s.Path()).Info("using file link store")
		return s, func() error { return nil }, nil
	}
}

// openDB connects to the configured database and verifies it answers
// within the connect timeout.
func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	conn, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.DB.ConnectTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect to %s: %w", cfg.DB.Driver, err)
	}
	return conn, nil
}
