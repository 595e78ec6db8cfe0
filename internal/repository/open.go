package repository

import (
	"context"
	"fmt"
	"log/slog"

	"docshelf/internal/config"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"
	"docshelf/internal/repository/httpapi"
	"docshelf/internal/repository/memory"
	"docshelf/internal/repository/postgres"
)

// Backend is an opened storage backend. Close releases its resources.
type Backend struct {
	Storage docsysRepo.Storage
	Kind    string
	close   func()
}

// Close releases the backend's connections
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open builds the storage backend selected by cfg.Store
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.Store {
	case config.StoreHTTP:
		client, err := httpapi.NewClient(httpapi.Config{
			BaseURL:  cfg.APIURL,
			Token:    cfg.APIToken,
			RetryMax: cfg.HTTPRetries,
			Timeout:  cfg.HTTPTimeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		logger.Debug("storage backend ready", "store", cfg.Store, "api_url", cfg.APIURL)
		return &Backend{Storage: client, Kind: cfg.Store}, nil

	case config.StoreMemory:
		store := memory.NewStore(cfg.OwnerID, logger)
		if cfg.FixturePath != "" {
			fixture, err := memory.LoadFixture(cfg.FixturePath)
			if err != nil {
				return nil, err
			}
			store.Seed(fixture)
		}
		logger.Debug("storage backend ready", "store", cfg.Store, "fixture", cfg.FixturePath)
		return &Backend{Storage: store, Kind: cfg.Store}, nil

	case config.StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		store := postgres.NewStore(repoConfig, postgres.NewTransactionManager(pool, logger), cfg.OwnerID)
		if cfg.AutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				pool.Close()
				return nil, err
			}
		}
		logger.Debug("storage backend ready", "store", cfg.Store, "table_prefix", cfg.TablePrefix)
		return &Backend{Storage: store, Kind: cfg.Store, close: pool.Close}, nil

	default:
		return nil, fmt.Errorf("unknown store %q (want %s, %s or %s)",
			cfg.Store, config.StoreHTTP, config.StoreMemory, config.StorePostgres)
	}
}
