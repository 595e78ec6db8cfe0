package postgres

import (
	"log/slog"

	"docshelf/internal/domain/repositories"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store serves the dashboard's folders and files tables for one user.
// Private scope is the owner's unshared records; shared scope is every
// public record. Mutations only touch rows the owner created.
type Store struct {
	pool    *pgxpool.Pool
	tables  *TableNames
	tx      repositories.TransactionManager
	ownerID int64
	logger  *slog.Logger
}

var _ docsysRepo.Storage = (*Store)(nil)

// NewStore creates a store acting as ownerID
func NewStore(config *RepositoryConfig, tx repositories.TransactionManager, ownerID int64) *Store {
	return &Store{
		pool:    config.Pool,
		tables:  config.Tables,
		tx:      tx,
		ownerID: ownerID,
		logger:  config.Logger,
	}
}
