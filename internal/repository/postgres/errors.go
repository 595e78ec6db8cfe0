package postgres

import (
	"errors"
	"fmt"

	"docshelf/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

func folderNotFound(id int64) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("folder %d not found", id)}
}

func parentNotFound(id int64) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("parent folder %d not found", id)}
}

func fileNotFound(id int64) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("file %d not found", id)}
}

func folderConflict(name string, existingID int64) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("folder '%s' already exists", name),
		ResourceType: "folder",
		ResourceID:   existingID,
	}
}
