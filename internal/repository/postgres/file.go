package postgres

import (
	"context"
	"fmt"

	models "docshelf/internal/domain/models/docsystem"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"

	"github.com/jackc/pgx/v5"
)

const fileColumns = `id, folder_id, name, original_name, file_size, file_type, is_public, upload_status, created_at`

func scanFile(row pgx.Row) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.FolderID,
		&file.Name,
		&file.OriginalName,
		&file.Size,
		&file.MediaType,
		&file.IsPublic,
		&file.UploadStatus,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListFiles lists the files of one folder, or every file in scope when folderID is nil
func (s *Store) ListFiles(ctx context.Context, folderID *int64, scope models.Scope) ([]models.File, error) {
	var query string
	args := []interface{}{scope.IsPublic(), s.ownerID}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE is_public = $1 AND ($1 OR user_id = $2)
			ORDER BY id ASC
		`, fileColumns, s.tables.Files)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE is_public = $1 AND ($1 OR user_id = $2) AND folder_id = $3
			ORDER BY id ASC
		`, fileColumns, s.tables.Files)
		args = append(args, *folderID)
	}

	rows, err := GetExecutor(ctx, s.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := make([]models.File, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, *file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

// UpdateFile renames and/or moves a file. An absent field is left unchanged.
func (s *Store) UpdateFile(ctx context.Context, id int64, update docsysRepo.FileUpdate) (*models.File, error) {
	var updated *models.File
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if update.FolderID.Present && update.FolderID.Value != nil {
			dest := *update.FolderID.Value
			if _, err := s.getVisible(ctx, dest); err != nil {
				if IsPgNoRowsError(err) {
					return folderNotFound(dest)
				}
				return err
			}
		}

		query := fmt.Sprintf(`
			UPDATE %s
			SET name = COALESCE($1, name),
			    folder_id = CASE WHEN $2 THEN $3 ELSE folder_id END,
			    updated_at = NOW()
			WHERE id = $4 AND user_id = $5
			RETURNING %s
		`, s.tables.Files, fileColumns)

		file, err := scanFile(GetExecutor(ctx, s.pool).QueryRow(ctx, query,
			update.Name,
			update.FolderID.Present,
			update.FolderID.Value,
			id,
			s.ownerID,
		))
		if err != nil {
			if IsPgNoRowsError(err) {
				return fileNotFound(id)
			}
			if IsPgForeignKeyError(err) && update.FolderID.Value != nil {
				return folderNotFound(*update.FolderID.Value)
			}
			return fmt.Errorf("update file: %w", err)
		}
		updated = file
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("file updated", "id", id, "folder_id", updated.FolderID)
	return updated, nil
}

// DeleteFile deletes a file
func (s *Store) DeleteFile(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, s.tables.Files)

	result, err := GetExecutor(ctx, s.pool).Exec(ctx, query, id, s.ownerID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fileNotFound(id)
	}

	return nil
}
