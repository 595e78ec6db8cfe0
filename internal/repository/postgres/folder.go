package postgres

import (
	"context"
	"fmt"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"

	"github.com/jackc/pgx/v5"
)

const folderColumns = `id, user_id, parent_id, name, COALESCE(path, ''), is_public, created_at, updated_at`

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.IsPublic,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListFolders returns every folder in scope as a flat list ordered by id
func (s *Store) ListFolders(ctx context.Context, scope models.Scope) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE is_public = $1 AND ($1 OR user_id = $2)
		ORDER BY id ASC
	`, folderColumns, s.tables.Folders)

	rows, err := GetExecutor(ctx, s.pool).Query(ctx, query, scope.IsPublic(), s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// CreateFolder creates a folder under parentID (nil = root)
func (s *Store) CreateFolder(ctx context.Context, name string, parentID *int64, scope models.Scope) (*models.Folder, error) {
	var created *models.Folder
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		parentPath := ""
		if parentID != nil {
			parent, err := s.getVisible(ctx, *parentID)
			if err != nil {
				if IsPgNoRowsError(err) {
					return parentNotFound(*parentID)
				}
				return err
			}
			parentPath = parent.Path
		}

		// Guard against duplicates at the application level
		if existingID, ok, err := s.siblingNamed(ctx, name, parentID, scope, 0); err != nil {
			return err
		} else if ok {
			return folderConflict(name, existingID)
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (user_id, parent_id, name, path, is_public, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING %s
		`, s.tables.Folders, folderColumns)

		folder, err := scanFolder(GetExecutor(ctx, s.pool).QueryRow(ctx, query,
			s.ownerID,
			parentID,
			name,
			parentPath+"/"+name,
			scope.IsPublic(),
		))
		if err != nil {
			if IsPgDuplicateError(err) {
				return folderConflict(name, 0)
			}
			return fmt.Errorf("create folder: %w", err)
		}
		created = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("folder created", "id", created.ID, "parent_folder_id", parentID, "scope", scope)
	return created, nil
}

// RenameFolder changes a folder's name
func (s *Store) RenameFolder(ctx context.Context, id int64, name string) (*models.Folder, error) {
	var renamed *models.Folder
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		folder, err := s.getOwned(ctx, id)
		if err != nil {
			return err
		}

		if existingID, ok, err := s.siblingNamed(ctx, name, folder.ParentID, folder.Scope(), id); err != nil {
			return err
		} else if ok {
			return folderConflict(name, existingID)
		}

		query := fmt.Sprintf(`
			UPDATE %s
			SET name = $1, path = COALESCE((SELECT p.path FROM %[2]s p WHERE p.id = $2), '') || '/' || $1, updated_at = NOW()
			WHERE id = $3 AND user_id = $4
			RETURNING %s
		`, s.tables.Folders, s.tables.Folders, folderColumns)

		renamed, err = scanFolder(GetExecutor(ctx, s.pool).QueryRow(ctx, query, name, folder.ParentID, id, s.ownerID))
		if err != nil {
			if IsPgDuplicateError(err) {
				return folderConflict(name, 0)
			}
			return fmt.Errorf("rename folder: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

// MoveFolder re-parents a folder (nil = root).
// Moving a folder into itself or one of its subfolders is rejected.
func (s *Store) MoveFolder(ctx context.Context, id int64, parentID *int64) (*models.Folder, error) {
	var moved *models.Folder
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		folder, err := s.getOwned(ctx, id)
		if err != nil {
			return err
		}

		if parentID != nil {
			if _, err := s.getVisible(ctx, *parentID); err != nil {
				if IsPgNoRowsError(err) {
					return parentNotFound(*parentID)
				}
				return err
			}
			below, err := s.reaches(ctx, *parentID, id)
			if err != nil {
				return err
			}
			if below {
				return domain.NewValidationError("parentId", "cannot move folder into itself or its subfolders")
			}
		}

		if existingID, ok, err := s.siblingNamed(ctx, folder.Name, parentID, folder.Scope(), id); err != nil {
			return err
		} else if ok {
			return folderConflict(folder.Name, existingID)
		}

		query := fmt.Sprintf(`
			UPDATE %s
			SET parent_id = $1, path = COALESCE((SELECT p.path FROM %[1]s p WHERE p.id = $1), '') || '/' || name, updated_at = NOW()
			WHERE id = $2 AND user_id = $3
			RETURNING %s
		`, s.tables.Folders, folderColumns)

		moved, err = scanFolder(GetExecutor(ctx, s.pool).QueryRow(ctx, query, parentID, id, s.ownerID))
		if err != nil {
			return fmt.Errorf("move folder: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("folder moved", "id", id, "parent_folder_id", parentID)
	return moved, nil
}

// DeleteFolder deletes a folder together with every folder and file below it
func (s *Store) DeleteFolder(ctx context.Context, id int64) error {
	// UNION (not UNION ALL) stops the walk on cyclic parent data
	subtree := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM %[1]s WHERE id = $1
			UNION
			SELECT f.id FROM %[1]s f JOIN subtree s ON f.parent_id = s.id
		)
	`, s.tables.Folders)

	var folderCount, fileCount int64
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.getOwned(ctx, id); err != nil {
			return err
		}

		executor := GetExecutor(ctx, s.pool)

		result, err := executor.Exec(ctx, subtree+fmt.Sprintf(`
			DELETE FROM %s WHERE folder_id IN (SELECT id FROM subtree)
		`, s.tables.Files), id)
		if err != nil {
			return fmt.Errorf("delete folder files: %w", err)
		}
		fileCount = result.RowsAffected()

		result, err = executor.Exec(ctx, subtree+fmt.Sprintf(`
			DELETE FROM %s WHERE id IN (SELECT id FROM subtree)
		`, s.tables.Folders), id)
		if err != nil {
			return fmt.Errorf("delete folders: %w", err)
		}
		folderCount = result.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("folder deleted", "id", id, "folder_count", folderCount, "file_count", fileCount)
	return nil
}

// getOwned fetches a folder the store's owner may modify
func (s *Store) getOwned(ctx context.Context, id int64) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, folderColumns, s.tables.Folders)

	folder, err := scanFolder(GetExecutor(ctx, s.pool).QueryRow(ctx, query, id, s.ownerID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, folderNotFound(id)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

// getVisible fetches a folder the owner can see. Returns pgx.ErrNoRows when absent.
func (s *Store) getVisible(ctx context.Context, id int64) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND (is_public OR user_id = $2)
	`, folderColumns, s.tables.Folders)

	folder, err := scanFolder(GetExecutor(ctx, s.pool).QueryRow(ctx, query, id, s.ownerID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

// siblingNamed finds a folder other than except with the same name, parent and scope
func (s *Store) siblingNamed(ctx context.Context, name string, parentID *int64, scope models.Scope, except int64) (int64, bool, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE name = $1
		  AND parent_id IS NOT DISTINCT FROM $2
		  AND is_public = $3 AND ($3 OR user_id = $4)
		  AND id <> $5
		LIMIT 1
	`, s.tables.Folders)

	var id int64
	err := GetExecutor(ctx, s.pool).QueryRow(ctx, query, name, parentID, scope.IsPublic(), s.ownerID, except).Scan(&id)
	if err != nil {
		if IsPgNoRowsError(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("check folder name: %w", err)
	}
	return id, true, nil
}

// reaches reports whether walking parents from start meets target
func (s *Store) reaches(ctx context.Context, start, target int64) (bool, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE chain AS (
			SELECT id, parent_id FROM %[1]s WHERE id = $1
			UNION
			SELECT f.id, f.parent_id FROM %[1]s f JOIN chain c ON f.id = c.parent_id
		)
		SELECT EXISTS (SELECT 1 FROM chain WHERE id = $2)
	`, s.tables.Folders)

	var found bool
	if err := GetExecutor(ctx, s.pool).QueryRow(ctx, query, start, target).Scan(&found); err != nil {
		return false, fmt.Errorf("walk folder ancestors: %w", err)
	}
	return found, nil
}
