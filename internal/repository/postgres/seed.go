package postgres

import (
	"context"
	"fmt"
	"time"

	models "docshelf/internal/domain/models/docsystem"
)

// DropTables drops the files and folders tables, files first for the foreign key.
func (s *Store) DropTables(ctx context.Context) error {
	executor := GetExecutor(ctx, s.pool)
	for _, table := range []string{s.tables.Files, s.tables.Folders} {
		if _, err := executor.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
		s.logger.Info("table dropped", "table", table)
	}
	return nil
}

// ClearOwner deletes every folder and file the owner created.
func (s *Store) ClearOwner(ctx context.Context) error {
	return s.tx.ExecTx(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, s.pool)
		if _, err := executor.Exec(ctx, "DELETE FROM "+s.tables.Files+" WHERE user_id = $1", s.ownerID); err != nil {
			return fmt.Errorf("clear files: %w", err)
		}
		// parents may belong to other owners, so unlink before deleting
		if _, err := executor.Exec(ctx, "UPDATE "+s.tables.Folders+" SET parent_id = NULL WHERE user_id = $1", s.ownerID); err != nil {
			return fmt.Errorf("unlink folders: %w", err)
		}
		if _, err := executor.Exec(ctx, "DELETE FROM "+s.tables.Folders+" WHERE user_id = $1", s.ownerID); err != nil {
			return fmt.Errorf("clear folders: %w", err)
		}
		return nil
	})
}

// Import inserts folders and files with their ids kept. Folders are inserted
// unlinked and re-parented afterwards, so any order (or a cycle) loads.
// Records without an owner are assigned to the store's owner.
func (s *Store) Import(ctx context.Context, folders []models.Folder, files []models.File) error {
	return s.tx.ExecTx(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, s.pool)

		insertFolder := fmt.Sprintf(`
			INSERT INTO %s (id, user_id, name, is_public, created_at, updated_at)
			VALUES ($1, $2, $3, $4, COALESCE($5, NOW()), COALESCE($5, NOW()))
		`, s.tables.Folders)
		for _, f := range folders {
			if _, err := executor.Exec(ctx, insertFolder, f.ID, s.owner(f.OwnerID), f.Name, f.IsPublic, nullTime(f.CreatedAt)); err != nil {
				if IsPgDuplicateError(err) {
					return folderConflict(f.Name, f.ID)
				}
				return fmt.Errorf("import folder %d: %w", f.ID, err)
			}
		}

		linkFolder := fmt.Sprintf(`UPDATE %s SET parent_id = $1 WHERE id = $2`, s.tables.Folders)
		for _, f := range folders {
			if f.ParentID == nil {
				continue
			}
			if _, err := executor.Exec(ctx, linkFolder, *f.ParentID, f.ID); err != nil {
				if IsPgForeignKeyError(err) {
					return parentNotFound(*f.ParentID)
				}
				return fmt.Errorf("link folder %d: %w", f.ID, err)
			}
		}

		insertFile := fmt.Sprintf(`
			INSERT INTO %s (id, user_id, folder_id, name, original_name, file_size, file_type, upload_status, is_public, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, NOW()))
		`, s.tables.Files)
		for _, f := range files {
			status := f.UploadStatus
			if status == "" {
				status = models.UploadStatusCompleted
			}
			original := f.OriginalName
			if original == "" {
				original = f.Name
			}
			_, err := executor.Exec(ctx, insertFile,
				f.ID, s.ownerID, f.FolderID, f.Name, original, f.Size, f.MediaType, status, f.IsPublic, nullTime(f.CreatedAt))
			if err != nil {
				if IsPgForeignKeyError(err) && f.FolderID != nil {
					return folderNotFound(*f.FolderID)
				}
				return fmt.Errorf("import file %d: %w", f.ID, err)
			}
		}

		// explicit ids leave the serial sequences behind
		for _, table := range []string{s.tables.Folders, s.tables.Files} {
			resync := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`, table)
			if _, err := executor.Exec(ctx, resync); err != nil {
				return fmt.Errorf("resync %s sequence: %w", table, err)
			}
		}

		s.logger.Info("records imported", "folder_count", len(folders), "file_count", len(files), "owner_id", s.ownerID)
		return nil
	})
}

func (s *Store) owner(id int64) int64 {
	if id == 0 {
		return s.ownerID
	}
	return id
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
