package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema creates the folders and files tables when they are missing.
// Column names follow the dashboard backend so the store can share its database.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL,
				parent_id BIGINT REFERENCES %[1]s(id),
				name VARCHAR(255) NOT NULL,
				path VARCHAR(1000),
				is_public BOOLEAN NOT NULL DEFAULT FALSE,
				department_id BIGINT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, s.tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_parent_idx ON %[1]s (parent_id)`, s.tables.Folders),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				user_id BIGINT NOT NULL,
				folder_id BIGINT REFERENCES %s(id),
				name VARCHAR(255) NOT NULL,
				original_name VARCHAR(255) NOT NULL DEFAULT '',
				file_path VARCHAR(500) NOT NULL DEFAULT '',
				file_size BIGINT NOT NULL DEFAULT 0,
				file_type VARCHAR(50) NOT NULL DEFAULT '',
				mime_type VARCHAR(100),
				upload_status VARCHAR(20) NOT NULL DEFAULT 'UPLOADING',
				is_public BOOLEAN NOT NULL DEFAULT FALSE,
				department_id BIGINT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, s.tables.Files, s.tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_folder_idx ON %[1]s (folder_id)`, s.tables.Files),
	}

	executor := GetExecutor(ctx, s.pool)
	for _, stmt := range statements {
		if _, err := executor.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	s.logger.Debug("schema ready", "folders", s.tables.Folders, "files", s.tables.Files)
	return nil
}
