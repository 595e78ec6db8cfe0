package docsystem

import (
	"bytes"
	"context"
	"encoding/json"

	"docshelf/internal/domain/models/docsystem"
)

// FolderRepository is the folder half of the storage service contract.
type FolderRepository interface {
	// ListFolders returns every folder in the scope as a flat list
	ListFolders(ctx context.Context, scope docsystem.Scope) ([]docsystem.Folder, error)

	// CreateFolder creates a folder under parentID (nil = root)
	CreateFolder(ctx context.Context, name string, parentID *int64, scope docsystem.Scope) (*docsystem.Folder, error)

	// RenameFolder changes a folder's name
	RenameFolder(ctx context.Context, id int64, name string) (*docsystem.Folder, error)

	// MoveFolder re-parents a folder (nil = root)
	MoveFolder(ctx context.Context, id int64, parentID *int64) (*docsystem.Folder, error)

	// DeleteFolder deletes a folder; the service cascades to its contents
	DeleteFolder(ctx context.Context, id int64) error
}

// FileRepository is the file half of the storage service contract.
type FileRepository interface {
	// ListFiles lists files in folderID, or every file in the scope when folderID is nil
	ListFiles(ctx context.Context, folderID *int64, scope docsystem.Scope) ([]docsystem.File, error)

	// UpdateFile renames and/or moves a file
	UpdateFile(ctx context.Context, id int64, update FileUpdate) (*docsystem.File, error)

	// DeleteFile deletes a file
	DeleteFile(ctx context.Context, id int64) error
}

// Storage is the full storage service contract consumed by the folder core.
type Storage interface {
	FolderRepository
	FileRepository
}

// FileUpdate carries the optional fields of an updateFile call.
type FileUpdate struct {
	Name     *string       `json:"name,omitempty"`
	FolderID OptionalInt64 `json:"folderId"`
}

// MarshalJSON omits folderId entirely unless it was set.
func (u FileUpdate) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, 2)
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.FolderID.Present {
		m["folderId"] = u.FolderID.Value
	}
	return json.Marshal(m)
}

// OptionalInt64 tracks presence and value for JSON PATCH-style semantics:
//   - Present=false: field absent (don't change)
//   - Present=true, Value=nil: JSON null (move to root)
//   - Present=true, Value=&n: field has value
type OptionalInt64 struct {
	Present bool
	Value   *int64
}

// SetInt64 returns a present OptionalInt64 holding v (nil = null).
func SetInt64(v *int64) OptionalInt64 {
	return OptionalInt64{Present: true, Value: v}
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	o.Value = &n
	return nil
}
