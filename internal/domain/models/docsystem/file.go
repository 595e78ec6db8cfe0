package docsystem

import "time"

// Upload states reported by the storage service.
const (
	UploadStatusProcessing = "PROCESSING"
	UploadStatusAnalyzing  = "ANALYZING"
	UploadStatusCompleted  = "COMPLETED"
)

// File is a flat file record. Files are leaves: they are addressed relative
// to the folder tree but never take part in its parent graph.
type File struct {
	ID           int64     `json:"id" yaml:"id" db:"id"`
	Name         string    `json:"name" yaml:"name" db:"name"`
	OriginalName string    `json:"originalName,omitempty" yaml:"originalName,omitempty" db:"original_name"`
	FolderID     *int64    `json:"folderId" yaml:"folderId,omitempty" db:"folder_id"` // NULL = root level
	Size         int64     `json:"fileSize" yaml:"fileSize,omitempty" db:"file_size"`
	MediaType    string    `json:"fileType" yaml:"fileType,omitempty" db:"file_type"`
	IsPublic     bool      `json:"isPublic" yaml:"isPublic,omitempty" db:"is_public"`
	UploadStatus string    `json:"uploadStatus,omitempty" yaml:"uploadStatus,omitempty" db:"upload_status"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt,omitempty" db:"created_at"`
}

// Scope returns the visibility partition of the file.
func (f File) Scope() Scope {
	return ScopeFromPublic(f.IsPublic)
}
