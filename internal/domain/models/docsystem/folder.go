package docsystem

import (
	"fmt"
	"strings"
	"time"
)

// Scope is the visibility partition a folder or file lives in.
// It is orthogonal to the tree structure.
type Scope string

const (
	ScopePrivate Scope = "private"
	ScopeShared  Scope = "shared"
)

// ParseScope accepts "private"/"shared" (and the wire aliases "mine"/"public").
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "private", "mine":
		return ScopePrivate, nil
	case "shared", "public":
		return ScopeShared, nil
	default:
		return "", fmt.Errorf("unknown scope %q", s)
	}
}

// IsPublic maps the scope onto the dashboard API's isPublic flag.
func (s Scope) IsPublic() bool {
	return s == ScopeShared
}

// ScopeFromPublic is the inverse of IsPublic.
func ScopeFromPublic(public bool) Scope {
	if public {
		return ScopeShared
	}
	return ScopePrivate
}

// Folder is a flat folder record as returned by the storage service.
// ParentID may reference a folder that does not exist or form a cycle;
// consumers must not trust it.
type Folder struct {
	ID        int64     `json:"id" yaml:"id" db:"id"`
	Name      string    `json:"name" yaml:"name" db:"name"`
	ParentID  *int64    `json:"parentId" yaml:"parentId,omitempty" db:"parent_id"` // NULL = root level
	OwnerID   int64     `json:"userId,omitempty" yaml:"userId,omitempty" db:"user_id"`
	IsPublic  bool      `json:"isPublic" yaml:"isPublic,omitempty" db:"is_public"`
	Path      string    `json:"path,omitempty" yaml:"-"` // Server-computed, ignored by the tree code
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt,omitempty" db:"updated_at"`
}

// Scope returns the visibility partition of the folder.
func (f Folder) Scope() Scope {
	return ScopeFromPublic(f.IsPublic)
}
