package docsystem

import (
	"errors"
	"fmt"
	"strings"

	"docshelf/internal/config"
	"docshelf/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MoveKind distinguishes files from folders in a move request.
type MoveKind int

const (
	MoveFile MoveKind = iota
	MoveFolder
)

func (k MoveKind) String() string {
	if k == MoveFolder {
		return "folder"
	}
	return "file"
}

// MoveRequest describes a proposed relocation. CurrentParentID is the
// source's location now; DestinationID nil means root.
type MoveRequest struct {
	Kind            MoveKind
	ID              int64
	CurrentParentID *int64
	DestinationID   *int64
}

// MoveValidator decides whether a move is legal against one folder collection.
type MoveValidator struct {
	index *FolderIndex
}

// NewMoveValidator creates a validator over index.
func NewMoveValidator(index *FolderIndex) *MoveValidator {
	return &MoveValidator{index: index}
}

// Validate returns a *domain.ValidationError when the move is not allowed.
func (v *MoveValidator) Validate(req MoveRequest) error {
	if sameLocation(req.CurrentParentID, req.DestinationID) {
		return domain.NewValidationError("destination", fmt.Sprintf("%s is already in this location", req.Kind))
	}

	if req.Kind != MoveFolder || req.DestinationID == nil {
		return nil
	}

	dest := *req.DestinationID
	if dest == req.ID {
		return domain.NewValidationError("destination", "cannot move folder into itself")
	}

	chain, err := v.index.Ancestors(dest)
	for _, id := range chain {
		if id == req.ID {
			return domain.NewValidationError("destination", "cannot move folder into one of its own subfolders")
		}
	}
	if errors.Is(err, ErrCyclicReference) {
		return domain.NewValidationError("destination", "destination folder has a cyclic parent chain")
	}
	// a dangling ancestor ends the chain; the collaborator has the final word

	return nil
}

// CanMove reports whether Validate would allow req.
func (v *MoveValidator) CanMove(req MoveRequest) bool {
	return v.Validate(req) == nil
}

func sameLocation(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// normalizeName trims name and checks it against the length limit.
func normalizeName(field, name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required.Error(field+" cannot be empty"),
		validation.RuneLength(1, maxLen).Error(fmt.Sprintf("%s must be at most %d characters", field, maxLen)),
	)
	if err != nil {
		return "", domain.NewValidationError(field, err.Error())
	}
	return name, nil
}

// ValidateFolderName returns the trimmed folder name or a ValidationError.
func ValidateFolderName(name string) (string, error) {
	return normalizeName("folder name", name, config.MaxFolderNameLength)
}

// ValidateFileName returns the trimmed file name or a ValidationError.
func ValidateFileName(name string) (string, error) {
	return normalizeName("file name", name, config.MaxFileNameLength)
}
