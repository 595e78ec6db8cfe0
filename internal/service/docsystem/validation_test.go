package docsystem

import (
	"errors"
	"strings"
	"testing"

	"docshelf/internal/config"
	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"
)

func TestMoveValidator(t *testing.T) {
	v := NewMoveValidator(NewFolderIndex([]models.Folder{
		folder(1, "A", nil),
		folder(2, "B", ptr(1)),
		folder(3, "C", ptr(2)),
		folder(4, "D", nil),
		folder(5, "X", ptr(6)),
		folder(6, "Y", ptr(5)),
	}))

	tests := []struct {
		name    string
		req     MoveRequest
		allowed bool
	}{
		{
			name:    "folder onto its current parent",
			req:     MoveRequest{Kind: MoveFolder, ID: 2, CurrentParentID: ptr(1), DestinationID: ptr(1)},
			allowed: false,
		},
		{
			name:    "folder to root",
			req:     MoveRequest{Kind: MoveFolder, ID: 2, CurrentParentID: ptr(1), DestinationID: nil},
			allowed: true,
		},
		{
			name:    "root folder to root",
			req:     MoveRequest{Kind: MoveFolder, ID: 1, CurrentParentID: nil, DestinationID: nil},
			allowed: false,
		},
		{
			name:    "folder into itself",
			req:     MoveRequest{Kind: MoveFolder, ID: 1, CurrentParentID: nil, DestinationID: ptr(1)},
			allowed: false,
		},
		{
			name:    "folder into child",
			req:     MoveRequest{Kind: MoveFolder, ID: 1, CurrentParentID: nil, DestinationID: ptr(2)},
			allowed: false,
		},
		{
			name:    "folder into grandchild",
			req:     MoveRequest{Kind: MoveFolder, ID: 1, CurrentParentID: nil, DestinationID: ptr(3)},
			allowed: false,
		},
		{
			name:    "folder into unrelated folder",
			req:     MoveRequest{Kind: MoveFolder, ID: 2, CurrentParentID: ptr(1), DestinationID: ptr(4)},
			allowed: true,
		},
		{
			name:    "folder into cyclic region",
			req:     MoveRequest{Kind: MoveFolder, ID: 4, CurrentParentID: nil, DestinationID: ptr(5)},
			allowed: false,
		},
		{
			name:    "file into another folder",
			req:     MoveRequest{Kind: MoveFile, ID: 2, CurrentParentID: ptr(1), DestinationID: ptr(2)},
			allowed: true,
		},
		{
			name:    "file onto its current folder",
			req:     MoveRequest{Kind: MoveFile, ID: 10, CurrentParentID: ptr(3), DestinationID: ptr(3)},
			allowed: false,
		},
		{
			name:    "file from root to root",
			req:     MoveRequest{Kind: MoveFile, ID: 10, CurrentParentID: nil, DestinationID: nil},
			allowed: false,
		},
		{
			name:    "file into cyclic region",
			req:     MoveRequest{Kind: MoveFile, ID: 10, CurrentParentID: nil, DestinationID: ptr(5)},
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if got := err == nil; got != tt.allowed {
				t.Fatalf("expected allowed=%v, got error %v", tt.allowed, err)
			}
			if err != nil && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected a validation error, got %T", err)
			}
			if v.CanMove(tt.req) != tt.allowed {
				t.Errorf("CanMove disagrees with Validate")
			}
		})
	}
}

func TestValidateFolderName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "Papers", want: "Papers"},
		{name: "trimmed", input: "  Papers  ", want: "Papers"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: " \t ", wantErr: true},
		{name: "at limit", input: strings.Repeat("a", config.MaxFolderNameLength), want: strings.Repeat("a", config.MaxFolderNameLength)},
		{name: "too long", input: strings.Repeat("a", config.MaxFolderNameLength+1), wantErr: true},
		{name: "multibyte at limit", input: strings.Repeat("文", config.MaxFolderNameLength), want: strings.Repeat("文", config.MaxFolderNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFolderName(tt.input)
			if tt.wantErr {
				var vErr *domain.ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
