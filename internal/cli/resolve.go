package cli

import (
	"fmt"
	"strconv"
	"strings"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"
	docsys "docshelf/internal/service/docsystem"
)

// resolveFolder turns a folder argument into an id. "" and "/" mean root and
// "#<id>" is always an id. Anything else is a slash-separated name path walked
// from the roots of snap; a bare number that names no folder is taken as an id.
func resolveFolder(snap *docsys.Snapshot, arg string) (*int64, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" || arg == "/" {
		return nil, nil
	}
	if id, ok := explicitID(arg); ok {
		return &id, nil
	}

	if node := walkPath(snap, splitPath(arg)); node != nil {
		id := node.ID()
		return &id, nil
	}
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return &id, nil
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("no folder at %q", arg)}
}

// resolveFile accepts "#<id>", a "folder/path/name" path, or a bare number
// that names no file.
func resolveFile(snap *docsys.Snapshot, arg string) (int64, error) {
	arg = strings.TrimSpace(arg)
	if id, ok := explicitID(arg); ok {
		return id, nil
	}

	parts := splitPath(arg)
	if len(parts) == 0 {
		return 0, domain.NewValidationError("file", "file path cannot be empty")
	}
	dir, name := parts[:len(parts)-1], parts[len(parts)-1]

	var folderID *int64
	found := len(dir) == 0
	if node := walkPath(snap, dir); node != nil {
		id := node.ID()
		folderID, found = &id, true
	}
	if found {
		for _, f := range snap.FilesIn(folderID) {
			if f.Name == name {
				return f.ID, nil
			}
		}
	}

	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, nil
	}
	return 0, &domain.NotFoundError{Message: fmt.Sprintf("no file at %q", arg)}
}

// explicitID parses "#<id>".
func explicitID(arg string) (int64, bool) {
	rest, ok := strings.CutPrefix(arg, "#")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	return id, err == nil
}

// walkPath follows folder names from the roots; nil when a name is missing
// or parts is empty.
func walkPath(snap *docsys.Snapshot, parts []string) *models.FolderTreeNode {
	nodes := snap.Roots()
	var current *models.FolderTreeNode
	for _, part := range parts {
		current = childNamed(nodes, part)
		if current == nil {
			return nil
		}
		nodes = current.Folders
	}
	return current
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func childNamed(nodes []*models.FolderTreeNode, name string) *models.FolderTreeNode {
	for _, node := range nodes {
		if node.Folder.Name == name {
			return node
		}
	}
	return nil
}
