package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	models "docshelf/internal/domain/models/docsystem"
)

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
}

type renameFolderRequest struct {
	Name string `json:"name"`
}

// moveFolderRequest always sends parentId; null moves the folder to root.
type moveFolderRequest struct {
	ParentID *int64 `json:"parentId"`
}

// ListFolders returns every folder in scope.
// GET /folders?isPublic=
func (c *Client) ListFolders(ctx context.Context, scope models.Scope) ([]models.Folder, error) {
	query := url.Values{}
	query.Set("isPublic", strconv.FormatBool(scope.IsPublic()))

	var folders []models.Folder
	if err := c.do(ctx, "listFolders", http.MethodGet, "/folders", query, nil, &folders); err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	return folders, nil
}

// CreateFolder creates a folder under parentID (nil = root).
// POST /folders
func (c *Client) CreateFolder(ctx context.Context, name string, parentID *int64, scope models.Scope) (*models.Folder, error) {
	req := createFolderRequest{Name: name, ParentID: parentID, IsPublic: scope.IsPublic()}

	var folder models.Folder
	if err := c.do(ctx, "createFolder", http.MethodPost, "/folders", nil, req, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RenameFolder changes a folder's name.
// PUT /folders/{id}
func (c *Client) RenameFolder(ctx context.Context, id int64, name string) (*models.Folder, error) {
	var folder models.Folder
	if err := c.do(ctx, "renameFolder", http.MethodPut, idPath("folders", id), nil, renameFolderRequest{Name: name}, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// MoveFolder re-parents a folder (nil = root).
// PUT /folders/{id}
func (c *Client) MoveFolder(ctx context.Context, id int64, parentID *int64) (*models.Folder, error) {
	var folder models.Folder
	if err := c.do(ctx, "moveFolder", http.MethodPut, idPath("folders", id), nil, moveFolderRequest{ParentID: parentID}, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder deletes a folder and, server side, its contents.
// DELETE /folders/{id}
func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	return c.do(ctx, "deleteFolder", http.MethodDelete, idPath("folders", id), nil, nil, nil)
}
