package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	models "docshelf/internal/domain/models/docsystem"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"
)

// ListFiles lists files in folderID, or all files in scope when nil.
// GET /files?folderId=&isPublic=
func (c *Client) ListFiles(ctx context.Context, folderID *int64, scope models.Scope) ([]models.File, error) {
	query := url.Values{}
	query.Set("isPublic", strconv.FormatBool(scope.IsPublic()))
	if folderID != nil {
		query.Set("folderId", strconv.FormatInt(*folderID, 10))
	}

	var files []models.File
	if err := c.do(ctx, "listFiles", http.MethodGet, "/files", query, nil, &files); err != nil {
		return nil, err
	}
	if files == nil {
		files = []models.File{}
	}
	return files, nil
}

// UpdateFile renames and/or moves a file. Only the fields set in update are sent.
// PUT /files/{id}
func (c *Client) UpdateFile(ctx context.Context, id int64, update docsysRepo.FileUpdate) (*models.File, error) {
	var file models.File
	if err := c.do(ctx, "updateFile", http.MethodPut, idPath("files", id), nil, update, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteFile deletes a file.
// DELETE /files/{id}
func (c *Client) DeleteFile(ctx context.Context, id int64) error {
	return c.do(ctx, "deleteFile", http.MethodDelete, idPath("files", id), nil, nil, nil)
}
