package handler

import (
	"log/slog"
	"net/http"

	docsysRepo "docshelf/internal/domain/repositories/docsystem"
	"docshelf/internal/httputil"
)

// NewRouter mounts the dashboard folder and file routes under /api
// (Go 1.22+ enhanced patterns).
func NewRouter(storage docsysRepo.Storage, logger *slog.Logger) *http.ServeMux {
	folderHandler := NewFolderHandler(storage, logger)
	fileHandler := NewFileHandler(storage, logger)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("PUT /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// File routes
	mux.HandleFunc("GET /api/files", fileHandler.ListFiles)
	mux.HandleFunc("PUT /api/files/{id}", fileHandler.UpdateFile)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)

	return mux
}
