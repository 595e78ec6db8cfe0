package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"
	"docshelf/internal/httputil"
)

// handleError converts domain errors to envelope responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithData(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resourceType": conflictErr.ResourceType,
			"resourceId":   conflictErr.ResourceID,
		})
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// PathID parses a numeric path parameter, writing a 400 when it is invalid
func PathID(w http.ResponseWriter, r *http.Request, name, label string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a positive integer", label))
		return 0, false
	}
	return id, true
}

// queryID parses an optional numeric query parameter. Absent or empty yields nil.
func queryID(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, key)
	}
	return &id, nil
}

// queryScope maps the isPublic query parameter onto a scope (default private).
func queryScope(r *http.Request) (models.Scope, error) {
	raw := r.URL.Query().Get("isPublic")
	if raw == "" {
		return models.ScopePrivate, nil
	}
	public, err := strconv.ParseBool(raw)
	if err != nil {
		return "", fmt.Errorf("%w: isPublic must be true or false", domain.ErrValidation)
	}
	return models.ScopeFromPublic(public), nil
}
