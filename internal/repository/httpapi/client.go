package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"docshelf/internal/domain"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"
	"docshelf/internal/httputil"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// Config configures the REST client.
type Config struct {
	BaseURL  string // e.g. http://localhost:8080/api
	Token    string // bearer token, optional
	RetryMax int
	Timeout  time.Duration
}

// Client is the storage service over the dashboard REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	now        func() time.Time
	logger     *slog.Logger
}

var _ docsysRepo.Storage = (*Client)(nil)

// NewClient creates a REST client with retries on transport errors and 5xx.
// A POST is retried only when no response arrived.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q", cfg.BaseURL)
	}

	logger = logger.With("component", "httpapi")

	// Wrap with retry logic
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.Logger = logger // *slog.Logger satisfies retryablehttp.LeveledLogger
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.CheckRetry = idempotentRetryPolicy

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    strings.TrimSuffix(base.String(), "/"),
		token:      cfg.Token,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// idempotentRetryPolicy is retryablehttp's default policy, except that a
// response to a POST is final: the server may already have created the folder.
func idempotentRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.Request != nil && resp.Request.Method == http.MethodPost {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// apiResponse is the envelope as received; data is decoded separately.
type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do performs one API call. Any failure is returned as a *domain.CollaboratorError
// tagged with op; on success the envelope data is decoded into out (if non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	if err := c.checkToken(op); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return &domain.CollaboratorError{Op: op, Err: fmt.Errorf("marshal request body: %w", err)}
		}
		reqBody = bytes.NewReader(jsonData)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return &domain.CollaboratorError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(httputil.RequestIDHeader, requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("API call failed",
			"op", op,
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return &domain.CollaboratorError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.CollaboratorError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("API call",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", c.now().Sub(started).Milliseconds(),
	)

	var envelope apiResponse
	decodeErr := json.Unmarshal(payload, &envelope)

	if resp.StatusCode >= 400 || decodeErr != nil || envelope.Code != httputil.CodeOK {
		return responseError(op, resp.StatusCode, envelope, decodeErr)
	}

	if out == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &domain.CollaboratorError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode %s data: %w", op, err)}
	}
	return nil
}

// responseError builds the CollaboratorError for a non-success response.
// The envelope message is kept as the user-facing text when present.
func responseError(op string, httpStatus int, envelope apiResponse, decodeErr error) *domain.CollaboratorError {
	status := httpStatus
	if status < 400 && envelope.Code != 0 {
		status = envelope.Code
	}

	collabErr := &domain.CollaboratorError{
		Op:      op,
		Status:  status,
		Message: envelope.Message,
		Err:     sentinelFor(status),
	}
	if decodeErr != nil && collabErr.Err == nil {
		collabErr.Err = fmt.Errorf("decode envelope: %w", decodeErr)
	}
	return collabErr
}

// sentinelFor maps well-known statuses to domain sentinels so callers can
// errors.Is through the CollaboratorError.
func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	default:
		return nil
	}
}

// IsUnauthorized reports whether err means the token was rejected or expired.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

func idPath(resource string, id int64) string {
	return fmt.Sprintf("/%s/%d", resource, id)
}
