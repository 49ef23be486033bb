// Package api implements the HTTP client for the remote account service.
// Transport failures, timeouts and non-2xx responses are all reported as
// domain.ErrServiceUnavailable: callers never branch on transport detail.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/duynhne/account-sdk/config"
	"github.com/duynhne/account-sdk/internal/core/domain"
	"github.com/duynhne/account-sdk/middleware"
)

const requestIDHeader = "X-Request-ID"

// Client talks to the account service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an account service client from the shared config.
func NewClient(cfg config.AccountConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// CreateAccount registers a new account via POST /users.
func (c *Client) CreateAccount(ctx context.Context, payload domain.CreationPayload) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "account.create", trace.WithAttributes(
		attribute.String("layer", "client"),
		attribute.String("http.method", http.MethodPost),
	))
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal creation payload: %w", err)
	}

	return c.do(ctx, http.MethodPost, "/users", "application/json", bytes.NewReader(body), false)
}

// UpdateProfile updates the caller's profile via PUT /profile. The request is
// scoped to the authenticated identity through the bearer credential.
func (c *Client) UpdateProfile(ctx context.Context, payload domain.SubmissionPayload) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "account.update_profile", trace.WithAttributes(
		attribute.String("layer", "client"),
		attribute.String("http.method", http.MethodPut),
		attribute.Bool("password_change", payload.Change != nil),
	))
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal submission payload: %w", err)
	}

	return c.do(ctx, http.MethodPut, "/profile", "application/json", bytes.NewReader(body), true)
}

// UpdateAvatar uploads a new avatar via PATCH /users/avatar as multipart form
// content. The response is a full account representation, reconciled into the
// session exactly like a profile update.
func (c *Client) UpdateAvatar(ctx context.Context, filename string, data io.Reader) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "account.update_avatar", trace.WithAttributes(
		attribute.String("layer", "client"),
		attribute.String("http.method", http.MethodPatch),
	))
	defer span.End()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("avatar", filename)
	if err != nil {
		return nil, fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("copy avatar payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPatch, "/users/avatar", writer.FormDataContentType(), &buf, true)
}

// do executes one request against the account service and decodes the account
// representation from the response.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, authenticated bool) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.RecordError(ctx, err)
		c.logger.Warn("Account service request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %v: %w", method, path, err, domain.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("Account service returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return nil, fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, domain.ErrServiceUnavailable)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode account representation: %v: %w", err, domain.ErrMalformedResponse)
	}

	return &user, nil
}
