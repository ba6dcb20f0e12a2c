package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/itemdesk/internal/logging"
	"github.com/dmitrijs2005/itemdesk/internal/models"
	"github.com/sethvargo/go-retry"
)

// Client defines the operations of the ItemDesk REST contract.
//
// Methods taking a token attach it as a bearer credential; Login and
// Register are the only unauthenticated calls. All methods honor context
// cancellation.
type Client interface {
	Login(ctx context.Context, email, password string) (models.Token, error)
	Register(ctx context.Context, in models.UserCreate) (models.User, error)
	CurrentUser(ctx context.Context, token string) (models.User, error)
	UpdateProfile(ctx context.Context, token string, upd models.UserUpdate) (models.User, error)
	ListItems(ctx context.Context, token string) ([]models.Item, error)
	CreateItem(ctx context.Context, token string, in models.ItemCreate) (models.Item, error)
	UpdateItem(ctx context.Context, token string, id int64, upd models.ItemUpdate) (models.Item, error)
	DeleteItem(ctx context.Context, token string, id int64) error
	Ping(ctx context.Context) error
}

const (
	defaultMaxRetries = 3
	retryBaseBackoff  = 200 * time.Millisecond
	retryMaxBackoff   = 2 * time.Second
)

// HTTPClient is the concrete Client over net/http. It is stateless apart
// from the fixed base URL; the caller owns the token.
type HTTPClient struct {
	baseURL    string
	hc         *http.Client
	timeout    time.Duration
	maxRetries uint64
	log        logging.Logger
}

// NewHTTPClient builds a client for the given base URL (e.g.
// "http://localhost:8000/api"). A non-zero timeout bounds every request;
// zero disables the bound.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		hc:         &http.Client{},
		timeout:    timeout,
		maxRetries: defaultMaxRetries,
		log:        log,
	}
}

// do performs a single API call. endpoint is a path relative to the base
// URL, body (if non-nil) is serialized to JSON, and on success the response
// body is decoded into out (if non-nil, no schema validation). GET requests
// are retried with exponential backoff on transport errors and 5xx.
func (c *HTTPClient) do(ctx context.Context, method, endpoint, token string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	if method != http.MethodGet {
		return c.attempt(ctx, method, endpoint, token, payload, out)
	}

	b := retry.WithCappedDuration(retryMaxBackoff, retry.NewExponential(retryBaseBackoff))
	b = retry.WithMaxRetries(c.maxRetries, b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := c.attempt(ctx, method, endpoint, token, payload, out)
		if retryable(err) {
			c.log.Debug(ctx, "retrying request", "method", method, "endpoint", endpoint, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

// retryable reports whether the failed call is safe and worth repeating:
// nothing reached the server, or the server answered 5xx. Only GETs ever
// get here.
func retryable(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == KindTransport || apiErr.StatusCode >= 500
}

func (c *HTTPClient) attempt(ctx context.Context, method, endpoint, token string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return newTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, readDetail(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindTransport, Message: "malformed response body", cause: err}
	}
	return nil
}

// readDetail extracts the backend's `detail` message from an error body.
// Returns "" when the body is missing or unparsable; the caller substitutes
// the generic fallback.
func readDetail(r io.Reader) string {
	var body models.ErrorBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Token, error) {
	var tok models.Token
	creds := models.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &tok); err != nil {
		return models.Token{}, err
	}
	return tok, nil
}

func (c *HTTPClient) Register(ctx context.Context, in models.UserCreate) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, upd models.UserUpdate) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/me", token, upd, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *HTTPClient) ListItems(ctx context.Context, token string) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/items/", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) CreateItem(ctx context.Context, token string, in models.ItemCreate) (models.Item, error) {
	var item models.Item
	if err := c.do(ctx, http.MethodPost, "/items/", token, in, &item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (c *HTTPClient) UpdateItem(ctx context.Context, token string, id int64, upd models.ItemUpdate) (models.Item, error) {
	var item models.Item
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/items/%d", id), token, upd, &item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (c *HTTPClient) DeleteItem(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), token, nil, nil)
}

// Ping checks backend liveness. Used by the CLI online-status watcher.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}
