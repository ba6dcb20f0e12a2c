package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/itemdesk/internal/logging"
	"github.com/dmitrijs2005/itemdesk/internal/models"
	"github.com/dmitrijs2005/itemdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/itemdesk/internal/server/store"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newBackend runs the real development server router so the client is tested
// against the actual wire contract.
func newBackend(t *testing.T) *HTTPClient {
	t.Helper()

	log := testLogger()
	h := httpapi.NewHandler(store.New(), []byte("test-secret"), time.Minute, log)
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)

	return NewHTTPClient(srv.URL+"/api", 5*time.Second, log)
}

func login(t *testing.T, c *HTTPClient, email string) string {
	t.Helper()
	ctx := context.Background()

	_, err := c.Register(ctx, models.UserCreate{Email: email, Password: "secret123"})
	require.NoError(t, err)

	tok, err := c.Login(ctx, email, "secret123")
	require.NoError(t, err)
	return tok.AccessToken
}

func TestLogin_TokenWorksForCurrentUser(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	token := login(t, c, "user@example.com")

	user, err := c.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "nobody@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.EqualError(t, err, "Incorrect email or password")
}

func TestRegister_DuplicateEmailIsValidation(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	_, err := c.Register(ctx, models.UserCreate{Email: "user@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = c.Register(ctx, models.UserCreate{Email: "user@example.com", Password: "other"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "Email already registered")
}

func TestItems_RoundTrip(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()
	token := login(t, c, "user@example.com")

	desc := "description"
	created, err := c.CreateItem(ctx, token, models.ItemCreate{Title: "First", Description: &desc})
	require.NoError(t, err)

	items, err := c.ListItems(ctx, token)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "First", items[0].Title)

	newTitle := "Renamed"
	updated, err := c.UpdateItem(ctx, token, created.ID, models.ItemUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.Description, "partial update must keep the description")
	assert.Equal(t, desc, *updated.Description)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, c.DeleteItem(ctx, token, created.ID))

	items, err = c.ListItems(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteItem_MissingIsNotFound(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()
	token := login(t, c, "user@example.com")

	err := c.DeleteItem(ctx, token, 12345)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "Item not found")
}

func TestInvalidToken_IsUnauthorized(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	_, err := c.ListItems(ctx, "not-a-token")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestUnparsableErrorBody_FallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "<html>not json</html>")
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 5*time.Second, testLogger())

	_, err := c.Register(context.Background(), models.UserCreate{Email: "a@b.c", Password: "p"})
	require.Error(t, err)
	assert.EqualError(t, err, "an error occurred")
	assert.True(t, IsValidation(err))
}

func TestUnreachableServer_IsTransport(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1/api", time.Second, testLogger())
	c.maxRetries = 0

	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestRetry_GetRetriedOn5xx(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"status":"ok"}`)
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 5*time.Second, testLogger())

	require.NoError(t, c.Ping(context.Background()))
	assert.EqualValues(t, 2, calls.Load())
}

func TestRetry_MutationsAreNotRetried(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 5*time.Second, testLogger())

	_, err := c.CreateItem(context.Background(), "token", models.ItemCreate{Title: "x"})
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load(), "POST must be attempted exactly once")
}
