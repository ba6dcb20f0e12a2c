// Package services contains application services for the ItemDesk CLI,
// sitting between the command layer and the API client.
package services

import (
	"context"

	"github.com/dmitrijs2005/itemdesk/internal/client/api"
	"github.com/dmitrijs2005/itemdesk/internal/client/session"
	"github.com/dmitrijs2005/itemdesk/internal/models"
)

// TokenSource supplies the bearer token for authenticated calls and is told
// when the backend refused it. *session.Session satisfies it.
type TokenSource interface {
	Token() string
	Invalidate(ctx context.Context)
}

// ItemService defines the item operations of the CLI. The service holds no
// item state: callers reload the list from the backend after every mutation
// rather than patching a local copy.
type ItemService interface {
	List(ctx context.Context) ([]models.Item, error)
	Create(ctx context.Context, in models.ItemCreate) (models.Item, error)
	Update(ctx context.Context, id int64, upd models.ItemUpdate) (models.Item, error)
	Delete(ctx context.Context, id int64) error
}

type itemService struct {
	client  api.Client
	session TokenSource
}

func NewItemService(client api.Client, sess TokenSource) ItemService {
	return &itemService{client: client, session: sess}
}

// authorized runs fn with the current token and tears the session down when
// the backend answers with an authentication failure.
func (s *itemService) authorized(ctx context.Context, fn func(token string) error) error {
	token := s.session.Token()
	if token == "" {
		return session.ErrNotAuthenticated
	}

	err := fn(token)
	if api.IsUnauthorized(err) {
		s.session.Invalidate(ctx)
	}
	return err
}

func (s *itemService) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.authorized(ctx, func(token string) error {
		var err error
		items, err = s.client.ListItems(ctx, token)
		return err
	})
	return items, err
}

func (s *itemService) Create(ctx context.Context, in models.ItemCreate) (models.Item, error) {
	var item models.Item
	err := s.authorized(ctx, func(token string) error {
		var err error
		item, err = s.client.CreateItem(ctx, token, in)
		return err
	})
	return item, err
}

func (s *itemService) Update(ctx context.Context, id int64, upd models.ItemUpdate) (models.Item, error) {
	var item models.Item
	err := s.authorized(ctx, func(token string) error {
		var err error
		item, err = s.client.UpdateItem(ctx, token, id, upd)
		return err
	})
	return item, err
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	return s.authorized(ctx, func(token string) error {
		return s.client.DeleteItem(ctx, token, id)
	})
}
