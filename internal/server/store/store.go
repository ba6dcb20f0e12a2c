// Package store is the in-memory persistence layer of the development
// server. It mirrors the relational schema of the production backend (users
// and items with an owner foreign key) with mutex-guarded maps and
// auto-incremented ids.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemdesk/internal/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

type userRecord struct {
	user         models.User
	passwordHash string
}

type Store struct {
	mu sync.RWMutex

	users      map[int64]*userRecord
	items      map[int64]models.Item
	nextUserID int64
	nextItemID int64
}

func New() *Store {
	return &Store{
		users: make(map[int64]*userRecord),
		items: make(map[int64]models.Item),
	}
}

// CreateUser inserts a new active user. Emails are unique.
func (s *Store) CreateUser(email, passwordHash string, fullName *string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.users {
		if rec.user.Email == email {
			return models.User{}, ErrEmailTaken
		}
	}

	s.nextUserID++
	user := models.User{
		ID:        s.nextUserID,
		Email:     email,
		FullName:  fullName,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	s.users[user.ID] = &userRecord{user: user, passwordHash: passwordHash}
	return user, nil
}

// UserByEmail returns the user and password hash for a login check.
func (s *Store) UserByEmail(email string) (models.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.users {
		if rec.user.Email == email {
			return rec.user, rec.passwordHash, nil
		}
	}
	return models.User{}, "", ErrNotFound
}

func (s *Store) UserByID(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return rec.user, nil
}

// UpdateUser applies a partial update. Nil fields keep their current value;
// changing the email to one used by another account fails with
// ErrEmailTaken.
func (s *Store) UpdateUser(id int64, upd models.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	if upd.Email != nil {
		for otherID, other := range s.users {
			if otherID != id && other.user.Email == *upd.Email {
				return models.User{}, ErrEmailTaken
			}
		}
		rec.user.Email = *upd.Email
	}
	if upd.FullName != nil {
		rec.user.FullName = upd.FullName
	}

	return rec.user, nil
}

// CreateItem inserts an item owned by ownerID.
func (s *Store) CreateItem(ownerID int64, in models.ItemCreate) models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextItemID++
	item := models.Item{
		ID:          s.nextItemID,
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}
	s.items[item.ID] = item
	return item
}

// ItemsByOwner returns the owner's items ordered by id.
func (s *Store) ItemsByOwner(ownerID int64) []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Item, 0)
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// ItemByOwner returns the item only when it exists and belongs to ownerID;
// foreign items are indistinguishable from absent ones.
func (s *Store) ItemByOwner(id, ownerID int64) (models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.itemByOwnerLocked(id, ownerID)
}

func (s *Store) itemByOwnerLocked(id, ownerID int64) (models.Item, error) {
	item, ok := s.items[id]
	if !ok || item.OwnerID != ownerID {
		return models.Item{}, ErrNotFound
	}
	return item, nil
}

// UpdateItem applies a partial update to an owned item. Nil fields keep
// their current value; CreatedAt never changes.
func (s *Store) UpdateItem(id, ownerID int64, upd models.ItemUpdate) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.itemByOwnerLocked(id, ownerID)
	if err != nil {
		return models.Item{}, err
	}

	if upd.Title != nil {
		item.Title = *upd.Title
	}
	if upd.Description != nil {
		item.Description = upd.Description
	}

	s.items[id] = item
	return item, nil
}

// DeleteItem removes an owned item.
func (s *Store) DeleteItem(id, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.itemByOwnerLocked(id, ownerID); err != nil {
		return err
	}
	delete(s.items, id)
	return nil
}
