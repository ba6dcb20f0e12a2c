package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/itemdesk/internal/models"
)

func strptr(s string) *string { return &s }

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := New()

	_, err := s.CreateUser("user@example.com", "hash", nil)
	require.NoError(t, err)

	_, err = s.CreateUser("user@example.com", "hash2", nil)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	s := New()
	u, err := s.CreateUser("user@example.com", "hash", strptr("Old Name"))
	require.NoError(t, err)

	got, err := s.UpdateUser(u.ID, models.UserUpdate{FullName: strptr("New Name")})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.Email, "email must be unchanged")
	require.NotNil(t, got.FullName)
	assert.Equal(t, "New Name", *got.FullName)
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	s := New()
	_, err := s.CreateUser("first@example.com", "hash", nil)
	require.NoError(t, err)
	second, err := s.CreateUser("second@example.com", "hash", nil)
	require.NoError(t, err)

	_, err = s.UpdateUser(second.ID, models.UserUpdate{Email: strptr("first@example.com")})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestItems_OwnershipScoping(t *testing.T) {
	s := New()
	alice, err := s.CreateUser("alice@example.com", "hash", nil)
	require.NoError(t, err)
	bob, err := s.CreateUser("bob@example.com", "hash", nil)
	require.NoError(t, err)

	item := s.CreateItem(alice.ID, models.ItemCreate{Title: "Alice's item"})

	_, err = s.ItemByOwner(item.ID, bob.ID)
	require.ErrorIs(t, err, ErrNotFound, "foreign items must look absent")

	assert.Empty(t, s.ItemsByOwner(bob.ID))
	assert.Len(t, s.ItemsByOwner(alice.ID), 1)
}

func TestUpdateItem_PartialKeepsOtherFields(t *testing.T) {
	s := New()
	u, err := s.CreateUser("user@example.com", "hash", nil)
	require.NoError(t, err)

	item := s.CreateItem(u.ID, models.ItemCreate{Title: "T", Description: strptr("D")})

	got, err := s.UpdateItem(item.ID, u.ID, models.ItemUpdate{Title: strptr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "D", *got.Description)
	assert.Equal(t, item.CreatedAt, got.CreatedAt)
}

func TestDeleteItem_RemovesFromList(t *testing.T) {
	s := New()
	u, err := s.CreateUser("user@example.com", "hash", nil)
	require.NoError(t, err)

	item := s.CreateItem(u.ID, models.ItemCreate{Title: "T"})
	require.NoError(t, s.DeleteItem(item.ID, u.ID))

	assert.Empty(t, s.ItemsByOwner(u.ID))
	require.ErrorIs(t, s.DeleteItem(item.ID, u.ID), ErrNotFound)
}

func TestItemsByOwner_OrderedByID(t *testing.T) {
	s := New()
	u, err := s.CreateUser("user@example.com", "hash", nil)
	require.NoError(t, err)

	s.CreateItem(u.ID, models.ItemCreate{Title: "first"})
	s.CreateItem(u.ID, models.ItemCreate{Title: "second"})
	s.CreateItem(u.ID, models.ItemCreate{Title: "third"})

	items := s.ItemsByOwner(u.ID)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "third", items[2].Title)
}
