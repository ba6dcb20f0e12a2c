// Package models defines the JSON shapes exchanged with the ItemDesk REST
// backend. They are shared by the API client and the development server so
// both sides stay on the same wire contract.
package models

import "time"

// User is the backend's representation of an account. The client treats it
// as read-only; the only way to change it is an explicit profile update.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a backend-owned resource belonging to a single user.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Token is the response of a successful login exchange. AccessToken is an
// opaque bearer credential; TokenType is always "bearer".
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserCreate is the registration request body.
type UserCreate struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

// UserUpdate carries a partial profile update. Nil fields are omitted from
// the request and left unchanged by the backend.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// ItemCreate is the item creation request body.
type ItemCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// ItemUpdate carries a partial item update. Nil fields are left unchanged.
type ItemUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ErrorBody is the structured error payload the backend answers with on any
// non-2xx status.
type ErrorBody struct {
	Detail string `json:"detail"`
}
