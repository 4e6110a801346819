package domain

import (
	"errors"
	"time"

	sessiondomain "github.com/nexview/nexview-backend/internal/sessions/domain"
)

var ErrUserNotFound = errors.New("user not found")

// User is one account record. Email is the stable identity supplied by the
// auth layer and is unique across all users.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar,omitempty"`
	Streak    int       `json:"streak"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Sessions is populated only on full-aggregate reads.
	Sessions []sessiondomain.Session `json:"sessions,omitempty"`
}

// SyncUserRequest carries the identity and profile data captured at sign-in.
type SyncUserRequest struct {
	Email    string
	Username string
	Avatar   string
}

// UpdateProfileRequest carries optional profile updates.
type UpdateProfileRequest struct {
	Username *string
	Avatar   *string
}
