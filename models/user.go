package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account authenticated through the external identity
// provider. The Google token fields are stored so the backup subsystem can
// talk to the Drive API on the user's behalf; they must never be exposed
// outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user. Every entity row
	// and every sync operation is scoped to it.
	ID uuid.UUID `json:"id"`

	// GoogleID is the identity provider's stable subject identifier.
	GoogleID string `json:"-"`

	// Email is the verified address reported by the identity provider.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// ProfilePicture is an optional avatar URL.
	ProfilePicture *string `json:"profile_picture,omitempty"`

	// GoogleAccessToken is the short-lived Drive API token.
	GoogleAccessToken *string `json:"-"`

	// GoogleRefreshToken allows refreshing the access token offline.
	GoogleRefreshToken *string `json:"-"`

	// GoogleTokenExpiresAt is the access token's expiry instant.
	GoogleTokenExpiresAt *time.Time `json:"-"`

	// CreatedAt is when the account first authenticated.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the last profile refresh.
	UpdatedAt time.Time `json:"-"`

	// LastSyncAt is the timestamp of the user's last successful sync batch.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
