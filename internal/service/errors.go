package service

import "errors"

var (
	// ErrValidation is wrapped around every payload validation failure:
	// a wrong field type, an unknown discriminant value, or a missing
	// required field.
	ErrValidation = errors.New("invalid data provided")

	// ErrEntityOwnedByAnotherUser is returned when a submitted entity id
	// collides with a row that belongs to a different account. The operation
	// fails closed: no information about the other row is revealed.
	ErrEntityOwnedByAnotherUser = errors.New("entity belongs to another user")

	// ErrVersionMismatch is returned by the direct update path when the
	// client's expected version does not match the stored one.
	ErrVersionMismatch = errors.New("entity version mismatch")

	// ErrEntityVersionRequired is returned when a direct update arrives
	// without the version the client last read.
	ErrEntityVersionRequired = errors.New("entity version is required")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInvalidOAuthState is returned when the state parameter returned by
	// the identity provider fails signature verification.
	ErrInvalidOAuthState = errors.New("invalid oauth state")

	// ErrNoDriveAccess is returned when the user has never granted Drive
	// access, so no backup operation can be performed on their behalf.
	ErrNoDriveAccess = errors.New("no drive access granted")

	// ErrUnsupportedBackupFormat is returned when a restored document carries
	// an unknown format version.
	ErrUnsupportedBackupFormat = errors.New("unsupported backup format")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
