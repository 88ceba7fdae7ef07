// Package adapter holds the outbound HTTP clients: the Google OAuth endpoints
// used for sign-in and the Drive files API used for backups.
package adapter

import "errors"

// Sentinel errors for upstream failures. The HTTP layer maps them onto
// response codes; everything unrecognised becomes a bad-gateway.
var (
	ErrUpstreamBadRequest   = errors.New("upstream rejected request")
	ErrUpstreamUnauthorized = errors.New("upstream unauthorized")
	ErrUpstreamNotFound     = errors.New("upstream resource not found")
	ErrUpstreamUnavailable  = errors.New("upstream unavailable")
)
