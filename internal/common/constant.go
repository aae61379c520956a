// Package common contains constants shared by the bloodlink client packages.
package common

// HTTP header names used on outbound API calls.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Keys of the persisted session rows in local storage.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
	RoleKey         = "role"
	ExpiresAtKey    = "expires_at"
)
