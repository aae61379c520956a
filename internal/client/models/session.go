package models

import "time"

// Session is the authenticated state of the device. An empty AccessToken
// means the device is unauthenticated.
type Session struct {
	AccessToken  string
	RefreshToken string
	Role         Role
	// ExpiresAt is taken from the access token's exp claim when present.
	ExpiresAt *time.Time
}

func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// Expired reports whether the access token is known to be past its expiry.
// Sessions without an expiry never report expired.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt == nil {
		return false
	}
	return !now.Before(*s.ExpiresAt)
}

// Credentials are the login form fields shared by every role.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
