// Package session stores the bearer session (token pair, role and expiry)
// as key/value rows of the local sqlite "session" table.
package session
