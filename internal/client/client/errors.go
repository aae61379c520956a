package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrUnavailable     = errors.New("server unavailable")
	ErrTimeout         = errors.New("request timed out")
	ErrUnauthorized    = errors.New("unauthorized")
)

type AuthErrorKind string

const (
	AuthInvalidCredentials AuthErrorKind = "invalid_credentials"
	AuthPendingApproval    AuthErrorKind = "pending_approval"
	AuthRejected           AuthErrorKind = "rejected"
	AuthNetwork            AuthErrorKind = "network"
)

// AuthError is returned by login when the attempt did not produce a session.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	// Err is the underlying transport error for AuthNetwork.
	Err error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case AuthInvalidCredentials:
		return "invalid login credentials"
	case AuthPendingApproval:
		return "account is pending approval"
	case AuthRejected:
		return "account has been rejected"
	case AuthNetwork:
		return "network error, please try again"
	}
	return "login failed"
}

func (e *AuthError) Unwrap() error { return e.Err }

// bannerKeys hold form-level messages rather than per-field ones.
var bannerKeys = []string{"detail", "error", "message", "non_field_errors"}

// ServerError is a non-2xx backend reply. Fields holds field-keyed messages
// (e.g. {"email": ["already registered"]}); Detail the general one.
type ServerError struct {
	StatusCode int
	Fields     map[string][]string
	Detail     string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Banner())
}

// Is lets 401 replies match ErrUnauthorized. A 403 is a permission denial
// for a valid session and stays a plain ServerError.
func (e *ServerError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Field joins the messages reported for one form field.
func (e *ServerError) Field(name string) string {
	return strings.Join(e.Fields[name], " ")
}

// FieldNames returns the fields that carry messages, sorted.
func (e *ServerError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Banner is the message to show above a form.
func (e *ServerError) Banner() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.Fields) > 0 {
		name := e.FieldNames()[0]
		return name + ": " + e.Field(name)
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return "unexpected server response"
}

func decodeServerError(status int, body []byte) *ServerError {
	se := &ServerError{StatusCode: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		text := strings.TrimSpace(string(body))
		if text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
			se.Detail = text
		}
		return se
	}

	for _, key := range bannerKeys {
		if v, ok := raw[key]; ok {
			if msgs := messages(v); len(msgs) > 0 && se.Detail == "" {
				se.Detail = strings.Join(msgs, " ")
			}
			delete(raw, key)
		}
	}

	for key, v := range raw {
		msgs := messages(v)
		if len(msgs) == 0 {
			continue
		}
		if se.Fields == nil {
			se.Fields = make(map[string][]string)
		}
		se.Fields[key] = msgs
	}
	return se
}

// messages accepts a string, a list of strings or any other JSON value.
func messages(v json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	var list []any
	if err := json.Unmarshal(v, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	var other any
	if err := json.Unmarshal(v, &other); err == nil && other != nil {
		if _, isBool := other.(bool); isBool {
			return nil
		}
		return []string{fmt.Sprint(other)}
	}
	return nil
}
