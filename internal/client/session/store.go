// Package session holds the authenticated session of the device in memory
// and keeps it in step with local storage.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	sessionrepo "github.com/dmitrijs2005/bloodlink/internal/client/repositories/session"
	"github.com/dmitrijs2005/bloodlink/internal/logging"
)

var ErrInvalidSession = errors.New("session needs an access token and a known role")

// Store is the single source of truth for "who is logged in". Reads are
// served from memory; writes go to storage first and are published only
// once persisted.
type Store struct {
	repo sessionrepo.Repository
	log  logging.Logger

	mu      sync.RWMutex
	current *models.Session
}

var _ client.TokenSource = (*Store)(nil)

func NewStore(repo sessionrepo.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{repo: repo, log: log}
}

// Open loads a previously persisted session. A corrupt record is cleared
// and the store starts unauthenticated.
func (s *Store) Open(ctx context.Context) error {
	loaded, err := s.repo.Load(ctx)
	if errors.Is(err, sessionrepo.ErrCorrupt) {
		s.log.Warn(ctx, "discarding stored session", "error", err)
		if cerr := s.repo.Clear(ctx); cerr != nil {
			return fmt.Errorf("clear corrupt session: %w", cerr)
		}
		loaded, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	if loaded != nil {
		s.log.Info(ctx, "session restored", "role", loaded.Role)
	}
	return nil
}

// Close drops the in-memory session. Storage is left untouched.
func (s *Store) Close() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// Begin replaces any existing session with sess.
func (s *Store) Begin(ctx context.Context, sess models.Session) error {
	if sess.AccessToken == "" || !sess.Role.Valid() {
		return ErrInvalidSession
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.log.Info(ctx, "session started", "role", sess.Role)
	return nil
}

// End forgets the session. Memory is cleared even when storage fails, so the
// device is logged out either way; the storage error is still returned.
func (s *Store) End(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "session ended")
	return nil
}

// Current returns a copy of the session, or nil.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

func (s *Store) CurrentRole() (models.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return "", false
	}
	return s.current.Role, true
}

func (s *Store) TokenFor(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || s.current.AccessToken == "" {
		return "", client.ErrUnauthenticated
	}
	return s.current.AccessToken, nil
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.RefreshToken
}

// Rotate installs refreshed tokens. An empty refresh keeps the old one.
func (s *Store) Rotate(ctx context.Context, access, refresh string, expiresAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return client.ErrUnauthenticated
	}

	next := *s.current
	next.AccessToken = access
	if refresh != "" {
		next.RefreshToken = refresh
	}
	next.ExpiresAt = expiresAt

	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("persist rotated session: %w", err)
	}
	s.current = &next
	return nil
}
