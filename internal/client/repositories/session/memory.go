package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

// MemoryRepository keeps the session in process memory. Setting SaveErr or
// ClearErr makes the corresponding call fail without touching state.
type MemoryRepository struct {
	mu       sync.Mutex
	session  *models.Session
	SaveErr  error
	ClearErr error
	Saves    int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Save(_ context.Context, s models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Saves++
	r.session = &s
	return nil
}

func (r *MemoryRepository) Load(_ context.Context) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil || r.session.AccessToken == "" {
		return nil, nil
	}
	s := *r.session
	return &s, nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ClearErr != nil {
		return r.ClearErr
	}
	r.session = nil
	return nil
}
