package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

// ErrCorrupt is returned by Load when stored rows cannot form a session.
var ErrCorrupt = errors.New("stored session is corrupt")

// Repository persists the single session of the device.
type Repository interface {
	// Save replaces the stored session atomically.
	Save(ctx context.Context, s models.Session) error
	// Load returns (nil, nil) when no session is stored.
	Load(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}
