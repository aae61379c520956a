package offers

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

type Repository interface {
	// Put inserts the offer or replaces an offer with the same id.
	Put(ctx context.Context, o models.DonationOffer, receivedAt time.Time) error
	// List returns offers oldest first.
	List(ctx context.Context) ([]models.DonationOffer, error)
	// Get returns common.ErrorNotFound for unknown ids.
	Get(ctx context.Context, id string) (*models.DonationOffer, error)
	// Accept marks id as the only accepted offer.
	Accept(ctx context.Context, id string) error
	Unaccept(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
