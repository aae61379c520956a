package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/repositories/offers"
	"github.com/dmitrijs2005/bloodlink/internal/common"
	"github.com/dmitrijs2005/bloodlink/internal/logging"
)

// DonationService manages donation offers on the donor's device. Nothing
// here reaches the backend. At most one offer is accepted at a time, and an
// accepted offer cannot be cleared until its acceptance is cancelled.
type DonationService interface {
	Receive(ctx context.Context, o models.DonationOffer) (models.DonationOffer, error)
	List(ctx context.Context) ([]models.DonationOffer, error)
	Accept(ctx context.Context, id string) error
	CancelAccept(ctx context.Context, id string) error
	Clear(ctx context.Context, id string) error
	Directions(ctx context.Context, id string) (string, error)
}

type donationService struct {
	repo offers.Repository
	now  func() time.Time
	log  logging.Logger
}

func NewDonationService(repo offers.Repository, now func() time.Time, log logging.Logger) DonationService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logging.Discard()
	}
	return &donationService{repo: repo, now: now, log: log}
}

// Receive stores a new offer, unaccepted. An empty ID gets a fresh one.
func (s *donationService) Receive(ctx context.Context, o models.DonationOffer) (models.DonationOffer, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.Accepted = false
	if err := s.repo.Put(ctx, o, s.now()); err != nil {
		return models.DonationOffer{}, err
	}
	s.log.Debug(ctx, "donation offer received", "id", o.ID, "blood_group", o.BloodGroup)
	return o, nil
}

func (s *donationService) List(ctx context.Context) ([]models.DonationOffer, error) {
	return s.repo.List(ctx)
}

func (s *donationService) Accept(ctx context.Context, id string) error {
	return notFound(s.repo.Accept(ctx, id))
}

func (s *donationService) CancelAccept(ctx context.Context, id string) error {
	o, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !o.Accepted {
		return ErrOfferNotAccepted
	}
	return notFound(s.repo.Unaccept(ctx, id))
}

func (s *donationService) Clear(ctx context.Context, id string) error {
	o, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if o.Accepted {
		return ErrOfferAccepted
	}
	return notFound(s.repo.Delete(ctx, id))
}

// Directions returns a maps link to the hospital of an accepted offer.
func (s *donationService) Directions(ctx context.Context, id string) (string, error) {
	o, err := s.get(ctx, id)
	if err != nil {
		return "", err
	}
	if !o.Accepted {
		return "", ErrOfferNotAccepted
	}
	dest := o.HospitalName
	if o.Location != "" {
		dest = fmt.Sprintf("%s, %s", o.HospitalName, o.Location)
	}
	return "https://www.google.com/maps/dir/?api=1&destination=" + url.QueryEscape(dest), nil
}

func (s *donationService) get(ctx context.Context, id string) (*models.DonationOffer, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

func notFound(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return ErrOfferNotFound
	}
	return err
}
