package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
)

// UnitView is a blood unit with its days to expiry as of the read.
type UnitView struct {
	models.BloodUnit
	DaysToExpire int
}

// InventoryService keeps the hospital's inventory view in step with the
// backend. The summary is always replaced wholesale; mutations are followed
// by a full summary reload rather than local patching.
type InventoryService interface {
	LoadSummary(ctx context.Context) ([]models.BloodTypeSummary, error)
	Summary() []models.BloodTypeSummary
	SelectType(ctx context.Context, bt models.BloodType) ([]UnitView, error)
	Selected() (models.BloodType, bool)
	Create(ctx context.Context, in models.BloodUnitInput) error
	Update(ctx context.Context, id int64, in models.BloodUnitInput) error
	Delete(ctx context.Context, id int64) error
}

type inventoryService struct {
	client client.Client
	now    func() time.Time

	mu       sync.RWMutex
	summary  []models.BloodTypeSummary
	selected models.BloodType
}

// NewInventoryService uses now to compute days to expiry; nil means time.Now.
func NewInventoryService(c client.Client, now func() time.Time) InventoryService {
	if now == nil {
		now = time.Now
	}
	return &inventoryService{client: c, now: now}
}

func (s *inventoryService) LoadSummary(ctx context.Context) ([]models.BloodTypeSummary, error) {
	rows, err := s.client.BloodUnitSummary(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := append([]models.BloodTypeSummary(nil), rows...)
	s.mu.Lock()
	s.summary = snapshot
	s.mu.Unlock()

	return append([]models.BloodTypeSummary(nil), snapshot...), nil
}

func (s *inventoryService) Summary() []models.BloodTypeSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.BloodTypeSummary(nil), s.summary...)
}

func (s *inventoryService) SelectType(ctx context.Context, bt models.BloodType) ([]UnitView, error) {
	if !bt.Valid() {
		return nil, validation.New("blood_type", "must be a valid blood type")
	}
	units, err := s.client.BloodUnitsByType(ctx, bt)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.selected = bt
	s.mu.Unlock()

	now := s.now()
	views := make([]UnitView, 0, len(units))
	for _, u := range units {
		views = append(views, UnitView{BloodUnit: u, DaysToExpire: u.DaysToExpire(now)})
	}
	return views, nil
}

func (s *inventoryService) Selected() (models.BloodType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.selected != ""
}

func (s *inventoryService) Create(ctx context.Context, in models.BloodUnitInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if _, err := s.client.CreateBloodUnit(ctx, in); err != nil {
		return err
	}
	return s.reload(ctx)
}

func (s *inventoryService) Update(ctx context.Context, id int64, in models.BloodUnitInput) error {
	if id <= 0 {
		return validation.New("id", "must be a positive number")
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	if _, err := s.client.UpdateBloodUnit(ctx, id, in); err != nil {
		return err
	}
	return s.reload(ctx)
}

func (s *inventoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return validation.New("id", "must be a positive number")
	}
	if err := s.client.DeleteBloodUnit(ctx, id); err != nil {
		return err
	}
	return s.reload(ctx)
}

func (s *inventoryService) reload(ctx context.Context) error {
	if _, err := s.LoadSummary(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStaleSummary, err)
	}
	return nil
}
