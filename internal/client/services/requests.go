package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
)

// RequestService lists and edits the hospital's blood requests. At most one
// request is in edit mode; its editable fields live in the draft until saved.
type RequestService interface {
	List(ctx context.Context) ([]models.BloodRequest, error)
	All() []models.BloodRequest
	Filter(substring string) []models.BloodRequest
	Create(ctx context.Context, in models.BloodRequestInput) (*models.BloodRequest, error)

	BeginEdit(id int64) (models.RequestDraft, error)
	Draft() (int64, models.RequestDraft, bool)
	SetDraftStatus(status models.RequestStatus) error
	SetDraftQuantity(quantity int) error
	CancelEdit()
	SaveEdit(ctx context.Context, id int64) (*models.BloodRequest, error)
}

type requestService struct {
	client client.Client

	mu      sync.RWMutex
	list    []models.BloodRequest
	draftID int64
	draft   *models.RequestDraft
}

func NewRequestService(c client.Client) RequestService {
	return &requestService{client: c}
}

func (s *requestService) List(ctx context.Context) ([]models.BloodRequest, error) {
	list, err := s.client.ListBloodRequests(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.list = append([]models.BloodRequest(nil), list...)
	s.mu.Unlock()

	return s.All(), nil
}

func (s *requestService) All() []models.BloodRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.BloodRequest(nil), s.list...)
}

// Filter matches substring case-insensitively against blood type or status.
// The cached list is not modified.
func (s *requestService) Filter(substring string) []models.BloodRequest {
	needle := strings.ToLower(strings.TrimSpace(substring))
	all := s.All()
	if needle == "" {
		return all
	}

	out := make([]models.BloodRequest, 0, len(all))
	for _, r := range all {
		if strings.Contains(strings.ToLower(string(r.BloodType)), needle) ||
			strings.Contains(strings.ToLower(string(r.Status)), needle) {
			out = append(out, r)
		}
	}
	return out
}

func (s *requestService) Create(ctx context.Context, in models.BloodRequestInput) (*models.BloodRequest, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	created, err := s.client.CreateBloodRequest(ctx, in)
	if err != nil {
		return nil, err
	}

	row := *created
	if row.BloodType == "" {
		row.BloodType = in.BloodType
	}
	if row.Quantity == 0 {
		row.Quantity = in.Quantity
	}
	if row.PriorityLevel == "" {
		row.PriorityLevel = in.PriorityLevel
	}
	if row.Status == "" {
		row.Status = models.StatusPending
	}

	s.mu.Lock()
	s.list = append(s.list, row)
	s.mu.Unlock()
	return &row, nil
}

// BeginEdit snapshots the request into the draft, discarding any other.
func (s *requestService) BeginEdit(id int64) (models.RequestDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.RequestDraft{}, ErrRequestNotFound
	}
	d := models.RequestDraft{Status: s.list[i].Status, Quantity: s.list[i].Quantity}
	s.draftID = id
	s.draft = &d
	return d, nil
}

func (s *requestService) Draft() (int64, models.RequestDraft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft == nil {
		return 0, models.RequestDraft{}, false
	}
	return s.draftID, *s.draft, true
}

func (s *requestService) SetDraftStatus(status models.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ErrNoDraft
	}
	s.draft.Status = status
	return nil
}

func (s *requestService) SetDraftQuantity(quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ErrNoDraft
	}
	s.draft.Quantity = quantity
	return nil
}

func (s *requestService) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
	s.draftID = 0
}

// SaveEdit sends the full draft. On success only the edited item is patched
// and the draft is cleared; on failure the draft is kept for a retry.
func (s *requestService) SaveEdit(ctx context.Context, id int64) (*models.BloodRequest, error) {
	s.mu.RLock()
	if s.draft == nil || s.draftID != id {
		s.mu.RUnlock()
		return nil, ErrNoDraft
	}
	draft := *s.draft
	s.mu.RUnlock()

	if err := validation.Struct(draft); err != nil {
		return nil, err
	}

	ack, err := s.client.UpdateBloodRequest(ctx, id, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var patched models.BloodRequest
	if i := s.indexOf(id); i >= 0 {
		s.list[i].Status = draft.Status
		s.list[i].Quantity = draft.Quantity
		if ack != nil && ack.FulfilledAt != nil {
			s.list[i].FulfilledAt = ack.FulfilledAt
		}
		patched = s.list[i]
	} else {
		patched = models.BloodRequest{ID: id, Status: draft.Status, Quantity: draft.Quantity}
	}
	if s.draftID == id {
		s.draft = nil
		s.draftID = 0
	}
	return &patched, nil
}

func (s *requestService) indexOf(id int64) int {
	for i := range s.list {
		if s.list[i].ID == id {
			return i
		}
	}
	return -1
}
