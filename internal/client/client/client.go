package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

// TokenSource supplies the bearer token of the current session and accepts
// rotated tokens after a refresh.
type TokenSource interface {
	// TokenFor returns ErrUnauthenticated when there is no session.
	TokenFor(ctx context.Context) (string, error)
	RefreshToken() string
	Rotate(ctx context.Context, access, refresh string, expiresAt *time.Time) error
}

// LoginResult is the decoded /login/{role}/ reply. Status carries the
// approval state ("pending", "rejected") when the backend reports one.
type LoginResult struct {
	Access  string
	Refresh string
	Status  string
}

type Client interface {
	Login(ctx context.Context, role models.Role, creds models.Credentials) (*LoginResult, error)

	RegisterDonor(ctx context.Context, r models.DonorRegistration) error
	RegisterDeliveryStaff(ctx context.Context, r models.DeliveryStaffRegistration) error
	RegisterHospital(ctx context.Context, r models.HospitalRegistration) (string, error)

	DonorProfile(ctx context.Context) (*models.DonorProfile, error)
	UpdateDonorProfile(ctx context.Context, p models.DonorProfile) (*models.DonorProfile, error)
	HospitalProfile(ctx context.Context) (*models.HospitalProfile, error)

	BloodUnitSummary(ctx context.Context) ([]models.BloodTypeSummary, error)
	BloodUnitsByType(ctx context.Context, bt models.BloodType) ([]models.BloodUnit, error)
	CreateBloodUnit(ctx context.Context, in models.BloodUnitInput) (*models.BloodUnit, error)
	UpdateBloodUnit(ctx context.Context, id int64, in models.BloodUnitInput) (*models.BloodUnit, error)
	DeleteBloodUnit(ctx context.Context, id int64) error

	ListBloodRequests(ctx context.Context) ([]models.BloodRequest, error)
	CreateBloodRequest(ctx context.Context, in models.BloodRequestInput) (*models.BloodRequest, error)
	UpdateBloodRequest(ctx context.Context, id int64, d models.RequestDraft) (*models.BloodRequest, error)

	Transfer(ctx context.Context, t models.TransferRequest) (string, error)
}
