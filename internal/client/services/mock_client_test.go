package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

// mockClient is a testify mock of client.Client.
type mockClient struct {
	mock.Mock
}

var _ client.Client = (*mockClient)(nil)

func (m *mockClient) Login(ctx context.Context, role models.Role, creds models.Credentials) (*client.LoginResult, error) {
	args := m.Called(ctx, role, creds)
	res, _ := args.Get(0).(*client.LoginResult)
	return res, args.Error(1)
}

func (m *mockClient) RegisterDonor(ctx context.Context, r models.DonorRegistration) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockClient) RegisterDeliveryStaff(ctx context.Context, r models.DeliveryStaffRegistration) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockClient) RegisterHospital(ctx context.Context, r models.HospitalRegistration) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func (m *mockClient) DonorProfile(ctx context.Context) (*models.DonorProfile, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*models.DonorProfile)
	return p, args.Error(1)
}

func (m *mockClient) UpdateDonorProfile(ctx context.Context, p models.DonorProfile) (*models.DonorProfile, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(*models.DonorProfile)
	return out, args.Error(1)
}

func (m *mockClient) HospitalProfile(ctx context.Context) (*models.HospitalProfile, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*models.HospitalProfile)
	return p, args.Error(1)
}

func (m *mockClient) BloodUnitSummary(ctx context.Context) ([]models.BloodTypeSummary, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]models.BloodTypeSummary)
	return rows, args.Error(1)
}

func (m *mockClient) BloodUnitsByType(ctx context.Context, bt models.BloodType) ([]models.BloodUnit, error) {
	args := m.Called(ctx, bt)
	units, _ := args.Get(0).([]models.BloodUnit)
	return units, args.Error(1)
}

func (m *mockClient) CreateBloodUnit(ctx context.Context, in models.BloodUnitInput) (*models.BloodUnit, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*models.BloodUnit)
	return u, args.Error(1)
}

func (m *mockClient) UpdateBloodUnit(ctx context.Context, id int64, in models.BloodUnitInput) (*models.BloodUnit, error) {
	args := m.Called(ctx, id, in)
	u, _ := args.Get(0).(*models.BloodUnit)
	return u, args.Error(1)
}

func (m *mockClient) DeleteBloodUnit(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockClient) ListBloodRequests(ctx context.Context) ([]models.BloodRequest, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.BloodRequest)
	return list, args.Error(1)
}

func (m *mockClient) CreateBloodRequest(ctx context.Context, in models.BloodRequestInput) (*models.BloodRequest, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(*models.BloodRequest)
	return r, args.Error(1)
}

func (m *mockClient) UpdateBloodRequest(ctx context.Context, id int64, d models.RequestDraft) (*models.BloodRequest, error) {
	args := m.Called(ctx, id, d)
	r, _ := args.Get(0).(*models.BloodRequest)
	return r, args.Error(1)
}

func (m *mockClient) Transfer(ctx context.Context, t models.TransferRequest) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

// fakeStore is a hand-written SessionStore.
type fakeStore struct {
	mu       sync.Mutex
	session  *models.Session
	BeginErr error
	EndErr   error
	Ends     int
}

func (f *fakeStore) Begin(_ context.Context, s models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BeginErr != nil {
		return f.BeginErr
	}
	f.session = &s
	return nil
}

func (f *fakeStore) End(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ends++
	f.session = nil
	return f.EndErr
}

func (f *fakeStore) CurrentRole() (models.Role, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return "", false
	}
	return f.session.Role, true
}

type fixedRole struct {
	role models.Role
	ok   bool
}

func (f fixedRole) CurrentRole() (models.Role, bool) { return f.role, f.ok }
