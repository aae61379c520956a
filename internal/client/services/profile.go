package services

import (
	"context"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
)

// RoleSource reports the role of the current session.
type RoleSource interface {
	CurrentRole() (models.Role, bool)
}

// ProfileService reads the profile of the logged-in user. Only donors can
// edit theirs; hospital details are read-only and delivery staff have none.
type ProfileService interface {
	Load(ctx context.Context) (models.Profile, error)
	SaveDonor(ctx context.Context, p models.DonorProfile) (*models.DonorProfile, error)
}

type profileService struct {
	client client.Client
	roles  RoleSource
}

func NewProfileService(c client.Client, roles RoleSource) ProfileService {
	return &profileService{client: c, roles: roles}
}

func (s *profileService) Load(ctx context.Context) (models.Profile, error) {
	role, ok := s.roles.CurrentRole()
	if !ok {
		return models.Profile{}, client.ErrUnauthenticated
	}

	switch role {
	case models.RoleDonor:
		p, err := s.client.DonorProfile(ctx)
		if err != nil {
			return models.Profile{}, err
		}
		return models.NewDonorProfile(*p), nil
	case models.RoleHospitalStaff:
		p, err := s.client.HospitalProfile(ctx)
		if err != nil {
			return models.Profile{}, err
		}
		return models.NewHospitalProfile(*p), nil
	}
	return models.Profile{}, ErrNoProfileEndpoint
}

func (s *profileService) SaveDonor(ctx context.Context, p models.DonorProfile) (*models.DonorProfile, error) {
	role, ok := s.roles.CurrentRole()
	if !ok {
		return nil, client.ErrUnauthenticated
	}
	if role != models.RoleDonor {
		return nil, ErrWrongRole
	}
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	return s.client.UpdateDonorProfile(ctx, p)
}
