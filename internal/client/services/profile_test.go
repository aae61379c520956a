package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
)

func donorProfile() models.DonorProfile {
	return models.DonorProfile{
		Firstname: "Ann", Lastname: "Lee", DOB: models.NewDate(1990, 2, 3), Gender: "Female",
		Email: "ann@example.com", BloodType: models.BloodTypeBPos, PhoneNumber: "123",
	}
}

func TestProfile_LoadByRole(t *testing.T) {
	ctx := context.Background()

	mc := new(mockClient)
	p := donorProfile()
	mc.On("DonorProfile", mock.Anything).Return(&p, nil).Once()
	got, err := NewProfileService(mc, fixedRole{models.RoleDonor, true}).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDonor, got.Kind())
	assert.Equal(t, "Ann", got.Donor.Firstname)

	h := models.HospitalProfile{HospitalName: "City", ApprovalStatus: models.ApprovalApproved}
	mc.On("HospitalProfile", mock.Anything).Return(&h, nil).Once()
	got, err = NewProfileService(mc, fixedRole{models.RoleHospitalStaff, true}).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "City", got.Hospital.HospitalName)
	assert.Nil(t, got.Donor)

	_, err = NewProfileService(mc, fixedRole{models.RoleDeliveryStaff, true}).Load(ctx)
	assert.ErrorIs(t, err, ErrNoProfileEndpoint)

	_, err = NewProfileService(mc, fixedRole{}).Load(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthenticated)

	mc.AssertExpectations(t)
}

func TestProfile_SaveDonor(t *testing.T) {
	ctx := context.Background()
	p := donorProfile()
	p.PhoneNumber = "555"

	mc := new(mockClient)
	mc.On("UpdateDonorProfile", mock.Anything, p).Return(&p, nil).Once()

	saved, err := NewProfileService(mc, fixedRole{models.RoleDonor, true}).SaveDonor(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "555", saved.PhoneNumber)
	mc.AssertExpectations(t)
}

func TestProfile_SaveDonorGuards(t *testing.T) {
	ctx := context.Background()
	mc := new(mockClient)

	_, err := NewProfileService(mc, fixedRole{models.RoleHospitalStaff, true}).SaveDonor(ctx, donorProfile())
	assert.ErrorIs(t, err, ErrWrongRole)

	_, err = NewProfileService(mc, fixedRole{}).SaveDonor(ctx, donorProfile())
	assert.ErrorIs(t, err, client.ErrUnauthenticated)

	bad := donorProfile()
	bad.Email = ""
	_, err = NewProfileService(mc, fixedRole{models.RoleDonor, true}).SaveDonor(ctx, bad)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Field("email"))

	mc.AssertNotCalled(t, "UpdateDonorProfile", mock.Anything, mock.Anything)
}
