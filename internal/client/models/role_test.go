package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"donor", RoleDonor},
		{" Donor ", RoleDonor},
		{"delivery", RoleDeliveryStaff},
		{"deliverystaff", RoleDeliveryStaff},
		{"delivery_staff", RoleDeliveryStaff},
		{"hospital", RoleHospitalStaff},
		{"hospital_staff", RoleHospitalStaff},
		{"staff", RoleHospitalStaff},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseRole("admin")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRole_LoginPath(t *testing.T) {
	assert.Equal(t, "donor", RoleDonor.LoginPath())
	assert.Equal(t, "deliverystaff", RoleDeliveryStaff.LoginPath())
	assert.Equal(t, "hospital", RoleHospitalStaff.LoginPath())
	assert.Equal(t, "hospital", RoleHospitalStaff.RegisterPath())
	assert.Equal(t, "", Role("nobody").LoginPath())
	assert.False(t, Role("nobody").Valid())
	assert.Len(t, Roles(), 3)
}
