// Package models defines the client-side domain types of bloodlink: roles and
// sessions, blood inventory, blood requests, role-shaped profiles and the
// registration payloads sent to the backend.
package models

import (
	"errors"
	"strings"
)

// Role determines which views and endpoints a session may access.
type Role string

const (
	RoleDonor         Role = "donor"
	RoleDeliveryStaff Role = "delivery_staff"
	RoleHospitalStaff Role = "hospital_staff"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists every role in a stable order.
func Roles() []Role {
	return []Role{RoleDonor, RoleDeliveryStaff, RoleHospitalStaff}
}

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleDeliveryStaff, RoleHospitalStaff:
		return true
	}
	return false
}

// LoginPath is the role segment of the /login/{role}/ backend route.
func (r Role) LoginPath() string {
	switch r {
	case RoleDonor:
		return "donor"
	case RoleDeliveryStaff:
		return "deliverystaff"
	case RoleHospitalStaff:
		return "hospital"
	}
	return ""
}

// RegisterPath is the role segment of /register/{role}/; it matches LoginPath.
func (r Role) RegisterPath() string { return r.LoginPath() }

func (r Role) String() string { return string(r) }

// ParseRole accepts canonical role names and the short forms used on the
// command line ("hospital", "delivery", "deliverystaff", "staff").
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "donor":
		return RoleDonor, nil
	case "delivery_staff", "deliverystaff", "delivery":
		return RoleDeliveryStaff, nil
	case "hospital_staff", "hospital", "staff":
		return RoleHospitalStaff, nil
	}
	return "", ErrUnknownRole
}
