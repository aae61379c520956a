package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/services"
)

// Profile shows the profile of the current role. "profile edit" lets a donor
// change theirs.
func (a *App) Profile(ctx context.Context, args []string) error {
	p, err := a.profileService.Load(ctx)
	if errors.Is(err, services.ErrNoProfileEndpoint) {
		a.println("There is no profile page for delivery staff.")
		return nil
	}
	if err != nil {
		return err
	}

	switch p.Kind() {
	case models.RoleDonor:
		if len(args) > 0 && args[0] == "edit" {
			return a.editDonorProfile(ctx, *p.Donor)
		}
		printDonor(a, *p.Donor)
	case models.RoleHospitalStaff:
		h := p.Hospital
		a.printf("Hospital: %s\nStaff: %s (%s)\nEmail: %s\nContact: %s\nAddress: %s\n",
			h.HospitalName, h.StaffName, h.StaffID, h.Email, h.ContactInfo, h.Address)
		if h.ApprovalStatus != "" {
			a.printf("Approval: %s\n", h.ApprovalStatus)
		}
	}
	return nil
}

func printDonor(a *App, d models.DonorProfile) {
	a.printf("Name: %s %s\nDate of birth: %s\nGender: %s\nEmail: %s\nBlood type: %s\nPhone: %s\n",
		d.Firstname, d.Lastname, d.DOB, d.Gender, d.Email, d.BloodType, d.PhoneNumber)
}

func (a *App) editDonorProfile(ctx context.Context, d models.DonorProfile) error {
	fields := []struct {
		prompt string
		value  *string
	}{
		{"First name", &d.Firstname},
		{"Last name", &d.Lastname},
		{"Gender (Male, Female, Other)", &d.Gender},
		{"Email", &d.Email},
		{"Phone number", &d.PhoneNumber},
	}
	for _, f := range fields {
		v, err := a.askDefault(f.prompt, *f.value)
		if err != nil {
			return err
		}
		*f.value = v
	}
	bt, err := a.askDefault("Blood type", string(d.BloodType))
	if err != nil {
		return err
	}
	d.BloodType = bloodType(bt)

	saved, err := a.profileService.SaveDonor(ctx, d)
	if err != nil {
		return err
	}
	a.println("Profile updated.")
	printDonor(a, *saved)
	return nil
}
