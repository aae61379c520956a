package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/router"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
)

func (a *App) roleArg(args []string) (models.Role, error) {
	s := ""
	if len(args) > 0 {
		s = args[0]
	} else {
		var err error
		if s, err = a.ask("Role (donor, delivery, hospital)"); err != nil {
			return "", err
		}
	}
	role, err := models.ParseRole(s)
	if err != nil {
		return "", validation.New("role", "must be one of: donor, delivery, hospital")
	}
	return role, nil
}

// Login authenticates against the login endpoint of the chosen role and
// moves the router to that role's landing view.
func (a *App) Login(ctx context.Context, args []string) error {
	role, err := a.roleArg(args)
	if err != nil {
		return err
	}
	st, _ := router.StateFor(role)
	a.router.Navigate(router.LoginView(st))

	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}

	sess, err := a.authService.Login(ctx, role, models.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	a.requestService.CancelEdit()

	view, err := a.router.Login(sess.Role)
	if err != nil {
		return err
	}
	a.printf("Logged in as %s.\n", sess.Role)
	a.log.Debug(ctx, "landed", "view", view)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	_ = a.authService.Logout(ctx)
	a.requestService.CancelEdit()
	a.router.Logout()
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(context.Context, []string) error {
	role, ok := a.authService.CurrentRole()
	if !ok {
		a.println("Not logged in.")
		return nil
	}
	a.printf("Role: %s\nView: %s\n", role, a.router.Current())
	if a.store != nil {
		if s := a.store.Current(); s != nil && s.ExpiresAt != nil {
			a.printf("Access token expires: %s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
	}
	return nil
}

// Register creates an account for the chosen role. Hospital accounts need
// an approval document and land on the confirmation screen.
func (a *App) Register(ctx context.Context, args []string) error {
	role, err := a.roleArg(args)
	if err != nil {
		return err
	}

	switch role {
	case models.RoleDonor:
		a.router.Navigate(router.ViewRegisterDonor)
		return a.registerDonor(ctx)
	case models.RoleDeliveryStaff:
		a.router.Navigate(router.ViewRegisterDelivery)
		return a.registerDeliveryStaff(ctx)
	}
	a.router.Navigate(router.ViewRegisterHospital)
	return a.registerHospital(ctx)
}

func (a *App) passwords() (string, string, error) {
	pw, err := getPassword(a.out, "Password")
	if err != nil {
		return "", "", err
	}
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return "", "", err
	}
	return pw, confirm, nil
}

func (a *App) registerDonor(ctx context.Context) error {
	in, err := a.askAll("First name", "Last name", "Date of birth (YYYY-MM-DD)",
		"Gender (Male, Female, Other)", "Email", "Blood type", "Phone number")
	if err != nil {
		return err
	}
	dob, err := optionalDate("dob", in[2])
	if err != nil {
		return err
	}
	pw, confirm, err := a.passwords()
	if err != nil {
		return err
	}

	r := models.DonorRegistration{
		Firstname: in[0], Lastname: in[1], DOB: dob, Gender: in[3], Email: in[4],
		BloodType: bloodType(in[5]), PhoneNumber: in[6], Password: pw, ConfirmPassword: confirm,
	}
	if err := a.authService.RegisterDonor(ctx, r); err != nil {
		return err
	}
	a.println("Registration successful. Use 'login donor' to sign in.")
	return nil
}

func (a *App) registerDeliveryStaff(ctx context.Context) error {
	in, err := a.askAll("First name", "Last name", "Gender (Male, Female, Other)",
		"Email", "License number", "Vehicle type")
	if err != nil {
		return err
	}
	pw, confirm, err := a.passwords()
	if err != nil {
		return err
	}

	r := models.DeliveryStaffRegistration{
		Firstname: in[0], Lastname: in[1], Gender: in[2], Email: in[3],
		LicenseNumber: in[4], VehicleType: in[5], Password: pw, ConfirmPassword: confirm,
	}
	if err := a.authService.RegisterDeliveryStaff(ctx, r); err != nil {
		return err
	}
	a.println("Registration successful. Use 'login delivery' to sign in.")
	return nil
}

func (a *App) registerHospital(ctx context.Context) error {
	in, err := a.askAll("Hospital name", "Staff name", "Staff ID", "Email",
		"Contact info", "Address", "Approval document (file path)")
	if err != nil {
		return err
	}
	pw, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}

	r := models.HospitalRegistration{
		HospitalName: in[0], StaffName: in[1], StaffID: in[2], Email: in[3],
		ContactInfo: in[4], Address: in[5], Password: pw,
	}
	if path := strings.TrimSpace(in[6]); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return validation.New("documents", fmt.Sprintf("cannot be read: %v", err))
		}
		defer f.Close()
		r.Document = &models.Document{Name: filepath.Base(path), Content: f}
	}

	msg, err := a.authService.RegisterHospital(ctx, r)
	if err != nil {
		return err
	}
	a.router.Navigate(router.ViewConfirmation)
	a.println(msg)
	a.println("Your registration is awaiting approval. You can log in once it is approved.")
	return nil
}

// bloodType normalises s when it names a known type and otherwise keeps it
// as typed so validation reports it.
func bloodType(s string) models.BloodType {
	if bt, err := models.ParseBloodType(s); err == nil {
		return bt
	}
	return models.BloodType(s)
}

func optionalDate(field, s string) (*models.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, validation.New(field, "must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}
