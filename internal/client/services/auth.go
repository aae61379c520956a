package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bloodlink/internal/client/client"
	"github.com/dmitrijs2005/bloodlink/internal/client/models"
	"github.com/dmitrijs2005/bloodlink/internal/client/validation"
	"github.com/dmitrijs2005/bloodlink/internal/logging"
)

// SessionStore is the part of session.Store the auth service drives.
type SessionStore interface {
	Begin(ctx context.Context, s models.Session) error
	End(ctx context.Context) error
	CurrentRole() (models.Role, bool)
}

// AuthService logs users in and out and registers new accounts.
//
// Contract:
//   - Login: validate, authenticate, persist the session, then return it.
//     Failures are *client.AuthError (or *validation.Error) and leave any
//     previous session untouched.
//   - Logout: always succeeds for the caller; the local clear is authoritative.
//   - Register*: validate, then post the role-specific payload.
type AuthService interface {
	Login(ctx context.Context, role models.Role, creds models.Credentials) (*models.Session, error)
	Logout(ctx context.Context) error
	RegisterDonor(ctx context.Context, r models.DonorRegistration) error
	RegisterDeliveryStaff(ctx context.Context, r models.DeliveryStaffRegistration) error
	RegisterHospital(ctx context.Context, r models.HospitalRegistration) (string, error)
	CurrentRole() (models.Role, bool)
}

type authService struct {
	client client.Client
	store  SessionStore
	log    logging.Logger
}

func NewAuthService(c client.Client, store SessionStore, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, store: store, log: log}
}

func (a *authService) Login(ctx context.Context, role models.Role, creds models.Credentials) (*models.Session, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownRole, role)
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validation.Struct(creds); err != nil {
		return nil, err
	}

	res, err := a.client.Login(ctx, role, creds)
	if err != nil {
		return nil, loginError(err)
	}

	switch strings.ToLower(res.Status) {
	case string(models.ApprovalPending):
		return nil, &client.AuthError{Kind: client.AuthPendingApproval, Message: "Your account is pending approval."}
	case string(models.ApprovalRejected):
		return nil, &client.AuthError{Kind: client.AuthRejected, Message: "Your account has been rejected."}
	}
	if res.Access == "" {
		return nil, &client.AuthError{Kind: client.AuthInvalidCredentials, Message: "Login failed: no access token received."}
	}

	sess := models.Session{
		AccessToken:  res.Access,
		RefreshToken: res.Refresh,
		Role:         role,
		ExpiresAt:    client.ExpiryFromToken(res.Access),
	}
	if err := a.store.Begin(ctx, sess); err != nil {
		return nil, fmt.Errorf("login succeeded but session could not be saved: %w", err)
	}
	a.log.Info(ctx, "logged in", "role", role)
	return &sess, nil
}

func loginError(err error) error {
	var se *client.ServerError
	if errors.As(err, &se) && se.StatusCode >= http.StatusBadRequest && se.StatusCode < http.StatusInternalServerError {
		return &client.AuthError{Kind: client.AuthInvalidCredentials, Message: se.Banner(), Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &client.AuthError{Kind: client.AuthNetwork, Err: err}
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.End(ctx); err != nil {
		a.log.Warn(ctx, "local session clear failed", "error", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) RegisterDonor(ctx context.Context, r models.DonorRegistration) error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return a.client.RegisterDonor(ctx, r)
}

func (a *authService) RegisterDeliveryStaff(ctx context.Context, r models.DeliveryStaffRegistration) error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return a.client.RegisterDeliveryStaff(ctx, r)
}

func (a *authService) RegisterHospital(ctx context.Context, r models.HospitalRegistration) (string, error) {
	if err := validation.Struct(r); err != nil {
		return "", err
	}
	return a.client.RegisterHospital(ctx, r)
}

func (a *authService) CurrentRole() (models.Role, bool) {
	return a.store.CurrentRole()
}
