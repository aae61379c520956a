package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

type loginReply struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	Status  json.RawMessage `json:"status"`
}

// Login posts the credentials to /login/{role}/. Rejections come back as
// *ServerError; an approval state, if any, is in LoginResult.Status.
func (c *HTTPClient) Login(ctx context.Context, role models.Role, creds models.Credentials) (*LoginResult, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownRole, role)
	}

	var reply loginReply
	path := "/login/" + role.LoginPath() + "/"
	if err := c.call(ctx, http.MethodPost, path, path, false, creds, &reply); err != nil {
		return nil, err
	}

	res := &LoginResult{Access: reply.Access, Refresh: reply.Refresh}
	// hospital logins answer "status": true on success and a string while
	// the account awaits approval
	var status string
	if err := json.Unmarshal(reply.Status, &status); err == nil {
		res.Status = status
	}
	return res, nil
}

func (c *HTTPClient) RegisterDonor(ctx context.Context, r models.DonorRegistration) error {
	return c.call(ctx, http.MethodPost, "/register/donor/", "/register/donor/", false, r, nil)
}

func (c *HTTPClient) RegisterDeliveryStaff(ctx context.Context, r models.DeliveryStaffRegistration) error {
	return c.call(ctx, http.MethodPost, "/register/deliverystaff/", "/register/deliverystaff/", false, r, nil)
}

// RegisterHospital uploads the registration as multipart/form-data with the
// document in the "documents" part and returns the backend's message.
func (c *HTTPClient) RegisterHospital(ctx context.Context, r models.HospitalRegistration) (string, error) {
	if r.Document == nil || r.Document.Content == nil {
		return "", errors.New("hospital registration requires a document")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range r.FormFields() {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	part, err := mw.CreateFormFile("documents", r.Document.Name)
	if err != nil {
		return "", fmt.Errorf("create documents part: %w", err)
	}
	if _, err := io.Copy(part, r.Document.Content); err != nil {
		return "", fmt.Errorf("read document %s: %w", r.Document.Name, err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var reply struct {
		Message string `json:"message"`
	}
	err = c.do(ctx, request{
		method:      http.MethodPost,
		route:       "/register/hospital/",
		path:        "/register/hospital/",
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
		out:         &reply,
	})
	if err != nil {
		return "", err
	}
	return reply.Message, nil
}

func (c *HTTPClient) DonorProfile(ctx context.Context) (*models.DonorProfile, error) {
	var p models.DonorProfile
	if err := c.call(ctx, http.MethodGet, "/donor/", "/donor/", true, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateDonorProfile(ctx context.Context, p models.DonorProfile) (*models.DonorProfile, error) {
	out := p
	if err := c.call(ctx, http.MethodPut, "/donor/", "/donor/", true, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) HospitalProfile(ctx context.Context) (*models.HospitalProfile, error) {
	var p models.HospitalProfile
	if err := c.call(ctx, http.MethodGet, "/hospital/details/", "/hospital/details/", true, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) BloodUnitSummary(ctx context.Context) ([]models.BloodTypeSummary, error) {
	var rows []models.BloodTypeSummary
	if err := c.call(ctx, http.MethodGet, "/blood-units/summary/", "/blood-units/summary/", true, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) BloodUnitsByType(ctx context.Context, bt models.BloodType) ([]models.BloodUnit, error) {
	var units []models.BloodUnit
	path := "/blood-units/type/" + url.PathEscape(string(bt)) + "/"
	if err := c.call(ctx, http.MethodGet, "/blood-units/type/{type}/", path, true, nil, &units); err != nil {
		return nil, err
	}
	for i := range units {
		if units[i].BloodType == "" {
			units[i].BloodType = bt
		}
	}
	return units, nil
}

func (c *HTTPClient) CreateBloodUnit(ctx context.Context, in models.BloodUnitInput) (*models.BloodUnit, error) {
	var u models.BloodUnit
	if err := c.call(ctx, http.MethodPost, "/blood-units/", "/blood-units/", true, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateBloodUnit(ctx context.Context, id int64, in models.BloodUnitInput) (*models.BloodUnit, error) {
	var u models.BloodUnit
	if err := c.call(ctx, http.MethodPut, "/blood-units/{id}/", unitPath(id), true, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) DeleteBloodUnit(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, "/blood-units/{id}/", unitPath(id), true, nil, nil)
}

func (c *HTTPClient) ListBloodRequests(ctx context.Context) ([]models.BloodRequest, error) {
	var list []models.BloodRequest
	if err := c.call(ctx, http.MethodGet, "/blood-requests/", "/blood-requests/", true, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateBloodRequest(ctx context.Context, in models.BloodRequestInput) (*models.BloodRequest, error) {
	var r models.BloodRequest
	if err := c.call(ctx, http.MethodPost, "/blood-requests/", "/blood-requests/", true, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) UpdateBloodRequest(ctx context.Context, id int64, d models.RequestDraft) (*models.BloodRequest, error) {
	var r models.BloodRequest
	path := "/blood-requests/" + strconv.FormatInt(id, 10) + "/"
	if err := c.call(ctx, http.MethodPut, "/blood-requests/{id}/", path, true, d, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Transfer returns the backend's confirmation message; an {"error": ...}
// reply surfaces as the *ServerError banner.
func (c *HTTPClient) Transfer(ctx context.Context, t models.TransferRequest) (string, error) {
	var reply struct {
		Message string `json:"message"`
	}
	if err := c.call(ctx, http.MethodPost, "/blood-transfer/", "/blood-transfer/", true, t, &reply); err != nil {
		return "", err
	}
	return reply.Message, nil
}

func unitPath(id int64) string {
	return "/blood-units/" + strconv.FormatInt(id, 10) + "/"
}
