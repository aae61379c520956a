package models

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityUrgent Priority = "urgent"
)

// RequestStatus values are submitted to the backend verbatim.
type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusCompleted RequestStatus = "Completed"
	StatusCancelled RequestStatus = "Cancelled"
)

// Valid accepts the three edit statuses in any case, plus the spellings the
// backend stores ("fulfilled", "canceled").
func (s RequestStatus) Valid() bool {
	switch strings.ToLower(string(s)) {
	case "pending", "completed", "cancelled", "fulfilled", "canceled":
		return true
	}
	return false
}

// ParseRequestStatus maps user input onto one of the edit statuses.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "completed", "fulfilled":
		return StatusCompleted, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	}
	return "", false
}

type BloodRequest struct {
	ID            int64         `json:"id"`
	HospitalName  string        `json:"hospital_name,omitempty"`
	BloodType     BloodType     `json:"blood_type"`
	Quantity      int           `json:"quantity"`
	PriorityLevel Priority      `json:"priority_level"`
	ContactInfo   string        `json:"contact_info,omitempty"`
	Status        RequestStatus `json:"status"`
	CreatedAt     *time.Time    `json:"created_at,omitempty"`
	FulfilledAt   *time.Time    `json:"fulfilled_at,omitempty"`
}

// BloodRequestInput is the creation payload. New requests always start
// pending on the backend, so status is not sent.
type BloodRequestInput struct {
	BloodType     BloodType `json:"blood_type" validate:"required,bloodtype"`
	Quantity      int       `json:"quantity" validate:"gt=0"`
	PriorityLevel Priority  `json:"priority_level" validate:"required,oneof=normal urgent"`
}

// RequestDraft holds the editable fields of a request while it is being edited.
type RequestDraft struct {
	Status   RequestStatus `json:"status" validate:"required,reqstatus"`
	Quantity int           `json:"quantity" validate:"gt=0"`
}
