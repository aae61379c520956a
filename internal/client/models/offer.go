package models

import "time"

// DonationOffer is a donation request shown to a donor. Acceptance is kept
// on the device only; the backend has no endpoint for it.
type DonationOffer struct {
	ID           string
	BloodGroup   BloodType
	Units        string
	HospitalName string
	Location     string
	Date         time.Time
	Accepted     bool
}
