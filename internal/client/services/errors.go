package services

import "errors"

var (
	// ErrStaleSummary is returned when a unit mutation succeeded but the
	// summary reload that follows it failed.
	ErrStaleSummary = errors.New("inventory summary could not be refreshed")

	ErrNoDraft           = errors.New("no request is being edited")
	ErrRequestNotFound   = errors.New("blood request not found")
	ErrNoProfileEndpoint = errors.New("no profile is available for this role")
	ErrWrongRole         = errors.New("operation not available for this role")
	ErrOfferAccepted     = errors.New("an accepted offer cannot be cleared")
	ErrOfferNotAccepted  = errors.New("offer is not accepted")
	ErrOfferNotFound     = errors.New("donation offer not found")
)
