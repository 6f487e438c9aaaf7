package types

import "errors"

var (
	// ErrInvalidInput marks a missing or malformed required field or
	// identifier. Callers should wrap it with field-level context.
	ErrInvalidInput = errors.New("invalid input")

	ErrCampaignNotFound = errors.New("campaign not found")
	ErrDonationNotFound = errors.New("donation not found")
)
