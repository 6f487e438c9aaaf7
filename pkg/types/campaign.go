package types

import (
	"time"
)

type Campaign struct {
	ID string `db:"id" json:"id"`

	Title                 string  `db:"title" json:"title"`
	Description           string  `db:"description" json:"description"`
	CampaignType          string  `db:"campaign_type" json:"campaignType"`
	MinimumDonationAmount float64 `db:"minimum_donation_amount" json:"minimumDonationAmount"`

	// Deadline is nullable in the store: an upsert can materialize a
	// record without one. Creation always requires it.
	Deadline *time.Time `db:"deadline" json:"deadline"`

	OwnerEmail string `db:"owner_email" json:"ownerEmail"`
	OwnerName  string `db:"owner_name" json:"ownerName"`
	Photo      string `db:"photo" json:"photo"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CampaignPatch carries the fields of a partial campaign write. Nil fields
// are left untouched by the store.
type CampaignPatch struct {
	Title                 *string    `db:"title"`
	Description           *string    `db:"description"`
	CampaignType          *string    `db:"campaign_type"`
	MinimumDonationAmount *float64   `db:"minimum_donation_amount"`
	Deadline              *time.Time `db:"deadline"`
	OwnerEmail            *string    `db:"owner_email"`
	OwnerName             *string    `db:"owner_name"`
	Photo                 *string    `db:"photo"`
}
