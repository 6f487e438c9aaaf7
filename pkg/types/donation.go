package types

import (
	"time"
)

type Donation struct {
	ID string `db:"id" json:"id"`

	CampaignID string  `db:"campaign_id" json:"campaignId"`
	DonorEmail string  `db:"donor_email" json:"donorEmail"`
	DonorName  string  `db:"donor_name" json:"donorName"`
	Amount     float64 `db:"amount" json:"amount"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
