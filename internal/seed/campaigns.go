package seed

import (
	"context"
	"fmt"
	"time"

	"crowdcube/internal/store"
	"crowdcube/internal/utils"
	"crowdcube/pkg/types"
)

type seedCampaign struct {
	id    string
	patch types.CampaignPatch
}

// SeedCampaigns syncs the database with the sample campaigns below. Fixed
// IDs make the seed idempotent: re-running updates in place instead of
// piling up duplicates.
//
// To generate new IDs: `go run ./cmd/crowdcube nanoid`
func SeedCampaigns(ctx context.Context, repo *store.CampaignRepository) error {
	campaigns := []seedCampaign{
		{
			id: "tWQ4p0q7hYKdE1mCZvAxUb9T2RnLJs6f",
			patch: types.CampaignPatch{
				Title:                 utils.StringPtr("Clean Water for Kitui"),
				Description:           utils.StringPtr("Drill two boreholes serving three villages in Kitui county"),
				CampaignType:          utils.StringPtr("community"),
				MinimumDonationAmount: utils.Float64Ptr(10),
				Deadline:              utils.TimePtr(time.Date(2031, time.June, 30, 0, 0, 0, 0, time.UTC)),
				OwnerEmail:            utils.StringPtr("amina@example.com"),
				OwnerName:             utils.StringPtr("Amina Odhiambo"),
			},
		},
		{
			id: "Xc83KfzWq1RM5vJtbGe0dUySHnN7aPoL",
			patch: types.CampaignPatch{
				Title:                 utils.StringPtr("Village Library Restock"),
				Description:           utils.StringPtr("Replace the flood-damaged book collection of the Mwea village library"),
				CampaignType:          utils.StringPtr("education"),
				MinimumDonationAmount: utils.Float64Ptr(5),
				Deadline:              utils.TimePtr(time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC)),
				OwnerEmail:            utils.StringPtr("joseph@example.com"),
				OwnerName:             utils.StringPtr("Joseph Mwangi"),
			},
		},
		{
			id: "5dHqLr2sVYBm8kTczXWJ0uEGfNiaK4eD",
			patch: types.CampaignPatch{
				Title:                 utils.StringPtr("Mobile Clinic Fuel Fund"),
				Description:           utils.StringPtr("Keep the weekend mobile clinic on the road for another year"),
				CampaignType:          utils.StringPtr("medical"),
				MinimumDonationAmount: utils.Float64Ptr(25),
				Deadline:              utils.TimePtr(time.Date(2030, time.March, 15, 0, 0, 0, 0, time.UTC)),
				OwnerEmail:            utils.StringPtr("grace@example.com"),
				OwnerName:             utils.StringPtr("Grace Njeri"),
			},
		},
	}

	for _, c := range campaigns {
		if _, err := repo.UpsertCampaign(ctx, c.id, &c.patch); err != nil {
			return fmt.Errorf("failed to seed campaign %s: %w", c.id, err)
		}
	}

	return nil
}
