package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crowdcube/internal/utils"
	"crowdcube/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const donationTableName = "crowdcube.donations"

var donationColumns = utils.StructTagValues(types.Donation{})

type DonationRepository struct {
	db Querier
}

func NewDonationRepository(db Querier) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) DonationsByDonor(ctx context.Context, donorEmail string) ([]*types.Donation, error) {

	if strings.TrimSpace(donorEmail) == "" {
		return nil, fmt.Errorf("donor email is required: %w", types.ErrInvalidInput)
	}

	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"donor_email": donorEmail}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donations-by-donor query: %w", err)
	}

	var donations = make([]*types.Donation, 0)
	err = pgxscan.Select(ctx, r.db, &donations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donations by donor: %w", err)
	}

	return donations, nil
}

// CreateDonation records a pledge. The referenced campaign must exist; the
// lookup runs before the insert so an invalid reference writes nothing.
func (r *DonationRepository) CreateDonation(ctx context.Context, donation *types.Donation) error {

	switch {
	case strings.TrimSpace(donation.DonorEmail) == "":
		return fmt.Errorf("donor email is required: %w", types.ErrInvalidInput)
	case strings.TrimSpace(donation.CampaignID) == "":
		return fmt.Errorf("campaign id is required: %w", types.ErrInvalidInput)
	case donation.Amount <= 0:
		return fmt.Errorf("amount must be positive: %w", types.ErrInvalidInput)
	}

	if err := validID(donation.CampaignID); err != nil {
		return err
	}

	if err := r.campaignExists(ctx, donation.CampaignID); err != nil {
		return err
	}

	donation.ID = utils.NanoID()
	donation.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(donationTableName).
		SetMap(utils.StructToMap(donation)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donation query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donation")

}

func (r *DonationRepository) campaignExists(ctx context.Context, campaignID string) error {

	query, args, err := psql().
		Select("1").
		From(campaignTableName).
		Where(sq.Eq{"id": campaignID}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate campaign existence query: %w", err)
	}

	var one int
	err = pgxscan.Get(ctx, r.db, &one, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return types.ErrCampaignNotFound
		}
		return fmt.Errorf("failed to check campaign existence: %w", err)
	}

	return nil
}
