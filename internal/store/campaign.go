package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"crowdcube/internal/utils"
	"crowdcube/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const campaignTableName = "crowdcube.campaigns"

// DefaultRunningLimit caps the running-campaigns listing when the caller
// passes no limit of its own.
const DefaultRunningLimit = 6

var campaignColumns = utils.StructTagValues(types.Campaign{})

type CampaignRepository struct {
	db Querier
}

func NewCampaignRepository(db Querier) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Campaigns(ctx context.Context) ([]*types.Campaign, error) {

	query, args, err := psql().
		Select(campaignColumns...).
		From(campaignTableName).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate campaigns query: %w", err)
	}

	var campaigns = make([]*types.Campaign, 0)
	err = pgxscan.Select(ctx, r.db, &campaigns, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *CampaignRepository) CampaignsByOwner(ctx context.Context, ownerEmail string) ([]*types.Campaign, error) {

	if strings.TrimSpace(ownerEmail) == "" {
		return nil, fmt.Errorf("owner email is required: %w", types.ErrInvalidInput)
	}

	query, args, err := psql().
		Select(campaignColumns...).
		From(campaignTableName).
		Where(sq.Eq{"owner_email": ownerEmail}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate campaigns-by-owner query: %w", err)
	}

	var campaigns = make([]*types.Campaign, 0)
	err = pgxscan.Select(ctx, r.db, &campaigns, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaigns by owner: %w", err)
	}

	return campaigns, nil
}

func (r *CampaignRepository) Campaign(ctx context.Context, campaignID string) (*types.Campaign, error) {

	if err := validID(campaignID); err != nil {
		return nil, err
	}

	query, args, err := psql().
		Select(campaignColumns...).
		From(campaignTableName).
		Where(sq.Eq{"id": campaignID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate campaign query: %w", err)
	}

	var campaign types.Campaign
	err = pgxscan.Get(ctx, r.db, &campaign, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to fetch campaign: %w", err)
	}

	return &campaign, nil
}

// RunningCampaigns lists campaigns whose deadline has not yet passed,
// capped at limit. Rows with a NULL deadline never satisfy the predicate.
// No explicit sort is applied; rows come back in store-defined order.
func (r *CampaignRepository) RunningCampaigns(ctx context.Context, limit int) ([]*types.Campaign, error) {

	if limit <= 0 {
		limit = DefaultRunningLimit
	}

	query, args, err := psql().
		Select(campaignColumns...).
		From(campaignTableName).
		Where(sq.GtOrEq{"deadline": time.Now()}).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate running campaigns query: %w", err)
	}

	var campaigns = make([]*types.Campaign, 0)
	err = pgxscan.Select(ctx, r.db, &campaigns, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch running campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *CampaignRepository) CreateCampaign(ctx context.Context, campaign *types.Campaign) error {

	switch {
	case strings.TrimSpace(campaign.Title) == "":
		return fmt.Errorf("title is required: %w", types.ErrInvalidInput)
	case strings.TrimSpace(campaign.Description) == "":
		return fmt.Errorf("description is required: %w", types.ErrInvalidInput)
	case strings.TrimSpace(campaign.OwnerEmail) == "":
		return fmt.Errorf("owner email is required: %w", types.ErrInvalidInput)
	case campaign.Deadline == nil || campaign.Deadline.IsZero():
		return fmt.Errorf("deadline is required: %w", types.ErrInvalidInput)
	}

	now := time.Now()
	campaign.ID = utils.NanoID()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	query, args, err := psql().
		Insert(campaignTableName).
		SetMap(utils.StructToMap(campaign)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert campaign query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create campaign")

}

// UpdateCampaign replaces the set fields of the campaign matching
// campaignID and returns the updated row. A missing row is an error;
// callers that want materialize-on-miss use UpsertCampaign.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, campaignID string, patch *types.CampaignPatch) (*types.Campaign, error) {

	if err := validID(campaignID); err != nil {
		return nil, err
	}

	patchMap := utils.StructToMapSparse(patch)
	if len(patchMap) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", types.ErrInvalidInput)
	}
	patchMap["updated_at"] = time.Now()

	query, args, err := psql().
		Update(campaignTableName).
		SetMap(patchMap).
		Where(sq.Eq{"id": campaignID}).
		Suffix("RETURNING " + strings.Join(campaignColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update campaign query for campaign %s: %w", campaignID, err)
	}

	var campaign types.Campaign
	err = pgxscan.Get(ctx, r.db, &campaign, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	return &campaign, nil
}

// UpsertCampaign writes the set fields of the campaign matching campaignID,
// creating the record under that id when none exists.
func (r *CampaignRepository) UpsertCampaign(ctx context.Context, campaignID string, patch *types.CampaignPatch) (*types.Campaign, error) {

	if err := validID(campaignID); err != nil {
		return nil, err
	}

	patchMap := utils.StructToMapSparse(patch)
	if len(patchMap) == 0 {
		return nil, fmt.Errorf("no fields to write: %w", types.ErrInvalidInput)
	}

	now := time.Now()

	columns := make([]string, 0, len(patchMap))
	for column := range patchMap {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	values := make([]any, 0, len(columns)+3)
	values = append(values, campaignID)
	for _, column := range columns {
		values = append(values, patchMap[column])
	}
	values = append(values, now, now)

	assignments := make([]string, 0, len(columns)+1)
	for _, column := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	assignments = append(assignments, "updated_at = EXCLUDED.updated_at")

	query, args, err := psql().
		Insert(campaignTableName).
		Columns(append(append([]string{"id"}, columns...), "created_at", "updated_at")...).
		Values(values...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(assignments, ", ")).
		Suffix("RETURNING " + strings.Join(campaignColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate upsert campaign query for campaign %s: %w", campaignID, err)
	}

	var campaign types.Campaign
	err = pgxscan.Get(ctx, r.db, &campaign, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert campaign: %w", err)
	}

	return &campaign, nil
}

// DeleteCampaign removes the campaign matching campaignID. A zero affected
// count maps to ErrCampaignNotFound so callers can answer 404.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, campaignID string) error {

	if err := validID(campaignID); err != nil {
		return err
	}

	query, args, err := psql().
		Delete(campaignTableName).
		Where(sq.Eq{"id": campaignID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete campaign query for campaign %s: %w", campaignID, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrCampaignNotFound
	}

	return nil
}
