package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"crowdcube/internal/utils"
	"crowdcube/pkg/types"

	"github.com/stretchr/testify/require"
)

func decodeBody[T any](t *testing.T, body fmt.Stringer) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body.String()), &v))
	return v
}

func TestListCampaigns(t *testing.T) {
	campaigns := &fakeCampaignStore{campaigns: []*types.Campaign{
		{ID: utils.NanoID(), Title: "Clean Water"},
		{ID: utils.NanoID(), Title: "Library Restock"},
	}}
	handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

	rr := doRequest(handler, http.MethodGet, "/campaigns", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decodeBody[[]types.Campaign](t, rr.Body)
	require.Len(t, got, 2)
	require.Equal(t, "Clean Water", got[0].Title)
}

func TestMyCampaigns(t *testing.T) {
	t.Run("requires the email query param", func(t *testing.T) {
		campaigns := &fakeCampaignStore{}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodGet, "/myCampaign", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		body := decodeBody[errorResponse](t, rr.Body)
		require.Equal(t, "email query param is required", body.Message)
		require.Empty(t, campaigns.gotOwner)
	})

	t.Run("scopes the listing to the owner", func(t *testing.T) {
		campaigns := &fakeCampaignStore{campaigns: []*types.Campaign{{ID: utils.NanoID(), OwnerEmail: "a@x.com"}}}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodGet, "/myCampaign?email=a%40x.com", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "a@x.com", campaigns.gotOwner)
	})
}

func TestCampaignDetail(t *testing.T) {
	t.Run("returns the campaign", func(t *testing.T) {
		want := &types.Campaign{ID: utils.NanoID(), Title: "Clean Water"}
		campaigns := &fakeCampaignStore{campaign: want}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodGet, "/campaigns/"+want.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, want.ID, campaigns.gotID)

		got := decodeBody[types.Campaign](t, rr.Body)
		require.Equal(t, want.Title, got.Title)
	})

	t.Run("answers 404 for an unknown id", func(t *testing.T) {
		campaigns := &fakeCampaignStore{err: types.ErrCampaignNotFound}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodGet, "/campaigns/"+utils.NanoID(), nil)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("answers 400 for a malformed id", func(t *testing.T) {
		campaigns := &fakeCampaignStore{err: fmt.Errorf("malformed id: %w", types.ErrInvalidInput)}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodGet, "/campaigns/bogus", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRunningCampaigns(t *testing.T) {
	campaigns := &fakeCampaignStore{campaigns: []*types.Campaign{{ID: utils.NanoID()}}}
	handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

	rr := doRequest(handler, http.MethodGet, "/runningCampaigns", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 6, campaigns.gotLimit)
}

func TestCreateCampaign(t *testing.T) {
	valid := `{
		"title": "Clean Water",
		"description": "Boreholes for three villages",
		"campaignType": "community",
		"minimumDonationAmount": 10,
		"deadline": "2030-01-01",
		"ownerEmail": "a@x.com",
		"ownerName": "A"
	}`

	t.Run("creates and returns the generated id", func(t *testing.T) {
		campaigns := &fakeCampaignStore{createdID: utils.NanoID()}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodPost, "/campaigns", strings.NewReader(valid))
		require.Equal(t, http.StatusCreated, rr.Code)

		got := decodeBody[map[string]string](t, rr.Body)
		require.Equal(t, campaigns.createdID, got["id"])
	})

	t.Run("rejects a missing required field", func(t *testing.T) {
		campaigns := &fakeCampaignStore{}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodPost, "/campaigns", strings.NewReader(`{"title": "x"}`))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.False(t, campaigns.createCalled)
	})

	t.Run("rejects an unparsable deadline", func(t *testing.T) {
		campaigns := &fakeCampaignStore{}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		body := strings.Replace(valid, "2030-01-01", "someday", 1)
		rr := doRequest(handler, http.MethodPost, "/campaigns", strings.NewReader(body))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.False(t, campaigns.createCalled)
	})

	t.Run("hides store failures behind a generic message", func(t *testing.T) {
		campaigns := &fakeCampaignStore{err: fmt.Errorf("connect: connection refused")}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodPost, "/campaigns", strings.NewReader(valid))
		require.Equal(t, http.StatusInternalServerError, rr.Code)

		body := decodeBody[errorResponse](t, rr.Body)
		require.Equal(t, "internal server error", body.Message)
		require.NotContains(t, rr.Body.String(), "connection refused")
	})
}

func TestUpdateCampaign(t *testing.T) {
	campaignID := utils.NanoID()

	t.Run("strict update answers 404 when the id is unknown", func(t *testing.T) {
		campaigns := &fakeCampaignStore{err: types.ErrCampaignNotFound}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodPut, "/campaigns/"+campaignID, strings.NewReader(`{"title": "New"}`))
		require.Equal(t, http.StatusNotFound, rr.Code)
		require.True(t, campaigns.updateCalled)
		require.False(t, campaigns.upsertCalled)
	})

	t.Run("upsert is an explicit opt-in", func(t *testing.T) {
		campaigns := &fakeCampaignStore{campaign: &types.Campaign{ID: campaignID, Title: "New"}}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodPut, "/campaigns/"+campaignID+"?upsert=true", strings.NewReader(`{"title": "New"}`))
		require.Equal(t, http.StatusOK, rr.Code)
		require.True(t, campaigns.upsertCalled)
		require.False(t, campaigns.updateCalled)
	})

	t.Run("normalizes the deadline string to a timestamp", func(t *testing.T) {
		campaigns := &fakeCampaignStore{campaign: &types.Campaign{ID: campaignID}}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodPut, "/campaigns/"+campaignID, strings.NewReader(`{"deadline": "2030-01-01"}`))
		require.Equal(t, http.StatusOK, rr.Code)

		require.NotNil(t, campaigns.gotPatch.Deadline)
		require.Equal(t, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), *campaigns.gotPatch.Deadline)
		require.Nil(t, campaigns.gotPatch.Title)
	})

	t.Run("rejects an unparsable deadline", func(t *testing.T) {
		campaigns := &fakeCampaignStore{}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodPut, "/campaigns/"+campaignID, strings.NewReader(`{"deadline": "whenever"}`))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.False(t, campaigns.updateCalled)
	})
}

func TestDeleteCampaign(t *testing.T) {
	t.Run("acknowledges the deletion", func(t *testing.T) {
		campaigns := &fakeCampaignStore{}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		campaignID := utils.NanoID()
		rr := doRequest(handler, http.MethodDelete, "/campaigns/"+campaignID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, campaignID, campaigns.gotID)

		got := decodeBody[map[string]bool](t, rr.Body)
		require.True(t, got["deleted"])
	})

	t.Run("answers 404 when nothing matched", func(t *testing.T) {
		campaigns := &fakeCampaignStore{err: types.ErrCampaignNotFound}
		handler := newTestService(t, campaigns, &fakeDonationStore{}, nil)

		rr := doRequest(handler, http.MethodDelete, "/campaigns/"+utils.NanoID(), nil)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
