package server

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crowdcube/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeCampaignStore struct {
	campaigns []*types.Campaign
	campaign  *types.Campaign
	err       error
	updateErr error

	createdID string

	gotOwner string
	gotLimit int
	gotID    string
	gotPatch *types.CampaignPatch

	createCalled bool
	updateCalled bool
	upsertCalled bool
	deleteCalled bool
}

func (f *fakeCampaignStore) Campaigns(context.Context) ([]*types.Campaign, error) {
	return f.campaigns, f.err
}

func (f *fakeCampaignStore) CampaignsByOwner(_ context.Context, ownerEmail string) ([]*types.Campaign, error) {
	f.gotOwner = ownerEmail
	return f.campaigns, f.err
}

func (f *fakeCampaignStore) Campaign(_ context.Context, campaignID string) (*types.Campaign, error) {
	f.gotID = campaignID
	return f.campaign, f.err
}

func (f *fakeCampaignStore) RunningCampaigns(_ context.Context, limit int) ([]*types.Campaign, error) {
	f.gotLimit = limit
	return f.campaigns, f.err
}

func (f *fakeCampaignStore) CreateCampaign(_ context.Context, campaign *types.Campaign) error {
	f.createCalled = true
	if f.err != nil {
		return f.err
	}
	campaign.ID = f.createdID
	return nil
}

func (f *fakeCampaignStore) UpdateCampaign(_ context.Context, campaignID string, patch *types.CampaignPatch) (*types.Campaign, error) {
	f.updateCalled = true
	f.gotID = campaignID
	f.gotPatch = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.campaign, f.err
}

func (f *fakeCampaignStore) UpsertCampaign(_ context.Context, campaignID string, patch *types.CampaignPatch) (*types.Campaign, error) {
	f.upsertCalled = true
	f.gotID = campaignID
	f.gotPatch = patch
	return f.campaign, f.err
}

func (f *fakeCampaignStore) DeleteCampaign(_ context.Context, campaignID string) error {
	f.deleteCalled = true
	f.gotID = campaignID
	return f.err
}

type fakeDonationStore struct {
	donations []*types.Donation
	err       error

	createdID string

	gotDonor     string
	gotDonation  *types.Donation
	createCalled bool
}

func (f *fakeDonationStore) DonationsByDonor(_ context.Context, donorEmail string) ([]*types.Donation, error) {
	f.gotDonor = donorEmail
	return f.donations, f.err
}

func (f *fakeDonationStore) CreateDonation(_ context.Context, donation *types.Donation) error {
	f.createCalled = true
	f.gotDonation = donation
	if f.err != nil {
		return f.err
	}
	donation.ID = f.createdID
	return nil
}

type fakePhotoStorage struct {
	url string
	err error

	uploadedKey string
	deletedKey  string
}

func (f *fakePhotoStorage) UploadFile(_ context.Context, key string, _ multipart.File, _ string) (string, error) {
	f.uploadedKey = key
	return f.url, f.err
}

func (f *fakePhotoStorage) DeleteFile(_ context.Context, key string) error {
	f.deletedKey = key
	return nil
}

func (f *fakePhotoStorage) KeyForURL(url string) (string, bool) {
	const prefix = "https://photos.test/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

func newTestService(t *testing.T, campaigns CampaignStore, donations DonationStore, photos PhotoStorage) http.Handler {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	config := &types.Config{
		ServerPort:            0,
		RunningCampaignsLimit: 6,
		CORSAllowedOrigins:    []string{"http://localhost:5173"},
	}

	s, err := New(config, logger, campaigns, donations, photos)
	require.NoError(t, err)

	return s.Handler()
}

func doRequest(handler http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}
