package server

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"crowdcube/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-chi/cors"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// CampaignStore is the campaign repository surface the handlers depend on.
type CampaignStore interface {
	Campaigns(ctx context.Context) ([]*types.Campaign, error)
	CampaignsByOwner(ctx context.Context, ownerEmail string) ([]*types.Campaign, error)
	Campaign(ctx context.Context, campaignID string) (*types.Campaign, error)
	RunningCampaigns(ctx context.Context, limit int) ([]*types.Campaign, error)
	CreateCampaign(ctx context.Context, campaign *types.Campaign) error
	UpdateCampaign(ctx context.Context, campaignID string, patch *types.CampaignPatch) (*types.Campaign, error)
	UpsertCampaign(ctx context.Context, campaignID string, patch *types.CampaignPatch) (*types.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID string) error
}

type DonationStore interface {
	DonationsByDonor(ctx context.Context, donorEmail string) ([]*types.Donation, error)
	CreateDonation(ctx context.Context, donation *types.Donation) error
}

// PhotoStorage stores campaign photos and hands back public URLs.
type PhotoStorage interface {
	UploadFile(ctx context.Context, key string, file multipart.File, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	KeyForURL(url string) (string, bool)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	campaignsRepo CampaignStore
	donationsRepo DonationStore
	photos        PhotoStorage

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	campaignsRepo CampaignStore,
	donationsRepo DonationStore,
	photos PhotoStorage,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,

		campaignsRepo: campaignsRepo,
		donationsRepo: donationsRepo,
		photos:        photos,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler for in-process tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.HandleFunc("/", s.handleRoot, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/campaigns", s.handleListCampaigns, http.MethodGet)
	r.HandleFunc("/campaigns", s.handleCreateCampaign, http.MethodPost)
	r.HandleFunc("/campaigns/:id", s.handleCampaignDetail, http.MethodGet)
	r.HandleFunc("/campaigns/:id", s.handleUpdateCampaign, http.MethodPut)
	r.HandleFunc("/campaigns/:id", s.handleDeleteCampaign, http.MethodDelete)
	r.HandleFunc("/campaigns/:id/photo", s.handleUploadCampaignPhoto, http.MethodPost)

	r.HandleFunc("/myCampaign", s.handleMyCampaigns, http.MethodGet)
	r.HandleFunc("/runningCampaigns", s.handleRunningCampaigns, http.MethodGet)

	r.HandleFunc("/donations", s.handleCreateDonation, http.MethodPost)
	r.HandleFunc("/myDonations", s.handleMyDonations, http.MethodGet)
}

func (s *Service) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "CrowdCube server is running"})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
