package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"crowdcube/pkg/types"

	"github.com/alexedwards/flow"
)

// Deadlines arrive as date-like strings from the client and are normalized
// to a true timestamp before anything touches the store.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDeadline(value string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("deadline %q is not a date: %w", value, types.ErrInvalidInput)
}

type campaignRequest struct {
	Title                 string  `json:"title"`
	Description           string  `json:"description"`
	CampaignType          string  `json:"campaignType"`
	MinimumDonationAmount float64 `json:"minimumDonationAmount"`
	Deadline              string  `json:"deadline"`
	OwnerEmail            string  `json:"ownerEmail"`
	OwnerName             string  `json:"ownerName"`
	Photo                 string  `json:"photo"`
}

type campaignPatchRequest struct {
	Title                 *string  `json:"title"`
	Description           *string  `json:"description"`
	CampaignType          *string  `json:"campaignType"`
	MinimumDonationAmount *float64 `json:"minimumDonationAmount"`
	Deadline              *string  `json:"deadline"`
	OwnerEmail            *string  `json:"ownerEmail"`
	OwnerName             *string  `json:"ownerName"`
	Photo                 *string  `json:"photo"`
}

func (req *campaignPatchRequest) patch() (*types.CampaignPatch, error) {
	patch := &types.CampaignPatch{
		Title:                 req.Title,
		Description:           req.Description,
		CampaignType:          req.CampaignType,
		MinimumDonationAmount: req.MinimumDonationAmount,
		OwnerEmail:            req.OwnerEmail,
		OwnerName:             req.OwnerName,
		Photo:                 req.Photo,
	}

	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return nil, err
		}
		patch.Deadline = &deadline
	}

	return patch, nil
}

type emailQuery struct {
	Email string `form:"email"`
}

func (s *Service) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.campaignsRepo.Campaigns(r.Context())
	if err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, campaigns)
}

func (s *Service) handleMyCampaigns(w http.ResponseWriter, r *http.Request) {
	var q emailQuery
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		s.logger.WithError(err).Error("failed to decode query params")
		s.respondError(w, http.StatusBadRequest, "invalid query params")
		return
	}

	if !required(q.Email) {
		s.respondError(w, http.StatusBadRequest, "email query param is required")
		return
	}

	campaigns, err := s.campaignsRepo.CampaignsByOwner(r.Context(), q.Email)
	if err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, campaigns)
}

func (s *Service) handleCampaignDetail(w http.ResponseWriter, r *http.Request) {
	campaignID := flow.Param(r.Context(), "id")

	campaign, err := s.campaignsRepo.Campaign(r.Context(), campaignID)
	if err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, campaign)
}

func (s *Service) handleRunningCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.campaignsRepo.RunningCampaigns(r.Context(), int(s.config.RunningCampaignsLimit))
	if err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, campaigns)
}

func (s *Service) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !required(req.Title) || !required(req.Description) || !required(req.OwnerEmail) || !required(req.Deadline) {
		s.respondError(w, http.StatusBadRequest, "title, description, ownerEmail and deadline are required")
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	campaign := &types.Campaign{
		Title:                 req.Title,
		Description:           req.Description,
		CampaignType:          req.CampaignType,
		MinimumDonationAmount: req.MinimumDonationAmount,
		Deadline:              &deadline,
		OwnerEmail:            req.OwnerEmail,
		OwnerName:             req.OwnerName,
		Photo:                 req.Photo,
	}

	if err := s.campaignsRepo.CreateCampaign(r.Context(), campaign); err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]string{"id": campaign.ID})
}

// handleUpdateCampaign is a strict partial update: a missing id answers
// 404. The legacy materialize-on-miss behavior is an explicit opt-in via
// the upsert query param.
func (s *Service) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := flow.Param(r.Context(), "id")

	var req campaignPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch, err := req.patch()
	if err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	var campaign *types.Campaign
	if r.URL.Query().Get("upsert") == "true" {
		campaign, err = s.campaignsRepo.UpsertCampaign(r.Context(), campaignID, patch)
	} else {
		campaign, err = s.campaignsRepo.UpdateCampaign(r.Context(), campaignID, patch)
	}
	if err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, campaign)
}

func (s *Service) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := flow.Param(r.Context(), "id")

	if err := s.campaignsRepo.DeleteCampaign(r.Context(), campaignID); err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
