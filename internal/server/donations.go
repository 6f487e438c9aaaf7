package server

import (
	"encoding/json"
	"net/http"

	"crowdcube/pkg/types"
)

type donationRequest struct {
	CampaignID string  `json:"campaignId"`
	DonorEmail string  `json:"donorEmail"`
	DonorName  string  `json:"donorName"`
	Amount     float64 `json:"amount"`
}

func (s *Service) handleMyDonations(w http.ResponseWriter, r *http.Request) {
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

	donations, err := s.donationsRepo.DonationsByDonor(r.Context(), q.Email)
	if err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, donations)
}

func (s *Service) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !required(req.DonorEmail) || !required(req.CampaignID) {
		s.respondError(w, http.StatusBadRequest, "donorEmail and campaignId are required")
		return
	}

	if req.Amount <= 0 {
		s.respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	donation := &types.Donation{
		CampaignID: req.CampaignID,
		DonorEmail: req.DonorEmail,
		DonorName:  req.DonorName,
		Amount:     req.Amount,
	}

	if err := s.donationsRepo.CreateDonation(r.Context(), donation); err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]string{"id": donation.ID})
}
