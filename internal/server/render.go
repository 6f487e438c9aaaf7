package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"crowdcube/pkg/types"
)

type errorResponse struct {
	Message string `json:"message"`
}

func (s *Service) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response body")
	}
}

func (s *Service) respondError(w http.ResponseWriter, code int, message string) {
	s.respondJSON(w, code, errorResponse{Message: message})
}

// respondRepositoryError maps repository failures onto the HTTP contract.
// Unrecognized errors are logged and answered with a generic message;
// internal detail never reaches the client.
func (s *Service) respondRepositoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrCampaignNotFound), errors.Is(err, types.ErrDonationNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.WithError(err).Error("repository failure")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func required(v string) bool {
	return strings.TrimSpace(v) != ""
}
