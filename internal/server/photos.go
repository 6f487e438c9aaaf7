package server

import (
	"fmt"
	"net/http"

	"crowdcube/internal/utils"
	"crowdcube/pkg/types"

	"github.com/alexedwards/flow"
)

const maxPhotoBytes = 10 << 20

// handleUploadCampaignPhoto stores a multipart photo for an existing
// campaign and writes the public URL into its photo field. A previously
// uploaded photo belonging to this storage is removed best-effort.
func (s *Service) handleUploadCampaignPhoto(w http.ResponseWriter, r *http.Request) {
	if s.photos == nil {
		s.respondError(w, http.StatusServiceUnavailable, "photo storage is not configured")
		return
	}

	campaignID := flow.Param(r.Context(), "id")

	campaign, err := s.campaignsRepo.Campaign(r.Context(), campaignID)
	if err != nil {
		s.respondRepositoryError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	key := fmt.Sprintf("campaigns/%s/%s", campaign.ID, utils.NanoIDSize(16))
	url, err := s.photos.UploadFile(r.Context(), key, file, header.Header.Get("Content-Type"))
	if err != nil {
		s.logger.WithError(err).Error("failed to upload campaign photo")
		s.respondError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	updated, err := s.campaignsRepo.UpdateCampaign(r.Context(), campaign.ID, &types.CampaignPatch{Photo: &url})
	if err != nil {
		// The object is unreachable without a campaign pointing at it.
		if deleteErr := s.photos.DeleteFile(r.Context(), key); deleteErr != nil {
			s.logger.WithError(deleteErr).Warn("failed to remove unreferenced campaign photo")
		}
		s.respondRepositoryError(w, err)
		return
	}

	if oldKey, ok := s.photos.KeyForURL(campaign.Photo); ok {
		if err := s.photos.DeleteFile(r.Context(), oldKey); err != nil {
			s.logger.WithError(err).Warn("failed to remove replaced campaign photo")
		}
	}

	s.respondJSON(w, http.StatusOK, updated)
}
