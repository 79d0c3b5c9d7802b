package handlers

import (
	"net/http"

	matchingsvc "github.com/babmate/backend/internal/services/matching"
	requestssvc "github.com/babmate/backend/internal/services/requests"
	"github.com/babmate/backend/internal/transport/http/dto"
	httperrors "github.com/babmate/backend/internal/transport/http/errors"
)

// AdminHandler hosts the operational sweeps. Role gating happens in the
// router middleware, not here.
type AdminHandler struct {
	requests *requestssvc.Service
	matching *matchingsvc.Service
}

func NewAdminHandler(requests *requestssvc.Service, matching *matchingsvc.Service) *AdminHandler {
	return &AdminHandler{requests: requests, matching: matching}
}

// PurgeRequests deletes every pending matching request.
func (h *AdminHandler) PurgeRequests(w http.ResponseWriter, r *http.Request) {
	if h.requests == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "matching requests service is unavailable")
		return
	}

	affected, err := h.requests.PurgeAll(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to purge matching requests")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.AdminSweepResponse{OK: true, Affected: affected})
}

// RetireMatches force-retires every live match into the historical log.
func (h *AdminHandler) RetireMatches(w http.ResponseWriter, r *http.Request) {
	if h.matching == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	affected, err := h.matching.RetireAll(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to retire matches")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.AdminSweepResponse{OK: true, Affected: affected})
}

// PurgeMatches deletes every match row, including the retired log.
func (h *AdminHandler) PurgeMatches(w http.ResponseWriter, r *http.Request) {
	if h.matching == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	affected, err := h.matching.PurgeAll(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to purge matches")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.AdminSweepResponse{OK: true, Affected: affected})
}
