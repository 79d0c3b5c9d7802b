package handlers

import (
	"net/http"

	authsvc "github.com/babmate/backend/internal/services/auth"
	statssvc "github.com/babmate/backend/internal/services/stats"
	"github.com/babmate/backend/internal/transport/http/dto"
	httperrors "github.com/babmate/backend/internal/transport/http/errors"
)

type StatsHandler struct {
	service *statssvc.Service
}

func NewStatsHandler(service *statssvc.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// GlobalCount is a public counter; no identity is required.
func (h *StatsHandler) GlobalCount(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STATS_SERVICE_UNAVAILABLE", "stats service is unavailable")
		return
	}

	count, err := h.service.GlobalCount(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load match count")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.MatchCountResponse{Count: count})
}

func (h *StatsHandler) MyCount(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STATS_SERVICE_UNAVAILABLE", "stats service is unavailable")
		return
	}

	count, err := h.service.MyCount(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load match count")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.MatchCountResponse{Count: count})
}
