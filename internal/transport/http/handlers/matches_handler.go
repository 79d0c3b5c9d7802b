package handlers

import (
	"errors"
	"net/http"

	"github.com/babmate/backend/internal/domain/model"
	authsvc "github.com/babmate/backend/internal/services/auth"
	matchingsvc "github.com/babmate/backend/internal/services/matching"
	statssvc "github.com/babmate/backend/internal/services/stats"
	"github.com/babmate/backend/internal/transport/http/dto"
	httperrors "github.com/babmate/backend/internal/transport/http/errors"
)

type MatchesHandler struct {
	matching *matchingsvc.Service
	stats    *statssvc.Service
}

func NewMatchesHandler(matching *matchingsvc.Service, stats *statssvc.Service) *MatchesHandler {
	return &MatchesHandler{matching: matching, stats: stats}
}

// Active lists the caller's live matches, including partially confirmed ones.
func (h *MatchesHandler) Active(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.matching == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	items, err := h.matching.ListActive(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load matches")
		return
	}

	responseItems := make([]dto.MatchItemResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, matchItemResponse(item, identity.UserID))
	}
	httperrors.Write(w, http.StatusOK, dto.MatchesResponse{Items: responseItems})
}

func (h *MatchesHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.matching == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	matchID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	match, state, err := h.matching.Confirm(r.Context(), matchID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, matchingsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid confirm request")
		case errors.Is(err, matchingsvc.ErrNotFound):
			writeNotFound(w, "MATCH_NOT_FOUND", "match not found")
		case errors.Is(err, matchingsvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "not a participant of this match")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to confirm match")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ConfirmResponse{
		OK:      true,
		State:   string(state),
		Retired: match.Retired,
	})
}

// Log returns the caller's retired matches, newest first.
func (h *MatchesHandler) Log(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.stats == nil {
		writeInternal(w, "STATS_SERVICE_UNAVAILABLE", "match log service is unavailable")
		return
	}

	limit := parseIntOrDefault(r.URL.Query().Get("limit"), 100)
	items, err := h.stats.MyLog(r.Context(), identity.UserID, limit)
	if err != nil {
		switch {
		case errors.Is(err, statssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid log request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load match log")
		}
		return
	}

	responseItems := make([]dto.MatchLogItemResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, dto.MatchLogItemResponse{
			MatchID:   item.MatchID,
			Date:      item.Date.Format(dateLayout),
			TimeSlot:  string(item.TimeSlot),
			Category:  string(item.Category),
			StoreID:   item.StoreID,
			PartnerID: item.CounterpartID,
			RetiredAt: item.RetiredAt,
		})
	}
	httperrors.Write(w, http.StatusOK, dto.MatchLogResponse{Items: responseItems})
}

func matchItemResponse(match model.Match, viewerID int64) dto.MatchItemResponse {
	partnerID := match.User2ID
	partnerMemo := match.User2Memo
	confirmed := match.User1Confirmed
	partnerConfirmed := match.User2Confirmed
	if viewerID == match.User2ID {
		partnerID = match.User1ID
		partnerMemo = match.User1Memo
		confirmed = match.User2Confirmed
		partnerConfirmed = match.User1Confirmed
	}

	return dto.MatchItemResponse{
		ID:               match.ID,
		Date:             match.Date.Format(dateLayout),
		TimeSlot:         string(match.TimeSlot),
		Category:         string(match.Category),
		StoreID:          match.StoreID,
		PartnerID:        partnerID,
		PartnerMemo:      partnerMemo,
		Confirmed:        confirmed,
		PartnerConfirmed: partnerConfirmed,
		State:            string(matchingsvc.StateOf(match)),
		CreatedAt:        match.CreatedAt,
	}
}
