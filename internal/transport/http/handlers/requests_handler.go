package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
	authsvc "github.com/babmate/backend/internal/services/auth"
	requestssvc "github.com/babmate/backend/internal/services/requests"
	"github.com/babmate/backend/internal/transport/http/dto"
	httperrors "github.com/babmate/backend/internal/transport/http/errors"
)

const dateLayout = "2006-01-02"

type RequestsHandler struct {
	service *requestssvc.Service
}

func NewRequestsHandler(service *requestssvc.Service) *RequestsHandler {
	return &RequestsHandler{service: service}
}

func (h *RequestsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "matching requests service is unavailable")
		return
	}

	var req dto.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	created, err := h.service.Submit(r.Context(), identity.UserID, requestssvc.SubmitInput{
		Date:     date,
		TimeSlot: enums.TimeSlot(req.TimeSlot),
		Category: enums.Category(req.Category),
		Memo:     req.Memo,
	})
	if err != nil {
		switch {
		case errors.Is(err, requestssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid matching request")
		case errors.Is(err, requestssvc.ErrDuplicate):
			httperrors.Write(w, http.StatusConflict, httperrors.APIError{
				Code:    "DUPLICATE_REQUEST",
				Message: "a request for this date and time slot already exists",
			})
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to submit matching request")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, requestItemResponse(created))
}

func (h *RequestsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "matching requests service is unavailable")
		return
	}

	items, err := h.service.ListMine(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load matching requests")
		return
	}

	responseItems := make([]dto.RequestItemResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, requestItemResponse(item))
	}
	httperrors.Write(w, http.StatusOK, dto.RequestsResponse{Items: responseItems})
}

func (h *RequestsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "matching requests service is unavailable")
		return
	}

	requestID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request id")
		return
	}

	if err := h.service.Cancel(r.Context(), requestID, identity.UserID); err != nil {
		switch {
		case errors.Is(err, requestssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid cancel request")
		case errors.Is(err, requestssvc.ErrNotFound):
			writeNotFound(w, "REQUEST_NOT_FOUND", "matching request not found")
		case errors.Is(err, requestssvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "not the owner of this matching request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to cancel matching request")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CancelResponse{OK: true})
}

func requestItemResponse(item model.MatchingRequest) dto.RequestItemResponse {
	return dto.RequestItemResponse{
		ID:          item.ID,
		Date:        item.Date.Format(dateLayout),
		TimeSlot:    string(item.TimeSlot),
		Category:    string(item.Category),
		Memo:        item.Memo,
		RequestedAt: item.RequestedAt,
	}
}

func pathID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
}

func parseIntOrDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}
