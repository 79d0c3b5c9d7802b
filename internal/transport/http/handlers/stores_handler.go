package handlers

import (
	"errors"
	"net/http"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
	storessvc "github.com/babmate/backend/internal/services/stores"
	"github.com/babmate/backend/internal/transport/http/dto"
	httperrors "github.com/babmate/backend/internal/transport/http/errors"
)

type StoresHandler struct {
	service *storessvc.Service
}

func NewStoresHandler(service *storessvc.Service) *StoresHandler {
	return &StoresHandler{service: service}
}

func (h *StoresHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STORES_SERVICE_UNAVAILABLE", "stores service is unavailable")
		return
	}

	items, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		switch {
		case errors.Is(err, storessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "unknown category")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load stores")
		}
		return
	}

	responseItems := make([]dto.StoreResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, storeResponse(item))
	}
	httperrors.Write(w, http.StatusOK, dto.StoresResponse{Items: responseItems})
}

func (h *StoresHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STORES_SERVICE_UNAVAILABLE", "stores service is unavailable")
		return
	}

	storeID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid store id")
		return
	}

	store, err := h.service.Get(r.Context(), storeID)
	if err != nil {
		switch {
		case errors.Is(err, storessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid store id")
		case errors.Is(err, storessvc.ErrNotFound):
			writeNotFound(w, "STORE_NOT_FOUND", "store not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load store")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, storeResponse(store))
}

// Create registers a store with its weekly hours. Reachable only through the
// owner-gated admin routes.
func (h *StoresHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STORES_SERVICE_UNAVAILABLE", "stores service is unavailable")
		return
	}

	var req dto.CreateStoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	hours := make([]model.BusinessHour, 0, len(req.BusinessHours))
	for _, payload := range req.BusinessHours {
		hours = append(hours, model.BusinessHour{
			DayOfWeek:     enums.DayOfWeek(payload.DayOfWeek),
			OpeningTime:   payload.OpeningTime,
			ClosingTime:   payload.ClosingTime,
			LastOrderTime: payload.LastOrderTime,
			BreakStart:    payload.BreakStart,
			BreakEnd:      payload.BreakEnd,
		})
	}

	created, err := h.service.Create(r.Context(), model.Store{
		Name:          req.Name,
		Category:      enums.Category(req.Category),
		Address:       req.Address,
		Phone:         req.Phone,
		Description:   req.Description,
		BusinessHours: hours,
	})
	if err != nil {
		switch {
		case errors.Is(err, storessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid store payload")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to create store")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, storeResponse(created))
}

func storeResponse(store model.Store) dto.StoreResponse {
	hours := make([]dto.BusinessHourPayload, 0, len(store.BusinessHours))
	for _, entry := range store.BusinessHours {
		hours = append(hours, dto.BusinessHourPayload{
			DayOfWeek:     string(entry.DayOfWeek),
			OpeningTime:   entry.OpeningTime,
			ClosingTime:   entry.ClosingTime,
			LastOrderTime: entry.LastOrderTime,
			BreakStart:    entry.BreakStart,
			BreakEnd:      entry.BreakEnd,
		})
	}

	return dto.StoreResponse{
		ID:            store.ID,
		Name:          store.Name,
		Category:      string(store.Category),
		Address:       store.Address,
		Phone:         store.Phone,
		Description:   store.Description,
		BusinessHours: hours,
	}
}
