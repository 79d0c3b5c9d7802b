package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
	pgrepo "github.com/babmate/backend/internal/repo/postgres"
	authsvc "github.com/babmate/backend/internal/services/auth"
	matchingsvc "github.com/babmate/backend/internal/services/matching"
)

func TestConfirmRetiresOnSecondParty(t *testing.T) {
	store := newMatchStoreStub(model.Match{
		ID:       7,
		Date:     time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC),
		TimeSlot: enums.TimeSlotDinner,
		Category: enums.CategoryKorean,
		StoreID:  3,
		User1ID:  101,
		User2ID:  102,
	})
	h := NewMatchesHandler(matchingsvc.NewService(store), nil)

	router := chi.NewRouter()
	router.Post("/matchings/{id}/confirm", h.Confirm)

	first := confirmAs(t, router, 7, 101)
	if first.State != string(matchingsvc.StatePartiallyConfirmed) || first.Retired {
		t.Fatalf("unexpected state after first confirm: %+v", first)
	}

	second := confirmAs(t, router, 7, 102)
	if second.State != string(matchingsvc.StateRetired) || !second.Retired {
		t.Fatalf("unexpected state after second confirm: %+v", second)
	}
}

func TestConfirmRejectsNonParticipant(t *testing.T) {
	store := newMatchStoreStub(model.Match{ID: 7, User1ID: 101, User2ID: 102})
	h := NewMatchesHandler(matchingsvc.NewService(store), nil)

	router := chi.NewRouter()
	router.Post("/matchings/{id}/confirm", h.Confirm)

	req := httptest.NewRequest(http.MethodPost, "/matchings/7/confirm", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: 999,
		Role:   "USER",
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusForbidden)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "FORBIDDEN" {
		t.Fatalf("unexpected error code: got %q", payload.Code)
	}
}

func TestConfirmRequiresAuth(t *testing.T) {
	h := NewMatchesHandler(matchingsvc.NewService(newMatchStoreStub(model.Match{})), nil)

	router := chi.NewRouter()
	router.Post("/matchings/{id}/confirm", h.Confirm)

	req := httptest.NewRequest(http.MethodPost, "/matchings/7/confirm", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func confirmAs(t *testing.T, router http.Handler, matchID, userID int64) confirmPayload {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/matchings/7/confirm", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: userID,
		Role:   "USER",
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status for user %d: got %d body %s", userID, rr.Code, rr.Body.String())
	}

	var payload confirmPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

type confirmPayload struct {
	OK      bool   `json:"ok"`
	State   string `json:"state"`
	Retired bool   `json:"retired"`
}

type matchStoreStub struct {
	matches map[int64]model.Match
}

func newMatchStoreStub(matches ...model.Match) *matchStoreStub {
	stub := &matchStoreStub{matches: make(map[int64]model.Match)}
	for _, m := range matches {
		stub.matches[m.ID] = m
	}
	return stub
}

func (s *matchStoreStub) GetByID(_ context.Context, id int64) (model.Match, error) {
	match, ok := s.matches[id]
	if !ok {
		return model.Match{}, pgrepo.ErrMatchNotFound
	}
	return match, nil
}

func (s *matchStoreStub) ConfirmParticipant(_ context.Context, matchID, userID int64) (model.Match, error) {
	match, ok := s.matches[matchID]
	if !ok || !match.IsParticipant(userID) {
		return model.Match{}, pgrepo.ErrMatchNotFound
	}
	if userID == match.User1ID {
		match.User1Confirmed = true
	} else {
		match.User2Confirmed = true
	}
	if match.User1Confirmed && match.User2Confirmed && !match.Retired {
		match.Retired = true
		now := time.Now()
		match.RetiredAt = &now
	}
	s.matches[matchID] = match
	return match, nil
}

func (s *matchStoreStub) ListActiveForUser(_ context.Context, userID int64) ([]model.Match, error) {
	items := make([]model.Match, 0)
	for _, match := range s.matches {
		if !match.Retired && match.IsParticipant(userID) {
			items = append(items, match)
		}
	}
	return items, nil
}

func (s *matchStoreStub) RetireAll(context.Context) (int64, error) {
	return 0, nil
}

func (s *matchStoreStub) DeleteAll(context.Context) (int64, error) {
	return 0, nil
}
