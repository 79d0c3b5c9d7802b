package requests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
	pgrepo "github.com/babmate/backend/internal/repo/postgres"
)

func TestSubmitValidatesEnums(t *testing.T) {
	svc := NewService(newFakeRequestStore())
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input SubmitInput
	}{
		{name: "unknown slot", input: SubmitInput{Date: date, TimeSlot: "15:30", Category: enums.CategoryKorean}},
		{name: "unknown category", input: SubmitInput{Date: date, TimeSlot: enums.TimeSlotLunch, Category: "중식"}},
		{name: "zero date", input: SubmitInput{TimeSlot: enums.TimeSlotLunch, Category: enums.CategoryKorean}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(context.Background(), 1, tc.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSubmitMapsDuplicate(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewService(store)
	input := SubmitInput{
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot: enums.TimeSlotDinner,
		Category: enums.CategoryKorean,
		Memo:     "첫 매칭 요청입니다",
	}

	if _, err := svc.Submit(context.Background(), 1, input); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(context.Background(), 1, input); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCancelRequiresOwnership(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewService(store)

	created, err := svc.Submit(context.Background(), 1, SubmitInput{
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot: enums.TimeSlotDinner,
		Category: enums.CategoryKorean,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Cancel(context.Background(), created.ID, 2); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Cancel(context.Background(), created.ID, 1); err != nil {
		t.Fatalf("owner cancel: %v", err)
	}
	if err := svc.Cancel(context.Background(), created.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after deletion, got %v", err)
	}
}

func TestListMineReturnsOnlyOwnRequests(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewService(store)
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Submit(context.Background(), 1, SubmitInput{Date: date, TimeSlot: enums.TimeSlotLunch, Category: enums.CategoryKorean}); err != nil {
		t.Fatalf("submit user 1: %v", err)
	}
	if _, err := svc.Submit(context.Background(), 2, SubmitInput{Date: date, TimeSlot: enums.TimeSlotLunch, Category: enums.CategoryKorean}); err != nil {
		t.Fatalf("submit user 2: %v", err)
	}

	mine, err := svc.ListMine(context.Background(), 1)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != 1 {
		t.Fatalf("unexpected listing: %+v", mine)
	}
}

type fakeRequestStore struct {
	nextID   int64
	requests map[int64]model.MatchingRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{nextID: 1, requests: make(map[int64]model.MatchingRequest)}
}

func (f *fakeRequestStore) Create(_ context.Context, req model.MatchingRequest) (model.MatchingRequest, error) {
	for _, existing := range f.requests {
		if existing.UserID == req.UserID && existing.Date.Equal(req.Date) && existing.TimeSlot == req.TimeSlot {
			return model.MatchingRequest{}, pgrepo.ErrDuplicateRequest
		}
	}
	req.ID = f.nextID
	f.nextID++
	req.RequestedAt = time.Now()
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestStore) GetByID(_ context.Context, id int64) (model.MatchingRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return model.MatchingRequest{}, pgrepo.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestStore) ListForUser(_ context.Context, userID int64) ([]model.MatchingRequest, error) {
	items := make([]model.MatchingRequest, 0)
	for _, req := range f.requests {
		if req.UserID == userID {
			items = append(items, req)
		}
	}
	return items, nil
}

func (f *fakeRequestStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.requests[id]; !ok {
		return false, nil
	}
	delete(f.requests, id)
	return true, nil
}

func (f *fakeRequestStore) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(f.requests))
	f.requests = make(map[int64]model.MatchingRequest)
	return n, nil
}
