package stats

import (
	"context"
	"testing"
	"time"

	"github.com/babmate/backend/internal/domain/enums"
	pgrepo "github.com/babmate/backend/internal/repo/postgres"
)

func TestGlobalCountAppliesPadding(t *testing.T) {
	store := &fakeMatchLogStore{total: 12}
	svc := NewService(store, Config{CountPadding: 250})

	count, err := svc.GlobalCount(context.Background())
	if err != nil {
		t.Fatalf("global count: %v", err)
	}
	if count != 262 {
		t.Fatalf("unexpected padded count: got %d want 262", count)
	}
}

func TestMyCountIsUnpadded(t *testing.T) {
	store := &fakeMatchLogStore{perUser: map[int64]int64{7: 3}}
	svc := NewService(store, Config{CountPadding: 250})

	count, err := svc.MyCount(context.Background(), 7)
	if err != nil {
		t.Fatalf("my count: %v", err)
	}
	if count != 3 {
		t.Fatalf("padding leaked into per-user count: %d", count)
	}
}

func TestMyLogMapsCounterpart(t *testing.T) {
	retiredAt := time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC)
	store := &fakeMatchLogStore{
		log: []pgrepo.MatchLogRecord{
			{
				MatchID:       5,
				Date:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				TimeSlot:      enums.TimeSlotDinner,
				Category:      enums.CategoryKorean,
				StoreID:       9,
				CounterpartID: 42,
				RetiredAt:     &retiredAt,
			},
		},
	}
	svc := NewService(store, Config{})

	entries, err := svc.MyLog(context.Background(), 7, 50)
	if err != nil {
		t.Fatalf("my log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("unexpected log length: %d", len(entries))
	}
	if entries[0].CounterpartID != 42 {
		t.Fatalf("unexpected counterpart: %d", entries[0].CounterpartID)
	}
	if entries[0].RetiredAt == nil || !entries[0].RetiredAt.Equal(retiredAt) {
		t.Fatalf("unexpected retired_at: %v", entries[0].RetiredAt)
	}
}

type fakeMatchLogStore struct {
	total   int64
	perUser map[int64]int64
	log     []pgrepo.MatchLogRecord
}

func (f *fakeMatchLogStore) ListRetiredForUser(_ context.Context, _ int64, _ int) ([]pgrepo.MatchLogRecord, error) {
	return f.log, nil
}

func (f *fakeMatchLogStore) CountRetiredForUser(_ context.Context, userID int64) (int64, error) {
	return f.perUser[userID], nil
}

func (f *fakeMatchLogStore) CountAll(_ context.Context) (int64, error) {
	return f.total, nil
}
