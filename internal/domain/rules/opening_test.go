package rules

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
)

// 2026-09-02 is a Wednesday.
var wednesday = time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)

func weekdayStore(hours ...model.BusinessHour) model.Store {
	return model.Store{
		ID:            1,
		Name:          "김밥천국",
		Category:      enums.CategoryKorean,
		BusinessHours: hours,
	}
}

func TestIsOpenRespectsBreakWindow(t *testing.T) {
	store := weekdayStore(
		model.BusinessHour{
			DayOfWeek:   enums.DayMonday,
			OpeningTime: "11:00",
			ClosingTime: "22:00",
			BreakStart:  "15:00",
			BreakEnd:    "17:00",
		},
		model.BusinessHour{
			DayOfWeek:   enums.DayWednesday,
			OpeningTime: "11:00",
			ClosingTime: "22:00",
			BreakStart:  "15:00",
			BreakEnd:    "17:00",
		},
	)

	tests := []struct {
		slot enums.TimeSlot
		open bool
	}{
		{enums.TimeSlot("12:00"), true},
		{enums.TimeSlot("16:00"), false},
		{enums.TimeSlot("21:00"), true},
	}
	for _, tc := range tests {
		if got := IsOpen(store, wednesday, tc.slot); got != tc.open {
			t.Fatalf("IsOpen at %s: got %v want %v", tc.slot, got, tc.open)
		}
	}
}

func TestIsOpenRespectsLastOrderCutoff(t *testing.T) {
	store := weekdayStore(model.BusinessHour{
		DayOfWeek:     enums.DayEveryday,
		OpeningTime:   "11:00",
		ClosingTime:   "22:00",
		LastOrderTime: "21:30",
	})

	if !IsOpen(store, wednesday, enums.TimeSlot("19:00")) {
		t.Fatalf("expected store open before last order")
	}
	if IsOpen(store, wednesday, enums.TimeSlot("22:00")) {
		t.Fatalf("expected store closed at last-order cutoff")
	}
}

func TestIsOpenClosedDayYieldsFalse(t *testing.T) {
	store := weekdayStore(model.BusinessHour{
		DayOfWeek:   enums.DaySunday,
		OpeningTime: "11:00",
		ClosingTime: "22:00",
	})

	if IsOpen(store, wednesday, enums.TimeSlotLunch) {
		t.Fatalf("expected no qualifying entry to mean closed")
	}
}

func TestIsOpenSecondEntryOfSameDayQualifies(t *testing.T) {
	// Non-contiguous windows on the same day: lunch service and dinner service.
	store := weekdayStore(
		model.BusinessHour{DayOfWeek: enums.DayWednesday, OpeningTime: "11:00", ClosingTime: "14:00"},
		model.BusinessHour{DayOfWeek: enums.DayWednesday, OpeningTime: "17:30", ClosingTime: "22:00"},
	)

	if !IsOpen(store, wednesday, enums.TimeSlotDinner) {
		t.Fatalf("expected dinner window to qualify")
	}
	if IsOpen(store, wednesday, enums.TimeSlot("15:00")) {
		t.Fatalf("expected the gap between windows to be closed")
	}
}

func TestPickEligibleStoreFiltersBeforePicking(t *testing.T) {
	open := weekdayStore(model.BusinessHour{
		DayOfWeek:   enums.DayEveryday,
		OpeningTime: "11:00",
		ClosingTime: "22:00",
	})
	open.ID = 7
	closed := weekdayStore(model.BusinessHour{
		DayOfWeek:   enums.DaySunday,
		OpeningTime: "11:00",
		ClosingTime: "22:00",
	})
	closed.ID = 8

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		store, err := PickEligibleStore([]model.Store{closed, open, closed}, wednesday, enums.TimeSlotDinner, rnd)
		if err != nil {
			t.Fatalf("unexpected pick error: %v", err)
		}
		if store.ID != open.ID {
			t.Fatalf("picked a closed store: %d", store.ID)
		}
	}
}

func TestPickEligibleStoreEmptySet(t *testing.T) {
	closed := weekdayStore(model.BusinessHour{
		DayOfWeek:   enums.DaySunday,
		OpeningTime: "11:00",
		ClosingTime: "22:00",
	})

	rnd := rand.New(rand.NewSource(1))
	_, err := PickEligibleStore([]model.Store{closed}, wednesday, enums.TimeSlotDinner, rnd)
	if !errors.Is(err, ErrNoEligibleStore) {
		t.Fatalf("expected ErrNoEligibleStore, got %v", err)
	}

	_, err = PickEligibleStore(nil, wednesday, enums.TimeSlotDinner, rnd)
	if !errors.Is(err, ErrNoEligibleStore) {
		t.Fatalf("expected ErrNoEligibleStore for empty candidate list, got %v", err)
	}
}
