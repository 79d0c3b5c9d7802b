package enums

import (
	"sort"
	"testing"
	"time"
)

func TestAllTimeSlotsAreLexicallyOrdered(t *testing.T) {
	slots := AllTimeSlots()
	if !sort.SliceIsSorted(slots, func(i, j int) bool { return slots[i] < slots[j] }) {
		t.Fatalf("time slots are not lexically ordered: %v", slots)
	}
	for _, slot := range slots {
		if !slot.Valid() {
			t.Fatalf("enumerated slot %q reported invalid", slot)
		}
	}
}

func TestTimeSlotValidRejectsUnknownValue(t *testing.T) {
	if TimeSlot("15:30").Valid() {
		t.Fatalf("expected 15:30 to be outside the slot set")
	}
}

func TestCategoryValid(t *testing.T) {
	for _, category := range AllCategories() {
		if !category.Valid() {
			t.Fatalf("enumerated category %q reported invalid", category)
		}
	}
	if Category("중식").Valid() {
		t.Fatalf("expected unknown category to be invalid")
	}
}

func TestDayOfWeekFromTime(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected DayOfWeek
	}{
		{time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), DayMonday},
		{time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC), DayFriday},
		{time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC), DaySunday},
	}
	for _, tc := range tests {
		if got := DayOfWeekFromTime(tc.date); got != tc.expected {
			t.Fatalf("unexpected weekday for %s: got %s want %s", tc.date.Format("2006-01-02"), got, tc.expected)
		}
	}
}
