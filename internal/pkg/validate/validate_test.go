package validate

import "testing"

func TestClockTime(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"12:60", false},
		{"12:00:00", false},
		{"", false},
		{"noon", false},
	}
	for _, tc := range tests {
		if got := ClockTime(tc.value); got != tc.want {
			t.Errorf("ClockTime(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRequired(t *testing.T) {
	if Required("   ") {
		t.Fatalf("whitespace must not satisfy Required")
	}
	if !Required("국밥집") {
		t.Fatalf("non-empty value must satisfy Required")
	}
}
