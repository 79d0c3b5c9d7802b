package rules

import (
	"errors"
	"math/rand"
	"time"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
)

// ErrNoEligibleStore means no store in the candidate list is open at the
// requested slot. Callers treat it as a skip-this-bucket condition, not a
// fatal error.
var ErrNoEligibleStore = errors.New("no eligible store for slot")

// IsOpen reports whether the store serves the given slot on the given date.
// Time comparisons are lexical on "HH:MM" strings; slot values come from the
// closed enums.TimeSlot set, which is lexically ordered by construction.
func IsOpen(store model.Store, date time.Time, slot enums.TimeSlot) bool {
	day := enums.DayOfWeekFromTime(date)
	at := string(slot)

	for _, hours := range store.BusinessHours {
		if hours.DayOfWeek != day && hours.DayOfWeek != enums.DayEveryday {
			continue
		}
		if at < hours.OpeningTime || at > hours.ClosingTime {
			continue
		}
		if hours.BreakStart != "" && at >= hours.BreakStart && at <= hours.BreakEnd {
			continue
		}
		if hours.LastOrderTime != "" && at >= hours.LastOrderTime {
			continue
		}
		return true
	}
	return false
}

// PickEligibleStore filters the candidates down to stores open at the slot
// and picks one uniformly at random. Filtering before picking keeps the
// selection bounded even when most candidates are closed.
func PickEligibleStore(stores []model.Store, date time.Time, slot enums.TimeSlot, rnd *rand.Rand) (model.Store, error) {
	eligible := make([]model.Store, 0, len(stores))
	for _, store := range stores {
		if IsOpen(store, date, slot) {
			eligible = append(eligible, store)
		}
	}
	if len(eligible) == 0 {
		return model.Store{}, ErrNoEligibleStore
	}
	return eligible[rnd.Intn(len(eligible))], nil
}
