package enums

// TimeSlot is one of the fixed service times a dinner match can be scheduled
// for. Values are canonical "HH:MM" strings so they compare lexically against
// store opening hours.
type TimeSlot string

const (
	TimeSlotLunch      TimeSlot = "12:00"
	TimeSlotLateLunch  TimeSlot = "13:00"
	TimeSlotDinner     TimeSlot = "18:00"
	TimeSlotLateDinner TimeSlot = "19:00"
)

// AllTimeSlots returns every slot in lexical (chronological) order. The
// matcher iterates this set, so adding a slot here is enough to schedule it.
func AllTimeSlots() []TimeSlot {
	return []TimeSlot{TimeSlotLunch, TimeSlotLateLunch, TimeSlotDinner, TimeSlotLateDinner}
}

func (s TimeSlot) Valid() bool {
	switch s {
	case TimeSlotLunch, TimeSlotLateLunch, TimeSlotDinner, TimeSlotLateDinner:
		return true
	default:
		return false
	}
}
