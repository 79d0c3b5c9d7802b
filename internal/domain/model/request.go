package model

import (
	"time"

	"github.com/babmate/backend/internal/domain/enums"
)

// MatchingRequest is a pending ask for a dinner partner on a given day, slot
// and category. RequestedAt drives the FIFO fairness contract of the matcher.
type MatchingRequest struct {
	ID          int64          `json:"id"`
	Date        time.Time      `json:"date"`
	TimeSlot    enums.TimeSlot `json:"time_slot"`
	Category    enums.Category `json:"category"`
	UserID      int64          `json:"user_id"`
	Memo        string         `json:"memo"`
	RequestedAt time.Time      `json:"requested_at"`
}
