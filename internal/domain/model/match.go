package model

import (
	"time"

	"github.com/babmate/backend/internal/domain/enums"
)

// Match is a confirmed pairing of two requests at an eligible store. Retiring
// flips the flag instead of deleting the row so the historical log stays
// queryable.
type Match struct {
	ID             int64          `json:"id"`
	Date           time.Time      `json:"date"`
	TimeSlot       enums.TimeSlot `json:"time_slot"`
	Category       enums.Category `json:"category"`
	StoreID        int64          `json:"store_id"`
	User1ID        int64          `json:"user1_id"`
	User2ID        int64          `json:"user2_id"`
	User1Memo      string         `json:"user1_memo"`
	User2Memo      string         `json:"user2_memo"`
	User1Confirmed bool           `json:"user1_confirmed"`
	User2Confirmed bool           `json:"user2_confirmed"`
	Retired        bool           `json:"retired"`
	CreatedAt      time.Time      `json:"created_at"`
	RetiredAt      *time.Time     `json:"retired_at,omitempty"`
}

// IsParticipant reports whether the user is one of the two matched parties.
func (m Match) IsParticipant(userID int64) bool {
	return userID == m.User1ID || userID == m.User2ID
}
