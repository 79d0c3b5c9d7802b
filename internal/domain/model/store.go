package model

import (
	"time"

	"github.com/babmate/backend/internal/domain/enums"
)

// BusinessHour is one opening window of a store. Empty optional fields mean
// the constraint does not apply. Entries for a given day are not required to
// be contiguous, and a day with no entries is a closed day.
type BusinessHour struct {
	DayOfWeek     enums.DayOfWeek `json:"day_of_week"`
	OpeningTime   string          `json:"opening_time"`
	ClosingTime   string          `json:"closing_time"`
	LastOrderTime string          `json:"last_order_time,omitempty"`
	BreakStart    string          `json:"break_start,omitempty"`
	BreakEnd      string          `json:"break_end,omitempty"`
}

type Store struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Category      enums.Category `json:"category"`
	Address       string         `json:"address,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Description   string         `json:"description,omitempty"`
	BusinessHours []BusinessHour `json:"business_hours"`
	CreatedAt     time.Time      `json:"created_at"`
}
