package dto

import "time"

type MatchItemResponse struct {
	ID               int64     `json:"id"`
	Date             string    `json:"date"`
	TimeSlot         string    `json:"time_slot"`
	Category         string    `json:"category"`
	StoreID          int64     `json:"store_id"`
	PartnerID        int64     `json:"partner_id"`
	PartnerMemo      string    `json:"partner_memo,omitempty"`
	Confirmed        bool      `json:"confirmed"`
	PartnerConfirmed bool      `json:"partner_confirmed"`
	State            string    `json:"state"`
	CreatedAt        time.Time `json:"created_at"`
}

type MatchesResponse struct {
	Items []MatchItemResponse `json:"items"`
}

type ConfirmResponse struct {
	OK      bool   `json:"ok"`
	State   string `json:"state"`
	Retired bool   `json:"retired"`
}

type MatchLogItemResponse struct {
	MatchID   int64      `json:"match_id"`
	Date      string     `json:"date"`
	TimeSlot  string     `json:"time_slot"`
	Category  string     `json:"category"`
	StoreID   int64      `json:"store_id"`
	PartnerID int64      `json:"partner_id"`
	RetiredAt *time.Time `json:"retired_at,omitempty"`
}

type MatchLogResponse struct {
	Items []MatchLogItemResponse `json:"items"`
}
