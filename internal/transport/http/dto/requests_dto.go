package dto

import "time"

type SubmitRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Category string `json:"category"`
	Memo     string `json:"memo"`
}

type RequestItemResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	Category    string    `json:"category"`
	Memo        string    `json:"memo,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

type RequestsResponse struct {
	Items []RequestItemResponse `json:"items"`
}

type CancelResponse struct {
	OK bool `json:"ok"`
}
