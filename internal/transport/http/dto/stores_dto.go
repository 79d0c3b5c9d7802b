package dto

type BusinessHourPayload struct {
	DayOfWeek     string `json:"day_of_week"`
	OpeningTime   string `json:"opening_time"`
	ClosingTime   string `json:"closing_time"`
	LastOrderTime string `json:"last_order_time,omitempty"`
	BreakStart    string `json:"break_start,omitempty"`
	BreakEnd      string `json:"break_end,omitempty"`
}

type CreateStoreRequest struct {
	Name          string                `json:"name"`
	Category      string                `json:"category"`
	Address       string                `json:"address"`
	Phone         string                `json:"phone"`
	Description   string                `json:"description"`
	BusinessHours []BusinessHourPayload `json:"business_hours"`
}

type StoreResponse struct {
	ID            int64                 `json:"id"`
	Name          string                `json:"name"`
	Category      string                `json:"category"`
	Address       string                `json:"address,omitempty"`
	Phone         string                `json:"phone,omitempty"`
	Description   string                `json:"description,omitempty"`
	BusinessHours []BusinessHourPayload `json:"business_hours"`
}

type StoresResponse struct {
	Items []StoreResponse `json:"items"`
}
