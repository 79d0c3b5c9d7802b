package dto

type MatchCountResponse struct {
	Count int64 `json:"count"`
}
