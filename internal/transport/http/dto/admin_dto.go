package dto

type AdminSweepResponse struct {
	OK       bool  `json:"ok"`
	Affected int64 `json:"affected"`
}
