package domain

import "time"

type Report struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	PeriodStart time.Time   `json:"period_start"`
	PeriodEnd   time.Time   `json:"period_end"`
	Lines       []ReportRow `json:"lines"`
	Totals      ReportRow   `json:"totals"`
	GeneratedBy int64       `json:"generated_by"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ReportRow is the distribution summary of one franchise and area.
type ReportRow struct {
	Franchise        string  `json:"franchise_name"`
	Area             string  `json:"area"`
	Records          int     `json:"records"`
	WinAmount        float64 `json:"win_amount"`
	ChargeAmount     float64 `json:"charge_amount"`
	NetAmount        float64 `json:"net"`
	CollectedCount   int     `json:"collected_count"`
	CollectedNet     float64 `json:"collected_net"`
	OutstandingCount int     `json:"outstanding_count"`
	OutstandingNet   float64 `json:"outstanding_net"`
}
