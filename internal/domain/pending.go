package domain

type Source string

const (
	SourcePrimary      Source = "primary"
	SourceExternalFeed Source = "external_feed"
)

// PendingRecord is an unclaimed or uncollected win that is due for return. Rows come either
// from the primary store or from a spreadsheet feed; DrawDate is kept as the source sent it.
type PendingRecord struct {
	ID           int64   `json:"id,omitempty"`
	TransID      string  `json:"trans_id"`
	TellerName   string  `json:"teller_name"`
	BetNumber    string  `json:"bet_number"`
	BetCode      string  `json:"bet_code"`
	DrawDate     string  `json:"draw_date"`
	BetAmount    float64 `json:"bet_amount"`
	WinAmount    float64 `json:"win_amount"`
	Collector    string  `json:"collector"`
	Area         string  `json:"area,omitempty"`
	Franchise    string  `json:"franchise_name,omitempty"`
	Status       string  `json:"status"`
	Notification string  `json:"notification,omitempty"`
	Source       Source  `json:"source"`
	DaysOverdue  int     `json:"days_overdue"`
}

func (r *PendingRecord) AssignedCollector() string {
	return r.Collector
}

type PendingFilter struct {
	Area      string
	Franchise string
	Collector string
}
