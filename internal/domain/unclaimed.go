package domain

import "time"

type UnclaimedStatus string

const (
	StatusUnclaimed   UnclaimedStatus = "Unclaimed"
	StatusUncollected UnclaimedStatus = "Uncollected"
	StatusCollected   UnclaimedStatus = "Collected"
	StatusCancelled   UnclaimedStatus = "Cancelled"
)

// CollectedStatusFor returns the status a record moves to when the given role marks it collected.
// A cashier pays out at the counter, so the cash is already in hand; everyone else still owes a deposit.
func CollectedStatusFor(role Role) UnclaimedStatus {
	if NormalizeRole(string(role)) == RoleCashier {
		return StatusCollected
	}
	return StatusUncollected
}

type UnclaimedRecord struct {
	ID               int64           `json:"id"`
	TransID          string          `json:"trans_id"`
	TellerName       string          `json:"teller_name"`
	BetNumber        string          `json:"bet_number"`
	BetCode          string          `json:"bet_code"`
	DrawDate         time.Time       `json:"draw_date"`
	BetAmount        float64         `json:"bet_amount"`
	WinAmount        float64         `json:"win_amount"`
	ChargeAmount     float64         `json:"charge_amount"`
	NetAmount        float64         `json:"net"`
	ModeOfPayment    string          `json:"mode_of_payment"`
	Collector        string          `json:"collector"`
	Area             string          `json:"area"`
	Franchise        string          `json:"franchise_name"`
	Status           UnclaimedStatus `json:"status"`
	ReturnDate       *time.Time      `json:"return_date"`
	DepositDate      *time.Time      `json:"deposit_date"`
	VerificationDate *time.Time      `json:"verification_date"`
	CreatedBy        *int64          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
	Version          int32           `json:"-"`
}

func (r *UnclaimedRecord) AssignedCollector() string {
	return r.Collector
}

// RecomputeNet keeps net = win - charge after the amounts change.
func (r *UnclaimedRecord) RecomputeNet() {
	r.NetAmount = r.WinAmount - r.ChargeAmount
}

// Net is the amount used in distribution reporting. Rows saved before net was tracked
// carry 0 and fall back to the win amount.
func (r *UnclaimedRecord) Net() float64 {
	if r.NetAmount != 0 {
		return r.NetAmount
	}
	return r.WinAmount
}

type UnclaimedFilter struct {
	Status    []UnclaimedStatus
	Collector string
	Area      string
	Franchise string
	DrawFrom  *time.Time
	DrawTo    *time.Time
	OrderBy   string
	Desc      bool
}
