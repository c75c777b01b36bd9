package domain

import "time"

// CollectionRecord is one cash deposit logged against the overall collections ledger.
type CollectionRecord struct {
	ID            int64     `json:"id"`
	UnclaimedID   *int64    `json:"unclaimed_id"`
	Collector     string    `json:"collector"`
	Area          string    `json:"area"`
	Franchise     string    `json:"franchise_name"`
	Amount        float64   `json:"amount"`
	ModeOfPayment string    `json:"mode_of_payment"`
	DepositDate   time.Time `json:"deposit_date"`
	ReceivedBy    int64     `json:"received_by"`
	Remarks       string    `json:"remarks"`
	CreatedAt     time.Time `json:"created_at"`
}

type Area struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Version     int32     `json:"-"`
}
