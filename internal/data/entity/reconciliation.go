package entity

import (
	"time"
)

// DailyReconciliation is the persisted close-of-day cash summary. The
// closing balance of the latest reconciled day seeds the next day's
// opening balance.
type DailyReconciliation struct {
	Base
	Date            time.Time `db:"date"`
	OpeningBalance  float64   `db:"opening_balance"`
	CashCollections float64   `db:"cash_collections"`
	CardCollections float64   `db:"card_collections"`
	UPICollections  float64   `db:"upi_collections"`
	BankCollections float64   `db:"bank_collections"`
	TotalRefunds    float64   `db:"total_refunds"`
	ClosingBalance  float64   `db:"closing_balance"`
	Notes           *string   `db:"notes"`
}
