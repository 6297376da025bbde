package response

import (
	"time"
)

type CashFlowResponse struct {
	OpeningBalance   float64 `json:"opening_balance"`
	CashCollections  float64 `json:"cash_collections"`
	CardCollections  float64 `json:"card_collections"`
	UPICollections   float64 `json:"upi_collections"`
	BankCollections  float64 `json:"bank_collections"`
	TotalCollections float64 `json:"total_collections"`
	TotalRefunds     float64 `json:"total_refunds"`
	ClosingBalance   float64 `json:"closing_balance"`
}

type TransactionResponse struct {
	PaymentID    string    `json:"payment_id"`
	BookingCode  string    `json:"booking_code"`
	CustomerName string    `json:"customer_name"`
	Amount       float64   `json:"amount"`
	Method       string    `json:"method"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
}

type DailySummaryResponse struct {
	Date         string                `json:"date"`
	CashFlow     CashFlowResponse      `json:"cash_flow"`
	Transactions []TransactionResponse `json:"transactions"`
}

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
