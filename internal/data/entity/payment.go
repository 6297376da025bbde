package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOnline       PaymentMethod = "online"
)

// Payment is an immutable ledger row. The unique reference column is
// the idempotency key against duplicate webhook deliveries.
type Payment struct {
	BaseSimple
	BookingID uuid.UUID     `db:"booking_id"`
	Amount    float64       `db:"amount"`
	Status    PaymentStatus `db:"status"`
	Method    PaymentMethod `db:"method"`
	Reference string        `db:"reference"`
}
