package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusFailed    BookingStatus = "failed"
)

type BookingPaymentStatus string

const (
	BookingPaymentPending       BookingPaymentStatus = "pending"
	BookingPaymentPartiallyPaid BookingPaymentStatus = "partially_paid"
	BookingPaymentPaid          BookingPaymentStatus = "paid"
	BookingPaymentRefunded      BookingPaymentStatus = "refunded"
	BookingPaymentFailed        BookingPaymentStatus = "failed"
)

type Booking struct {
	Base
	BookingCode     string               `db:"booking_code"`
	UserID          uuid.UUID            `db:"user_id"`
	VehicleID       uuid.UUID            `db:"vehicle_id"`
	StartDate       time.Time            `db:"start_date"`
	EndDate         time.Time            `db:"end_date"`
	TotalHours      int                  `db:"total_hours"`
	TotalPrice      float64              `db:"total_price"`
	PaidAmount      float64              `db:"paid_amount"`
	PendingAmount   float64              `db:"pending_amount"`
	Status          BookingStatus        `db:"status"`
	PaymentStatus   BookingPaymentStatus `db:"payment_status"`
	PickupLocation  *string              `db:"pickup_location"`
	DropoffLocation *string              `db:"dropoff_location"`
}

// IsTerminal reports whether the booking can no longer change.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusFailed:
		return true
	}
	return false
}
