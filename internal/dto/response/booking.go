package response

import (
	"onnrides/internal/data/entity"
	"time"
)

// PriceBreakdownResponse mirrors usecase.PriceBreakdown for quoting.
type PriceBreakdownResponse struct {
	DurationHours  int     `json:"duration_hours"`
	BasePrice      float64 `json:"base_price"`
	GST            float64 `json:"gst"`
	ServiceFee     float64 `json:"service_fee"`
	TotalAmount    float64 `json:"total_amount"`
	AdvancePayment float64 `json:"advance_payment"`
}

type BookingResponse struct {
	ID              string                      `json:"id"`
	BookingCode     string                      `json:"booking_code"`
	UserID          string                      `json:"user_id"`
	VehicleID       string                      `json:"vehicle_id"`
	VehicleName     string                      `json:"vehicle_name,omitempty"`
	StartDate       time.Time                   `json:"start_date"`
	EndDate         time.Time                   `json:"end_date"`
	TotalHours      int                         `json:"total_hours"`
	TotalPrice      float64                     `json:"total_price"`
	PaidAmount      float64                     `json:"paid_amount"`
	PendingAmount   float64                     `json:"pending_amount"`
	Status          entity.BookingStatus        `json:"status"`
	PaymentStatus   entity.BookingPaymentStatus `json:"payment_status"`
	PickupLocation  *string                     `json:"pickup_location,omitempty"`
	DropoffLocation *string                     `json:"dropoff_location,omitempty"`
	Pricing         *PriceBreakdownResponse     `json:"pricing,omitempty"`
	Payments        []PaymentResponse           `json:"payments,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		BookingCode:     b.BookingCode,
		UserID:          b.UserID.String(),
		VehicleID:       b.VehicleID.String(),
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		TotalHours:      b.TotalHours,
		TotalPrice:      b.TotalPrice,
		PaidAmount:      b.PaidAmount,
		PendingAmount:   b.PendingAmount,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		CreatedAt:       b.CreatedAt,
	}
}
