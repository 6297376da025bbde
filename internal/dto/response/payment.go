package response

import (
	"onnrides/internal/data/entity"
	"time"
)

type PaymentResponse struct {
	ID        string               `json:"id"`
	BookingID string               `json:"booking_id"`
	Amount    float64              `json:"amount"`
	Status    entity.PaymentStatus `json:"status"`
	Method    entity.PaymentMethod `json:"method"`
	Reference string               `json:"reference"`
	CreatedAt time.Time            `json:"created_at"`
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID.String(),
		BookingID: p.BookingID.String(),
		Amount:    p.Amount,
		Status:    p.Status,
		Method:    p.Method,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}
