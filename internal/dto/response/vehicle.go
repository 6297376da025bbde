package response

import (
	"onnrides/internal/data/entity"
	"time"
)

type VehicleResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Type            entity.VehicleType   `json:"type"`
	Location        string               `json:"location"`
	Quantity        int                  `json:"quantity"`
	PricePerHour    float64              `json:"price_per_hour"`
	Price7Days      *float64             `json:"price_7_days,omitempty"`
	Price15Days     *float64             `json:"price_15_days,omitempty"`
	Price30Days     *float64             `json:"price_30_days,omitempty"`
	MinBookingHours int                  `json:"min_booking_hours"`
	IsAvailable     bool                 `json:"is_available"`
	Status          entity.VehicleStatus `json:"status"`
	Description     *string              `json:"description,omitempty"`
	Images          *string              `json:"images,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

func VehicleToResponse(v *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              v.ID.String(),
		Name:            v.Name,
		Type:            v.Type,
		Location:        v.Location,
		Quantity:        v.Quantity,
		PricePerHour:    v.PricePerHour,
		Price7Days:      v.Price7Days,
		Price15Days:     v.Price15Days,
		Price30Days:     v.Price30Days,
		MinBookingHours: v.MinBookingHours,
		IsAvailable:     v.IsAvailable,
		Status:          v.Status,
		Description:     v.Description,
		Images:          v.Images,
		CreatedAt:       v.CreatedAt,
	}
}
