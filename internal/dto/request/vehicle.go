package request

type CreateVehicleRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=100"`
	Type            string   `json:"type" validate:"required,oneof=bike scooter"`
	Location        string   `json:"location" validate:"required"`
	Quantity        int      `json:"quantity" validate:"required,gte=1"`
	PricePerHour    float64  `json:"price_per_hour" validate:"required,gt=0"`
	Price7Days      *float64 `json:"price_7_days,omitempty" validate:"omitempty,gt=0"`
	Price15Days     *float64 `json:"price_15_days,omitempty" validate:"omitempty,gt=0"`
	Price30Days     *float64 `json:"price_30_days,omitempty" validate:"omitempty,gt=0"`
	MinBookingHours int      `json:"min_booking_hours" validate:"omitempty,gte=1"`
	Description     *string  `json:"description,omitempty"`
	Images          *string  `json:"images,omitempty"`
}

type UpdateVehicleRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location        *string  `json:"location,omitempty"`
	Quantity        *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	PricePerHour    *float64 `json:"price_per_hour,omitempty" validate:"omitempty,gt=0"`
	Price7Days      *float64 `json:"price_7_days,omitempty" validate:"omitempty,gt=0"`
	Price15Days     *float64 `json:"price_15_days,omitempty" validate:"omitempty,gt=0"`
	Price30Days     *float64 `json:"price_30_days,omitempty" validate:"omitempty,gt=0"`
	MinBookingHours *int     `json:"min_booking_hours,omitempty" validate:"omitempty,gte=1"`
	IsAvailable     *bool    `json:"is_available,omitempty"`
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=active maintenance retired"`
	Description     *string  `json:"description,omitempty"`
	Images          *string  `json:"images,omitempty"`
}
