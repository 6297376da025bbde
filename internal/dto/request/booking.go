package request

type QuoteRequest struct {
	VehicleID   string `json:"vehicle_id" validate:"required,uuid4"`
	PickupDate  string `json:"pickup_date" validate:"required"`
	DropoffDate string `json:"dropoff_date" validate:"required"`
}

type CreateBookingRequest struct {
	VehicleID       string  `json:"vehicle_id" validate:"required,uuid4"`
	PickupDate      string  `json:"pickup_date" validate:"required"`
	DropoffDate     string  `json:"dropoff_date" validate:"required"`
	PickupLocation  *string `json:"pickup_location,omitempty"`
	DropoffLocation *string `json:"dropoff_location,omitempty"`
}

type ExtendBookingRequest struct {
	NewEndDate       string  `json:"new_end_date" validate:"required"`
	AdditionalAmount float64 `json:"additional_amount" validate:"gte=0"`
	Collected        bool    `json:"collected"`
	PaymentMethod    string  `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card upi bank_transfer online"`
}

type CollectPaymentRequest struct {
	Amount           float64 `json:"amount" validate:"omitempty,gt=0"`
	PaymentMethod    string  `json:"payment_method" validate:"omitempty,oneof=cash card upi bank_transfer"`
	PaymentReference *string `json:"payment_reference,omitempty"`
}

type RefundBookingRequest struct {
	Amount        float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash card upi bank_transfer online"`
	Reason        *string `json:"reason,omitempty"`
}
