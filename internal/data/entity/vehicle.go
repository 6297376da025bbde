package entity

type VehicleType string

const (
	VehicleTypeBike    VehicleType = "bike"
	VehicleTypeScooter VehicleType = "scooter"
)

type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusRetired     VehicleStatus = "retired"
)

type Vehicle struct {
	Base
	Name            string        `db:"name"`
	Type            VehicleType   `db:"type"`
	Location        string        `db:"location"`
	Quantity        int           `db:"quantity"`
	PricePerHour    float64       `db:"price_per_hour"`
	Price7Days      *float64      `db:"price_7_days"`
	Price15Days     *float64      `db:"price_15_days"`
	Price30Days     *float64      `db:"price_30_days"`
	MinBookingHours int           `db:"min_booking_hours"`
	IsAvailable     bool          `db:"is_available"`
	Status          VehicleStatus `db:"status"`
	Description     *string       `db:"description"`
	Images          *string       `db:"images"`
}
