package entity

// Well-known setting keys. Numeric ones override the config defaults
// for the pricing calculator.
const (
	SettingGSTPercentage        = "booking_gst_percentage"
	SettingServiceFeePercentage = "booking_service_fee_percentage"
	SettingAdvancePercentage    = "booking_advance_payment_percentage"
)

type Setting struct {
	Base
	Key   string `db:"key"`
	Value string `db:"value"`
}
