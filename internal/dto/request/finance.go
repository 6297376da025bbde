package request

type ReconcileRequest struct {
	Date  string  `json:"date" validate:"required"`
	Notes *string `json:"notes,omitempty"`
}

type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}
