package models

// Requests for the dashboard HTTP endpoints. Symbols and dates are not tagged
// required: a missing value is a user warning handled by the controller.

type SubmitRequest struct {
	Symbols []string `form:"symbols" json:"symbols"`
	Start   string   `form:"start" json:"start"`
	End     string   `form:"end" json:"end"`
	Mode    string   `form:"mode" json:"mode" default:"prediction" validate:"oneof=prediction graphs analysis"`
}

type ViewRequest struct {
	Mode string `query:"mode" json:"mode" validate:"omitempty,oneof=prediction graphs analysis"`
}
