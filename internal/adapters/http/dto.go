package http

// SpinResponse is returned when a spin is accepted. The renderer
// animates to TargetRotation over SpinDurationMS, which is exactly
// when the server resolves the outcome.
type SpinResponse struct {
	SpinID         int64   `json:"spin_id"`
	TargetRotation float64 `json:"target_rotation"`
	SpinDurationMS int64   `json:"spin_duration_ms"`
}

// StateResponse is the JSON shape returned by GET /v1/state.
type StateResponse struct {
	Phase    string          `json:"phase"`
	Rotation float64         `json:"rotation"`
	SpinID   int64           `json:"spin_id"`
	Report   *ReportResponse `json:"report,omitempty"`
}

// WheelResponse describes the static wheel layout.
type WheelResponse struct {
	Categories     []string `json:"categories"`
	SegmentAngle   float64  `json:"segment_angle"`
	SpinDurationMS int64    `json:"spin_duration_ms"`
}

type ReportResponse struct {
	Category  string `json:"category"`
	Player    string `json:"player"`
	Diagnosis string `json:"diagnosis"`
	Timeline  string `json:"timeline"`
	Quote     string `json:"quote"`
	CapImpact string `json:"cap_impact"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
