package ports

import "context"

// ReportInput holds everything the LLM needs to write an injury report.
type ReportInput struct {
	Category string
	Subject  string
}

// ReportOutput is the structured report returned by the LLM.
type ReportOutput struct {
	Player    string `json:"player"`
	Diagnosis string `json:"diagnosis"`
	Timeline  string `json:"timeline"`
	Quote     string `json:"quote"`
	CapImpact string `json:"cap_impact"`
	Model     string `json:"-"`
}

// Reporter generates an injury report narrative via an LLM.
type Reporter interface {
	Generate(ctx context.Context, in ReportInput) (ReportOutput, error)
}
