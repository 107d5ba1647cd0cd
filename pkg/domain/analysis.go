package domain

type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// SkinAnalysisResult is the structured diagnostic produced by a single
// image-analysis call. It is attached to exactly one assistant message and
// never mutated afterwards.
type SkinAnalysisResult struct {
	ConditionName    string   `json:"condition_name"`
	ConfidenceScore  float64  `json:"confidence_score"`
	Severity         Severity `json:"severity"`
	Description      string   `json:"description"`
	SymptomsObserved []string `json:"symptoms_observed"`
	Recommendations  []string `json:"recommendations"`
	TreatmentOptions []string `json:"treatment_options"`
}
