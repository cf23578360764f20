package domain

// Severity is the coarse disease severity tier
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
)

// Default disease names used when evidence is missing
const (
	DiseaseUnknown = "Unknown Disease"
	DiseaseHealthy = "Healthy"
	PlantHealthy   = "Healthy Plant"
)

// SeverityFor maps a disease probability in [0,1] to a tier.
func SeverityFor(probability float64) Severity {
	switch {
	case probability > 0.7:
		return SeverityHigh
	case probability > 0.4:
		return SeverityModerate
	default:
		return SeverityLow
	}
}

// NormalizedFinding is the merged core diagnosis all provider outputs reduce to
type NormalizedFinding struct {
	DiseaseName string       `json:"diseaseName"`
	Condition   string       `json:"condition,omitempty"`
	Confidence  float64      `json:"confidence"`
	Severity    Severity     `json:"severity"`
	Labels      []string     `json:"labels"`
	Tags        []string     `json:"tags"`
	Source      ProviderName `json:"source,omitempty"`
}
