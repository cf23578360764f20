package service

import (
	"github.com/plantdoc/backend/internal/domain"
)

// DefaultHealthChain is the fallback order for disease evidence:
// the plant-health service, then the chat-vision model, then synthetic.
var DefaultHealthChain = []domain.ProviderName{
	domain.ProviderPlantID,
	domain.ProviderChatVision,
	domain.ProviderSynthetic,
}

// healthSignal is a disease probability reported by one provider
type healthSignal struct {
	Provider    domain.ProviderName
	Disease     string
	Probability float64
}

// Selector walks an ordered provider chain over settled outcomes
type Selector struct {
	chain []domain.ProviderName
}

// NewSelector creates a selector; an empty chain uses DefaultHealthChain
func NewSelector(chain []domain.ProviderName) Selector {
	if len(chain) == 0 {
		chain = DefaultHealthChain
	}
	return Selector{chain: chain}
}

// SelectHealth returns the first health signal in chain order. Providers that
// are missing, failed or carry no signal are skipped.
func (s Selector) SelectHealth(outcomes map[domain.ProviderName]domain.Outcome) (healthSignal, bool) {
	for _, name := range s.chain {
		outcome, ok := outcomes[name]
		if !ok || !outcome.OK() {
			continue
		}
		if signal, ok := healthSignalOf(name, outcome.Payload); ok {
			return signal, true
		}
	}
	return healthSignal{}, false
}

// healthSignalOf extracts a disease probability from the payload variants
// that can carry one.
func healthSignalOf(name domain.ProviderName, payload domain.Payload) (healthSignal, bool) {
	switch p := payload.(type) {
	case domain.PlantHealthPayload:
		if p.HealthAssessment == nil {
			return healthSignal{}, false
		}
		return healthSignal{Provider: name, Disease: p.HealthAssessment.Disease, Probability: p.HealthAssessment.Probability}, true
	case domain.ChatVisionPayload:
		return healthSignal{Provider: name, Disease: p.Disease, Probability: p.Probability}, true
	case domain.VisionLabelsPayload, domain.TagsPayload, domain.WeatherSnapshot, domain.SyntheticPayload:
		return healthSignal{}, false
	default:
		return healthSignal{}, false
	}
}
