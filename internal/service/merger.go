package service

import (
	"fmt"
	"strconv"

	"github.com/plantdoc/backend/internal/domain"
	"github.com/plantdoc/backend/pkg/utils"
)

// plantKeywords mark labels and tags that describe plant material
var plantKeywords = []string{"plant", "leaf", "flower", "green", "nature", "garden"}

// Merger reduces settled outcomes to a NormalizedFinding.
// Precedence: health signal > plant identification > label/tag keywords.
type Merger struct {
	selector         Selector
	keywordInference bool
}

// NewMerger creates a merger. With keywordInference set, a finding without
// any disease or identification evidence is reported as "Healthy" when the
// labels or tags describe plant material.
func NewMerger(selector Selector, keywordInference bool) *Merger {
	return &Merger{selector: selector, keywordInference: keywordInference}
}

// Merge is a pure function of its input: the same outcomes always produce
// the same finding.
func (m *Merger) Merge(outcomes []domain.Outcome) domain.NormalizedFinding {
	byProvider := indexOutcomes(outcomes)

	finding := domain.NormalizedFinding{
		DiseaseName: domain.DiseaseUnknown,
		Severity:    domain.SeverityLow,
		Labels:      collectLabels(byProvider),
		Tags:        collectTags(byProvider),
	}

	signal, hasSignal := m.selector.SelectHealth(byProvider)
	if hasSignal {
		applyHealthSignal(&finding, signal)
	}

	top, hasIdentification := topSuggestion(byProvider)
	if hasIdentification {
		applyIdentification(&finding, top)
	}

	if !hasSignal && !hasIdentification && m.keywordInference {
		if len(AgriculturalKeywords(finding.Labels, finding.Tags)) > 0 {
			finding.DiseaseName = domain.DiseaseHealthy
		}
	}

	return finding
}

// indexOutcomes keeps the first outcome per provider
func indexOutcomes(outcomes []domain.Outcome) map[domain.ProviderName]domain.Outcome {
	byProvider := make(map[domain.ProviderName]domain.Outcome, len(outcomes))
	for _, o := range outcomes {
		if _, seen := byProvider[o.Provider]; !seen {
			byProvider[o.Provider] = o
		}
	}
	return byProvider
}

func applyHealthSignal(f *domain.NormalizedFinding, s healthSignal) {
	f.Confidence = utils.Clamp(s.Probability*100, 0, 100)
	f.Severity = domain.SeverityFor(s.Probability)
	f.Condition = s.Disease
	f.Source = s.Provider
	if s.Disease != "" {
		f.DiseaseName = s.Disease
	} else {
		f.DiseaseName = domain.PlantHealthy
	}
}

// applyIdentification renames the finding after the top species suggestion.
// Severity is deliberately left as the health step set it.
func applyIdentification(f *domain.NormalizedFinding, top domain.Suggestion) {
	percent := top.Probability * 100
	f.DiseaseName = fmt.Sprintf("%s (%s%% confidence)", top.Name, strconv.FormatFloat(percent, 'f', -1, 64))
	f.Confidence = utils.Clamp(percent, 0, 100)
	if f.Source == "" {
		f.Source = domain.ProviderPlantID
	}
}

func topSuggestion(byProvider map[domain.ProviderName]domain.Outcome) (domain.Suggestion, bool) {
	outcome, ok := byProvider[domain.ProviderPlantID]
	if !ok || !outcome.OK() {
		return domain.Suggestion{}, false
	}
	payload, ok := outcome.Payload.(domain.PlantHealthPayload)
	if !ok || payload.Result == nil || payload.Result.Classification == nil {
		return domain.Suggestion{}, false
	}
	if len(payload.Result.Classification.Suggestions) == 0 {
		return domain.Suggestion{}, false
	}
	return payload.Result.Classification.Suggestions[0], true
}

// collectLabels gathers vision labels, then chat-vision labels
func collectLabels(byProvider map[domain.ProviderName]domain.Outcome) []string {
	labels := []string{}
	for _, name := range []domain.ProviderName{domain.ProviderGoogleVision, domain.ProviderChatVision} {
		outcome, ok := byProvider[name]
		if !ok || !outcome.OK() {
			continue
		}
		switch p := outcome.Payload.(type) {
		case domain.VisionLabelsPayload:
			for _, l := range p {
				labels = append(labels, l.Description)
			}
		case domain.ChatVisionPayload:
			labels = append(labels, p.Labels...)
		}
	}
	return labels
}

func collectTags(byProvider map[domain.ProviderName]domain.Outcome) []string {
	tags := []string{}
	outcome, ok := byProvider[domain.ProviderAzureVision]
	if !ok || !outcome.OK() {
		return tags
	}
	if p, ok := outcome.Payload.(domain.TagsPayload); ok {
		for _, t := range p.Tags {
			tags = append(tags, t.Name)
		}
	}
	return tags
}

// AgriculturalKeywords returns the labels and tags that mention plant material,
// labels first.
func AgriculturalKeywords(labels, tags []string) []string {
	matches := []string{}
	for _, group := range [][]string{labels, tags} {
		for _, item := range group {
			if _, ok := utils.ContainsAnyFold(item, plantKeywords); ok {
				matches = append(matches, item)
			}
		}
	}
	return matches
}
