package domain

import (
	"context"
	"time"
)

// ProviderName identifies an external analysis source. The values double as
// the keys of the rawData and aiServices response objects.
type ProviderName string

const (
	ProviderPlantID      ProviderName = "plantId"
	ProviderGoogleVision ProviderName = "googleVision"
	ProviderAzureVision  ProviderName = "azureVision"
	ProviderChatVision   ProviderName = "chatVision"
	ProviderWeather      ProviderName = "weather"
	ProviderSynthetic    ProviderName = "synthetic"
)

// ImageProviders lists the classifiers reported in aiServices, in report order.
var ImageProviders = []ProviderName{
	ProviderGoogleVision,
	ProviderPlantID,
	ProviderAzureVision,
	ProviderChatVision,
}

// Adapter wraps one external capability behind a uniform call.
// Implementations never return a nil Outcome payload on success and never
// panic or retry; every failure is reported through Outcome.Err.
type Adapter interface {
	Name() ProviderName
	Analyze(ctx context.Context, img ImageInput, geo *GeoCoordinates) Outcome
}

// Payload is the closed set of provider success shapes.
type Payload interface {
	payload()
}

// Outcome is the settled result of one adapter invocation
type Outcome struct {
	Provider ProviderName
	Payload  Payload
	Err      error
	Latency  time.Duration
}

// Succeeded builds a success outcome
func Succeeded(provider ProviderName, p Payload) Outcome {
	return Outcome{Provider: provider, Payload: p}
}

// Failed builds a failure outcome
func Failed(provider ProviderName, err error) Outcome {
	return Outcome{Provider: provider, Err: err}
}

// OK reports whether the adapter produced a usable payload.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Payload != nil
}

// PlantHealthPayload is the Plant.id identification + health response
type PlantHealthPayload struct {
	HealthAssessment *HealthAssessment     `json:"health_assessment,omitempty"`
	Result           *IdentificationResult `json:"result,omitempty"`
}

// HealthAssessment carries the disease probability reported by Plant.id
type HealthAssessment struct {
	Disease     string  `json:"disease,omitempty"`
	Probability float64 `json:"probability"`
}

// IdentificationResult wraps the species classification
type IdentificationResult struct {
	Classification *Classification `json:"classification,omitempty"`
}

// Classification holds ranked species suggestions, best first
type Classification struct {
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Suggestion is one ranked species guess
type Suggestion struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// VisionLabelsPayload is the Google Vision label list
type VisionLabelsPayload []VisionLabel

// VisionLabel is a single detected label
type VisionLabel struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// TagsPayload is the Azure Computer Vision analyze response
type TagsPayload struct {
	Tags        []Tag            `json:"tags"`
	Description *TagsDescription `json:"description,omitempty"`
}

// Tag is a single Azure tag
type Tag struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// TagsDescription is Azure's caption block
type TagsDescription struct {
	Tags     []string  `json:"tags,omitempty"`
	Captions []Caption `json:"captions,omitempty"`
}

// Caption is a generated image caption
type Caption struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ChatVisionPayload is the structured answer of a chat model with vision
type ChatVisionPayload struct {
	Model       string   `json:"model"`
	Disease     string   `json:"disease"`
	Probability float64  `json:"probability"`
	Labels      []string `json:"labels,omitempty"`
}

// SyntheticPayload marks the terminal "no evidence" option of the fallback chain
type SyntheticPayload struct {
	Note string `json:"note"`
}

func (PlantHealthPayload) payload()  {}
func (VisionLabelsPayload) payload() {}
func (TagsPayload) payload()         {}
func (ChatVisionPayload) payload()   {}
func (WeatherSnapshot) payload()     {}
func (SyntheticPayload) payload()    {}
