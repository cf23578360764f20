package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/domain"
)

// PlantID queries Plant.id for species identification and a health assessment
type PlantID struct {
	apiKey     string
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewPlantID creates a Plant.id adapter
func NewPlantID(apiKey, url string, timeout time.Duration, logger zerolog.Logger) *PlantID {
	return &PlantID{
		apiKey:     apiKey,
		url:        url,
		httpClient: newHTTPClient(timeout),
		logger:     logger.With().Str("provider", string(domain.ProviderPlantID)).Logger(),
	}
}

type plantIDRequest struct {
	Images       []string `json:"images"`
	Modifiers    []string `json:"modifiers"`
	PlantDetails []string `json:"plant_details"`
}

// Name returns the provider identifier
func (p *PlantID) Name() domain.ProviderName {
	return domain.ProviderPlantID
}

// Analyze submits the image for identification and health assessment
func (p *PlantID) Analyze(ctx context.Context, img domain.ImageInput, _ *domain.GeoCoordinates) domain.Outcome {
	body, err := sonic.Marshal(plantIDRequest{
		Images:       []string{encodeImage(img)},
		Modifiers:    []string{"health_all", "disease_similar_images"},
		PlantDetails: []string{"common_names", "url", "wiki_description", "taxonomy"},
	})
	if err != nil {
		return fail(p.logger, p.Name(), fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fail(p.logger, p.Name(), fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", p.apiKey)

	var payload domain.PlantHealthPayload
	if err := doJSON(p.httpClient, req, &payload); err != nil {
		return fail(p.logger, p.Name(), err)
	}

	if h := payload.HealthAssessment; h != nil && !validProbability(h.Probability) {
		return fail(p.logger, p.Name(), fmt.Errorf("%w: health probability %v", ErrMalformedPayload, h.Probability))
	}

	return domain.Succeeded(p.Name(), payload)
}
