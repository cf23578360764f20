package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/domain"
)

const azureAnalyzePath = "/vision/v3.2/analyze?visualFeatures=Tags,Description&language=en"

// AzureVision tags images with Azure Computer Vision
type AzureVision struct {
	endpoint   string
	key        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewAzureVision creates an Azure Computer Vision adapter
func NewAzureVision(endpoint, key string, timeout time.Duration, logger zerolog.Logger) *AzureVision {
	return &AzureVision{
		endpoint:   endpoint,
		key:        key,
		httpClient: newHTTPClient(timeout),
		logger:     logger.With().Str("provider", string(domain.ProviderAzureVision)).Logger(),
	}
}

// Name returns the provider identifier
func (a *AzureVision) Name() domain.ProviderName {
	return domain.ProviderAzureVision
}

// Analyze sends the raw image bytes and returns the tag set
func (a *AzureVision) Analyze(ctx context.Context, img domain.ImageInput, _ *domain.GeoCoordinates) domain.Outcome {
	if a.endpoint == "" || a.key == "" {
		return fail(a.logger, a.Name(), fmt.Errorf("credentials not configured"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+azureAnalyzePath, bytes.NewReader(img.Data))
	if err != nil {
		return fail(a.logger, a.Name(), fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", a.key)

	var payload domain.TagsPayload
	if err := doJSON(a.httpClient, req, &payload); err != nil {
		return fail(a.logger, a.Name(), err)
	}

	return domain.Succeeded(a.Name(), payload)
}
