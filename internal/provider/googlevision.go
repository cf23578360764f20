package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/domain"
)

const googleVisionMaxLabels = 20

// GoogleVision runs label detection through the Cloud Vision REST API
type GoogleVision struct {
	apiKey     string
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewGoogleVision creates a Google Vision adapter
func NewGoogleVision(apiKey, endpoint string, timeout time.Duration, logger zerolog.Logger) *GoogleVision {
	return &GoogleVision{
		apiKey:     apiKey,
		url:        endpoint,
		httpClient: newHTTPClient(timeout),
		logger:     logger.With().Str("provider", string(domain.ProviderGoogleVision)).Logger(),
	}
}

type annotateRequest struct {
	Requests []annotateImageRequest `json:"requests"`
}

type annotateImageRequest struct {
	Image struct {
		Content string `json:"content"`
	} `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type annotateResponse struct {
	Responses []struct {
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// Name returns the provider identifier
func (g *GoogleVision) Name() domain.ProviderName {
	return domain.ProviderGoogleVision
}

// Analyze returns the detected labels
func (g *GoogleVision) Analyze(ctx context.Context, img domain.ImageInput, _ *domain.GeoCoordinates) domain.Outcome {
	item := annotateImageRequest{
		Features: []annotateFeature{{Type: "LABEL_DETECTION", MaxResults: googleVisionMaxLabels}},
	}
	item.Image.Content = encodeImage(img)

	body, err := sonic.Marshal(annotateRequest{Requests: []annotateImageRequest{item}})
	if err != nil {
		return fail(g.logger, g.Name(), fmt.Errorf("marshal request: %w", err))
	}

	endpoint := fmt.Sprintf("%s?key=%s", g.url, url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fail(g.logger, g.Name(), fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	var resp annotateResponse
	if err := doJSON(g.httpClient, req, &resp); err != nil {
		return fail(g.logger, g.Name(), err)
	}
	if len(resp.Responses) == 0 {
		return fail(g.logger, g.Name(), fmt.Errorf("%w: empty responses", ErrMalformedPayload))
	}

	first := resp.Responses[0]
	if first.Error != nil {
		return fail(g.logger, g.Name(), fmt.Errorf("annotate error %d: %s", first.Error.Code, first.Error.Message))
	}

	labels := make(domain.VisionLabelsPayload, 0, len(first.LabelAnnotations))
	for _, l := range first.LabelAnnotations {
		labels = append(labels, domain.VisionLabel{Description: l.Description, Confidence: l.Score})
	}

	return domain.Succeeded(g.Name(), labels)
}
