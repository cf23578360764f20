package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/domain"
)

// ErrNoCoordinates is returned when weather is requested without a location
var ErrNoCoordinates = errors.New("coordinates required")

// Weather fetches current conditions from OpenWeatherMap
type Weather struct {
	apiKey     string
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewWeather creates a new weather adapter
func NewWeather(apiKey, endpoint string, timeout time.Duration, logger zerolog.Logger) *Weather {
	return &Weather{
		apiKey:     apiKey,
		url:        endpoint,
		httpClient: newHTTPClient(timeout),
		logger:     logger.With().Str("provider", string(domain.ProviderWeather)).Logger(),
	}
}

// OpenWeatherResponse represents the OpenWeatherMap API response
type OpenWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Name returns the provider identifier
func (w *Weather) Name() domain.ProviderName {
	return domain.ProviderWeather
}

// Analyze fetches current weather at geo; the image is ignored
func (w *Weather) Analyze(ctx context.Context, _ domain.ImageInput, geo *domain.GeoCoordinates) domain.Outcome {
	if geo == nil {
		return fail(w.logger, w.Name(), ErrNoCoordinates)
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", geo.Latitude))
	q.Set("lon", fmt.Sprintf("%f", geo.Longitude))
	q.Set("appid", w.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url+"?"+q.Encode(), nil)
	if err != nil {
		return fail(w.logger, w.Name(), fmt.Errorf("create request: %w", err))
	}

	var owResp OpenWeatherResponse
	if err := doJSON(w.httpClient, req, &owResp); err != nil {
		return fail(w.logger, w.Name(), err)
	}
	if len(owResp.Weather) == 0 {
		return fail(w.logger, w.Name(), fmt.Errorf("%w: no weather conditions", ErrMalformedPayload))
	}

	return domain.Succeeded(w.Name(), domain.WeatherSnapshot{
		Temperature: owResp.Main.Temp,
		Humidity:    owResp.Main.Humidity,
		Description: owResp.Weather[0].Description,
		WindSpeed:   owResp.Wind.Speed,
	})
}
