package provider

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/config"
	"github.com/plantdoc/backend/internal/domain"
)

// Registry is the set of adapters active for this process. An adapter is
// included only when its credentials are configured; Synthetic is always
// present and always last.
type Registry struct {
	Image     []domain.Adapter
	Weather   domain.Adapter
	Synthetic *Synthetic
}

// NewRegistry builds the adapters selected by cfg. rdb may be nil.
func NewRegistry(cfg *config.Config, rdb *redis.Client, logger zerolog.Logger) *Registry {
	reg := &Registry{Synthetic: NewSynthetic(cfg.SyntheticSeed)}

	if cfg.PlantID.Enabled() {
		reg.Image = append(reg.Image, NewPlantID(cfg.PlantID.APIKey, cfg.PlantID.URL, cfg.ProviderTimeout, logger))
	}
	if cfg.GoogleVision.Enabled() {
		reg.Image = append(reg.Image, NewGoogleVision(cfg.GoogleVision.APIKey, cfg.GoogleVision.URL, cfg.ProviderTimeout, logger))
	}
	if cfg.AzureVision.Enabled() {
		reg.Image = append(reg.Image, NewAzureVision(cfg.AzureVision.Endpoint, cfg.AzureVision.Key, cfg.ProviderTimeout, logger))
	}
	if cfg.ChatVision.Enabled() {
		reg.Image = append(reg.Image, NewChatVision(cfg.ChatVision.APIKey, cfg.ChatVision.BaseURL, cfg.ChatVision.Model, cfg.ProviderTimeout, logger))
	}
	reg.Image = append(reg.Image, reg.Synthetic)

	if cfg.OpenWeather.Enabled() {
		var weather domain.Adapter = NewWeather(cfg.OpenWeather.APIKey, cfg.OpenWeather.URL, cfg.ProviderTimeout, logger)
		if rdb != nil {
			weather = NewCachedWeather(weather, rdb, cfg.WeatherCacheTTL, logger)
		}
		reg.Weather = weather
	}

	return reg
}
