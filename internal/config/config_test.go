package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plantdoc/backend/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GO_ENV", "PROVIDER_TIMEOUT", "MAX_IMAGE_SIZE", "KEYWORD_INFERENCE",
		"PLANT_ID_API_KEY", "GOOGLE_VISION_API_KEY", "AZURE_VISION_ENDPOINT", "AZURE_VISION_KEY",
		"OPENAI_API_KEY", "OPENWEATHER_API_KEY", "WEATHER_CACHE_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 10*time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, domain.MaxImageSize, cfg.MaxImageSize)
	assert.False(t, cfg.KeywordInference)
	assert.False(t, cfg.PlantID.Enabled())
	assert.False(t, cfg.GoogleVision.Enabled())
	assert.False(t, cfg.AzureVision.Enabled())
	assert.False(t, cfg.ChatVision.Enabled())
	assert.False(t, cfg.OpenWeather.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("MAX_IMAGE_SIZE", "1024")
	t.Setenv("KEYWORD_INFERENCE", "true")
	t.Setenv("PLANT_ID_API_KEY", "plant-key")
	t.Setenv("AZURE_VISION_ENDPOINT", "https://azure.example.com/")
	t.Setenv("AZURE_VISION_KEY", "azure-key")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, int64(1024), cfg.MaxImageSize)
	assert.True(t, cfg.KeywordInference)
	assert.True(t, cfg.PlantID.Enabled())
	assert.True(t, cfg.AzureVision.Enabled())
	assert.Equal(t, "https://azure.example.com", cfg.AzureVision.Endpoint)
}

func TestAzureNeedsBothValues(t *testing.T) {
	assert.False(t, AzureVisionConfig{Endpoint: "https://x"}.Enabled())
	assert.False(t, AzureVisionConfig{Key: "k"}.Enabled())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	t.Setenv("MAX_IMAGE_SIZE", "-3")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, domain.MaxImageSize, cfg.MaxImageSize)
}
