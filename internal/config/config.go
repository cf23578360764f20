package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/plantdoc/backend/internal/domain"
)

// Config is built once at startup and passed to every component.
// Nothing below cmd/ reads the environment.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL     string
	RedisURL        string
	WeatherCacheTTL time.Duration

	ProviderTimeout  time.Duration
	MaxImageSize     int64
	KeywordInference bool
	SyntheticSeed    uint64

	PlantID      PlantIDConfig
	GoogleVision GoogleVisionConfig
	AzureVision  AzureVisionConfig
	ChatVision   ChatVisionConfig
	OpenWeather  OpenWeatherConfig
}

// PlantIDConfig holds the Plant.id health assessment credentials
type PlantIDConfig struct {
	APIKey string
	URL    string
}

// GoogleVisionConfig holds the Cloud Vision label detection credentials
type GoogleVisionConfig struct {
	APIKey string
	URL    string
}

// AzureVisionConfig holds the Azure Computer Vision resource endpoint and key
type AzureVisionConfig struct {
	Endpoint string
	Key      string
}

// ChatVisionConfig selects the OpenAI-compatible multimodal chat model
type ChatVisionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenWeatherConfig holds the OpenWeatherMap current weather credentials
type OpenWeatherConfig struct {
	APIKey string
	URL    string
}

// Enabled reports whether credentials are present
func (c PlantIDConfig) Enabled() bool { return c.APIKey != "" }

// Enabled reports whether credentials are present
func (c GoogleVisionConfig) Enabled() bool { return c.APIKey != "" }

// Enabled reports whether both endpoint and key are present
func (c AzureVisionConfig) Enabled() bool { return c.Endpoint != "" && c.Key != "" }

// Enabled reports whether credentials are present
func (c ChatVisionConfig) Enabled() bool { return c.APIKey != "" }

// Enabled reports whether credentials are present
func (c OpenWeatherConfig) Enabled() bool { return c.APIKey != "" }

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads the configuration from the process environment
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("GO_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		WeatherCacheTTL: getDuration("WEATHER_CACHE_TTL", 10*time.Minute),

		ProviderTimeout:  getDuration("PROVIDER_TIMEOUT", 30*time.Second),
		MaxImageSize:     getInt64("MAX_IMAGE_SIZE", domain.MaxImageSize),
		KeywordInference: getBool("KEYWORD_INFERENCE", false),
		SyntheticSeed:    uint64(getInt64("SYNTHETIC_SEED", 0)),

		PlantID: PlantIDConfig{
			APIKey: getEnv("PLANT_ID_API_KEY", ""),
			URL:    getEnv("PLANT_ID_URL", "https://api.plant.id/v2/identify"),
		},
		GoogleVision: GoogleVisionConfig{
			APIKey: getEnv("GOOGLE_VISION_API_KEY", ""),
			URL:    getEnv("GOOGLE_VISION_URL", "https://vision.googleapis.com/v1/images:annotate"),
		},
		AzureVision: AzureVisionConfig{
			Endpoint: strings.TrimRight(getEnv("AZURE_VISION_ENDPOINT", ""), "/"),
			Key:      getEnv("AZURE_VISION_KEY", ""),
		},
		ChatVision: ChatVisionConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("OPENAI_VISION_MODEL", "gpt-4o-mini"),
		},
		OpenWeather: OpenWeatherConfig{
			APIKey: getEnv("OPENWEATHER_API_KEY", ""),
			URL:    getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5/weather"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if n, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}
