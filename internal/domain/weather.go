package domain

// WeatherSnapshot is the current weather at the plant's location
type WeatherSnapshot struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"windSpeed"`
}

// EnvironmentalAnalysis rates how the current weather favours disease
type EnvironmentalAnalysis struct {
	TemperatureFavorability string `json:"temperatureFavorability"`
	HumidityImpact          string `json:"humidityImpact"`
	SoilPHCompatibility     string `json:"soilPHCompatibility"`
	AirCirculation          string `json:"airCirculation"`
}

// CurrentConditions is the weather block of the report
type CurrentConditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   float64 `json:"windSpeed"`
}

// ForecastDay is one entry of the 7-day outlook
type ForecastDay struct {
	Day      string  `json:"day"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

// WeatherAnalysis combines conditions, favourability and outlook
type WeatherAnalysis struct {
	CurrentConditions   CurrentConditions `json:"currentConditions"`
	DiseaseFavorability int               `json:"diseaseFavorability"`
	Forecast            []ForecastDay     `json:"forecast"`
}
