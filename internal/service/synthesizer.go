package service

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	"github.com/plantdoc/backend/internal/domain"
	"github.com/plantdoc/backend/pkg/utils"
)

// Synthesizer expands a finding into the full diagnostic report
type Synthesizer struct {
	profiles []domain.ConditionProfile
	filler   Filler
	now      func() time.Time
}

// NewSynthesizer creates a synthesizer over profiles in match order
func NewSynthesizer(profiles []domain.ConditionProfile, filler Filler) *Synthesizer {
	return &Synthesizer{
		profiles: profiles,
		filler:   filler,
		now:      time.Now,
	}
}

// Synthesize builds the report. weather may be nil; services holds the
// success flag of every image provider.
func (s *Synthesizer) Synthesize(
	finding domain.NormalizedFinding,
	weather *domain.WeatherSnapshot,
	img domain.ImageInput,
	services map[domain.ProviderName]bool,
) domain.DiagnosticReport {
	now := s.now().UTC()
	symptoms, treatments, prevention := s.careAdvice(finding.Condition)
	keywords := AgriculturalKeywords(finding.Labels, finding.Tags)

	return domain.DiagnosticReport{
		Disease:                finding.DiseaseName,
		Confidence:             int(math.Round(finding.Confidence)),
		Severity:               finding.Severity,
		Symptoms:               symptoms,
		Treatments:             treatments,
		Prevention:             prevention,
		ImageLabels:            finding.Labels,
		ImageTags:              finding.Tags,
		AgriculturalKeywords:   keywords,
		TechnicalMetrics:       s.technicalMetrics(finding, len(keywords)),
		PathogenIdentification: s.pathogen(finding.DiseaseName),
		EnvironmentalAnalysis:  environmentalAnalysis(weather),
		TreatmentEfficacy:      treatmentEfficacy(finding.DiseaseName),
		Epidemiology:           epidemiology(finding.DiseaseName),
		EconomicImpact:         EconomicImpactFor(finding.Severity),
		WeatherAnalysis:        weatherAnalysis(weather),
		Timestamp:              now.Format("2006-01-02T15:04:05.000Z07:00"),
		Filename:               img.Filename,
		AnalysisID:             analysisID(now),
		ProcessingTime:         fmt.Sprintf("%.1f", s.filler.Float64Range(1.5, 3.5)),
		ImageMetadata:          s.imageMetadata(img),
		AIServices:             services,
	}
}

// careAdvice looks up lists by the reported condition. A finding without a
// condition was never assessed and gets the shorter advice.
func (s *Synthesizer) careAdvice(condition string) (symptoms, treatments, prevention []string) {
	if condition == "" {
		return unassessedSymptoms, unassessedTreatments, unassessedPrevention
	}
	if p, ok := s.match(condition, false); ok {
		return p.Symptoms, p.Treatments, p.Prevention
	}
	return genericSymptoms, genericTreatments, genericPrevention
}

func (s *Synthesizer) pathogen(disease string) domain.PathogenInfo {
	if p, ok := s.match(disease, true); ok {
		return *p.Pathogen
	}
	return unknownPathogen
}

// match returns the first profile whose key occurs in name
func (s *Synthesizer) match(name string, needPathogen bool) (domain.ConditionProfile, bool) {
	lower := strings.ToLower(name)
	for _, p := range s.profiles {
		if needPathogen && p.Pathogen == nil {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p.Key)) {
			return p, true
		}
	}
	return domain.ConditionProfile{}, false
}

func treatmentEfficacy(disease string) domain.TreatmentEfficacy {
	lower := strings.ToLower(disease)
	for _, r := range efficacyRules {
		if strings.Contains(lower, r.key) {
			return r.efficacy
		}
	}
	return defaultEfficacy
}

func epidemiology(disease string) domain.Epidemiology {
	lower := strings.ToLower(disease)
	for _, r := range epidemiologyRules {
		if strings.Contains(lower, r.key) {
			return r.epidemiology
		}
	}
	return defaultEpidemiology
}

// EconomicImpactFor derives loss and return on treatment from severity
func EconomicImpactFor(severity domain.Severity) domain.EconomicImpact {
	e, ok := economicsBySeverity[severity]
	if !ok {
		e = economicsBySeverity[domain.SeverityLow]
	}
	net := e.potentialLoss - e.treatmentCost

	riskLevel := "Medium"
	if severity == domain.SeverityHigh {
		riskLevel = "High"
	}

	return domain.EconomicImpact{
		PotentialLoss: e.potentialLoss,
		TreatmentCost: e.treatmentCost,
		NetSavings:    net,
		ROI:           float64(net) / float64(e.treatmentCost) * 100,
		Insurance: domain.Insurance{
			CropInsuranceCoverage: "Available",
			RiskLevel:             riskLevel,
			PreventionCredit:      "Eligible",
		},
	}
}

func environmentalAnalysis(w *domain.WeatherSnapshot) domain.EnvironmentalAnalysis {
	if w == nil {
		return domain.EnvironmentalAnalysis{
			TemperatureFavorability: "Unknown",
			HumidityImpact:          "Unknown",
			SoilPHCompatibility:     "Unknown",
			AirCirculation:          "Unknown",
		}
	}

	a := domain.EnvironmentalAnalysis{
		TemperatureFavorability: "Moderate",
		HumidityImpact:          "Moderate",
		SoilPHCompatibility:     "Neutral",
		AirCirculation:          "Poor",
	}
	if w.Temperature > 25 {
		a.TemperatureFavorability = "High"
	}
	if w.Humidity > 70 {
		a.HumidityImpact = "High"
	}
	if w.WindSpeed > 10 {
		a.AirCirculation = "Good"
	}
	return a
}

func weatherAnalysis(w *domain.WeatherSnapshot) domain.WeatherAnalysis {
	forecast := make([]domain.ForecastDay, len(weekdays))

	if w == nil {
		for i, day := range weekdays {
			forecast[i] = domain.ForecastDay{Day: day, Temp: float64(22 + i), Humidity: float64(70 + i*2)}
		}
		return domain.WeatherAnalysis{
			CurrentConditions:   placeholderConditions,
			DiseaseFavorability: 60,
			Forecast:            forecast,
		}
	}

	favorability := 60
	if w.Humidity > 70 && w.Temperature > 20 {
		favorability = 85
	}
	for i, day := range weekdays {
		offset := float64(i - 3)
		forecast[i] = domain.ForecastDay{Day: day, Temp: w.Temperature + offset, Humidity: w.Humidity + offset*2}
	}

	return domain.WeatherAnalysis{
		CurrentConditions: domain.CurrentConditions{
			Temperature: w.Temperature,
			Humidity:    w.Humidity,
			WindSpeed:   w.WindSpeed,
		},
		DiseaseFavorability: favorability,
		Forecast:            forecast,
	}
}

// ImageQualityScore starts at 70 and adds 5 per plant keyword hit, capped at 100
func ImageQualityScore(keywordMatches int) int {
	return int(utils.Clamp(float64(70+keywordMatches*5), 0, 100))
}

func (s *Synthesizer) technicalMetrics(f domain.NormalizedFinding, keywordMatches int) domain.TechnicalMetrics {
	return domain.TechnicalMetrics{
		ImageQualityScore:    ImageQualityScore(keywordMatches),
		ProcessingSpeed:      utils.RoundTo(s.filler.Float64Range(1.5, 3.5), 2),
		ModelConfidence:      f.Confidence,
		DataPointsAnalyzed:   s.filler.IntRange(1000, 3000),
		SimilarCasesFound:    s.filler.IntRange(500, 1500),
		TreatmentSuccessRate: s.filler.IntRange(70, 100),
	}
}

func (s *Synthesizer) imageMetadata(img domain.ImageInput) domain.ImageMetadata {
	dimensions := ""
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data)); err == nil {
		dimensions = fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
	} else {
		dimensions = fmt.Sprintf("%dx%d", s.filler.IntRange(800, 1800), s.filler.IntRange(600, 1600))
	}

	size := img.Size
	if size == 0 {
		size = int64(len(img.Data))
	}

	return domain.ImageMetadata{
		Size:        size,
		Dimensions:  dimensions,
		Format:      imageFormat(img.Filename),
		Compression: s.filler.IntRange(70, 100),
	}
}

// imageFormat upper-cases the text after the last dot of the filename, or
// the whole name when it has no dot.
func imageFormat(filename string) string {
	ext := filename
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i+1:]
	}
	if ext == "" {
		return "JPEG"
	}
	return strings.ToUpper(ext)
}

func analysisID(now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("ANALYSIS_%d_%s", now.UnixMilli(), token[:9])
}
