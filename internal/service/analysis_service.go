package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/plantdoc/backend/internal/domain"
	"github.com/plantdoc/backend/internal/metrics"
)

// Result is the outcome of one analysis request
type Result struct {
	Report  domain.DiagnosticReport
	RawData map[domain.ProviderName]any
}

// AnalysisService runs every configured adapter for an image and turns the
// settled outcomes into a report
type AnalysisService struct {
	adapters    []Adapter
	weather     Adapter
	merger      *Merger
	synthesizer *Synthesizer
	logger      zerolog.Logger
}

// NewAnalysisService creates a new analysis service. weather may be nil.
func NewAnalysisService(
	adapters []Adapter,
	weather Adapter,
	merger *Merger,
	synthesizer *Synthesizer,
	logger zerolog.Logger,
) *AnalysisService {
	return &AnalysisService{
		adapters:    adapters,
		weather:     weather,
		merger:      merger,
		synthesizer: synthesizer,
		logger:      logger.With().Str("component", "analysis").Logger(),
	}
}

// Analyze fans the image out to all adapters, waits for every one of them and
// builds the report. Provider failures are absorbed; the only error is a
// cancelled ctx.
func (s *AnalysisService) Analyze(ctx context.Context, img domain.ImageInput, geo *domain.GeoCoordinates) (Result, error) {
	outcomes, snapshot := s.collect(ctx, img, geo)
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("analysis: request cancelled: %w", err)
	}

	finding := s.merger.Merge(outcomes)
	report := s.synthesizer.Synthesize(finding, snapshot, img, serviceFlags(outcomes))
	metrics.ReportSeverity.WithLabelValues(string(report.Severity)).Inc()

	s.logger.Info().
		Str("analysis_id", report.AnalysisID).
		Str("disease", report.Disease).
		Int("confidence", report.Confidence).
		Str("severity", string(report.Severity)).
		Str("source", string(finding.Source)).
		Msg("analysis complete")

	return Result{
		Report:  report,
		RawData: rawData(outcomes, snapshot),
	}, nil
}

// ActiveProviders lists the configured external providers
func (s *AnalysisService) ActiveProviders() []domain.ProviderName {
	names := make([]domain.ProviderName, 0, len(s.adapters)+1)
	for _, a := range s.adapters {
		if a.Name() != domain.ProviderSynthetic {
			names = append(names, a.Name())
		}
	}
	if s.weather != nil {
		names = append(names, s.weather.Name())
	}
	return names
}

// collect runs all adapters concurrently. Each task owns one slot of the
// outcome slice, so no locking is needed.
func (s *AnalysisService) collect(ctx context.Context, img domain.ImageInput, geo *domain.GeoCoordinates) ([]domain.Outcome, *domain.WeatherSnapshot) {
	var (
		g        errgroup.Group
		outcomes = make([]domain.Outcome, len(s.adapters))
		weather  domain.Outcome
	)

	for i, a := range s.adapters {
		g.Go(func() error {
			outcomes[i] = s.invoke(ctx, a, img, geo)
			return nil
		})
	}

	runWeather := geo != nil && s.weather != nil
	if runWeather {
		g.Go(func() error {
			weather = s.invoke(ctx, s.weather, img, geo)
			return nil
		})
	}

	// tasks never return an error
	_ = g.Wait()

	if !runWeather || !weather.OK() {
		return outcomes, nil
	}
	snapshot, ok := weather.Payload.(domain.WeatherSnapshot)
	if !ok {
		return outcomes, nil
	}
	return outcomes, &snapshot
}

// invoke calls one adapter, converting a panic into a failure outcome
func (s *AnalysisService) invoke(ctx context.Context, a Adapter, img domain.ImageInput, geo *domain.GeoCoordinates) (out domain.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("provider", string(a.Name())).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("adapter panicked")
			out = domain.Failed(a.Name(), fmt.Errorf("%s: adapter panicked: %v", a.Name(), r))
		}

		out.Provider = a.Name()
		out.Latency = time.Since(start)

		label := metrics.OutcomeSuccess
		if !out.OK() {
			label = metrics.OutcomeFailure
		}
		metrics.ProviderCalls.WithLabelValues(string(out.Provider), label).Inc()
		metrics.ProviderLatency.WithLabelValues(string(out.Provider)).Observe(out.Latency.Seconds())

		s.logger.Debug().
			Str("provider", string(out.Provider)).
			Dur("latency", out.Latency).
			Bool("ok", out.OK()).
			Msg("adapter settled")
	}()

	return a.Analyze(ctx, img, geo)
}

// serviceFlags reports, for every image provider, whether its adapter
// succeeded. Unconfigured providers are false.
func serviceFlags(outcomes []domain.Outcome) map[domain.ProviderName]bool {
	flags := make(map[domain.ProviderName]bool, len(domain.ImageProviders))
	for _, name := range domain.ImageProviders {
		flags[name] = false
	}
	for _, o := range outcomes {
		if _, tracked := flags[o.Provider]; tracked && o.OK() {
			flags[o.Provider] = true
		}
	}
	return flags
}

// rawData echoes each provider payload; failed or absent providers are nil
func rawData(outcomes []domain.Outcome, snapshot *domain.WeatherSnapshot) map[domain.ProviderName]any {
	raw := make(map[domain.ProviderName]any, len(domain.ImageProviders)+1)
	for _, name := range domain.ImageProviders {
		raw[name] = nil
	}
	for _, o := range outcomes {
		if _, tracked := raw[o.Provider]; tracked && o.OK() && raw[o.Provider] == nil {
			raw[o.Provider] = o.Payload
		}
	}
	raw[domain.ProviderWeather] = nil
	if snapshot != nil {
		raw[domain.ProviderWeather] = *snapshot
	}
	return raw
}
