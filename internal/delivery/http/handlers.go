package http

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/domain"
	"github.com/plantdoc/backend/internal/metrics"
	"github.com/plantdoc/backend/internal/service"
)

// Client-facing error messages
const (
	msgNoImage        = "No image provided"
	msgInvalidType    = "Invalid file type. Please upload an image."
	msgTooLarge       = "File size too large. Please upload an image smaller than 10MB."
	msgAnalysisFailed = "Analysis failed. Please try again."
)

// Handler contains all HTTP handlers
type Handler struct {
	analysisSvc  *service.AnalysisService
	catalog      service.CatalogRepository
	maxImageSize int64
	logger       zerolog.Logger
}

// NewHandler creates a new handler
func NewHandler(analysisSvc *service.AnalysisService, catalog service.CatalogRepository, maxImageSize int64, logger zerolog.Logger) *Handler {
	if maxImageSize <= 0 {
		maxImageSize = domain.MaxImageSize
	}
	return &Handler{
		analysisSvc:  analysisSvc,
		catalog:      catalog,
		maxImageSize: maxImageSize,
		logger:       logger,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	catalogStatus := "ok"
	if err := h.catalog.Health(c.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("catalog health check failed")
		catalogStatus = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":    "ok",
		"service":   "plantdoc-backend",
		"version":   "1.0.0",
		"providers": h.analysisSvc.ActiveProviders(),
		"catalog": fiber.Map{
			"source": h.catalog.Source(),
			"status": catalogStatus,
		},
	})
}

// Analyze accepts a multipart upload and returns the diagnostic report
func (h *Handler) Analyze(c *fiber.Ctx) error {
	// a body this large cannot hold an acceptable image; reject before reading it
	if n := c.Request().Header.ContentLength(); n > 0 && int64(n) > h.maxImageSize+multipartOverhead {
		return h.reject(domain.ErrImageTooLarge)
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to parse multipart form")
		metrics.Analyses.WithLabelValues(metrics.ResultError).Inc()
		return fiber.NewError(fiber.StatusInternalServerError, msgAnalysisFailed)
	}

	files := form.File["image"]
	if len(files) == 0 || files[0].Size == 0 {
		return h.reject(domain.ErrNoImage)
	}
	fh := files[0]

	mimeType := fh.Header.Get(fiber.HeaderContentType)
	if err := domain.ValidateUpload(mimeType, fh.Size, h.maxImageSize); err != nil {
		return h.reject(err)
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to open uploaded image")
		metrics.Analyses.WithLabelValues(metrics.ResultError).Inc()
		return fiber.NewError(fiber.StatusInternalServerError, msgAnalysisFailed)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read uploaded image")
		metrics.Analyses.WithLabelValues(metrics.ResultError).Inc()
		return fiber.NewError(fiber.StatusInternalServerError, msgAnalysisFailed)
	}

	img := domain.ImageInput{
		Data:     data,
		MIMEType: mimeType,
		Size:     int64(len(data)),
		Filename: fh.Filename,
	}
	if err := img.Validate(h.maxImageSize); err != nil {
		return h.reject(err)
	}

	result, err := h.analysisSvc.Analyze(c.Context(), img, parseCoordinates(c.FormValue("latitude"), c.FormValue("longitude")))
	if err != nil {
		h.logger.Error().Err(err).Str("filename", img.Filename).Msg("analysis failed")
		metrics.Analyses.WithLabelValues(metrics.ResultError).Inc()
		return fiber.NewError(fiber.StatusInternalServerError, msgAnalysisFailed)
	}

	metrics.Analyses.WithLabelValues(metrics.ResultReport).Inc()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"analysis": result.Report,
			"rawData":  result.RawData,
		},
	})
}

func (h *Handler) reject(err error) error {
	metrics.Analyses.WithLabelValues(metrics.ResultRejected).Inc()

	switch {
	case errors.Is(err, domain.ErrNoImage):
		return fiber.NewError(fiber.StatusBadRequest, msgNoImage)
	case errors.Is(err, domain.ErrInvalidImageType):
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidType)
	case errors.Is(err, domain.ErrImageTooLarge):
		return fiber.NewError(fiber.StatusBadRequest, msgTooLarge)
	default:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
}

// parseCoordinates returns nil unless both values parse as floats
func parseCoordinates(lat, lon string) *domain.GeoCoordinates {
	if lat == "" || lon == "" {
		return nil
	}
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil
	}
	return &domain.GeoCoordinates{Latitude: latitude, Longitude: longitude}
}

// ErrorHandler renders every error as {"error": message}. Non-fiber errors
// never leak their text to the client. A body rejected by the server's size
// limit is reported like any other oversized image.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := msgAnalysisFailed

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	if code == fiber.StatusRequestEntityTooLarge {
		metrics.Analyses.WithLabelValues(metrics.ResultRejected).Inc()
		code = fiber.StatusBadRequest
		message = msgTooLarge
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
