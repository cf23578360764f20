// Package provider holds one adapter per external analysis capability.
// Adapters turn every transport error, non-2xx status and malformed payload
// into a failed domain.Outcome; none of them retries.
package provider

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/domain"
)

// ErrMalformedPayload marks a 2xx response whose body cannot be used
var ErrMalformedPayload = errors.New("malformed payload")

// StatusError is returned for non-2xx vendor responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// doJSON executes req and decodes a 2xx JSON body into out
func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

func encodeImage(img domain.ImageInput) string {
	return base64.StdEncoding.EncodeToString(img.Data)
}

// fail logs the reason and wraps it into a failure outcome
func fail(logger zerolog.Logger, name domain.ProviderName, err error) domain.Outcome {
	logger.Warn().Err(err).Str("provider", string(name)).Msg("provider call failed")
	return domain.Failed(name, fmt.Errorf("%s: %w", name, err))
}

func validProbability(p float64) bool {
	return p >= 0 && p <= 1
}
