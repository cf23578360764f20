package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantdoc/backend/internal/domain"
)

var testImage = domain.ImageInput{
	Data:     []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
	MIMEType: "image/jpeg",
	Size:     6,
	Filename: "leaf.jpg",
}

func TestPlantIDSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("Api-Key"))

		var body plantIDRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.Images, 1)
		assert.Contains(t, body.Modifiers, "health_all")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"health_assessment": {"disease": "Leaf Blight", "probability": 0.85},
			"result": {"classification": {"suggestions": [{"name": "Solanum lycopersicum", "probability": 0.92}]}}
		}`)
	}))
	defer server.Close()

	adapter := NewPlantID("secret", server.URL, time.Second, zerolog.Nop())
	outcome := adapter.Analyze(context.Background(), testImage, nil)

	require.True(t, outcome.OK(), "unexpected error: %v", outcome.Err)
	payload, ok := outcome.Payload.(domain.PlantHealthPayload)
	require.True(t, ok)
	require.NotNil(t, payload.HealthAssessment)
	assert.Equal(t, "Leaf Blight", payload.HealthAssessment.Disease)
	assert.Equal(t, 0.85, payload.HealthAssessment.Probability)
	require.NotNil(t, payload.Result)
	assert.Equal(t, "Solanum lycopersicum", payload.Result.Classification.Suggestions[0].Name)
}

func TestPlantIDFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "malformed json", status: http.StatusOK, body: `{"health_assessment":`, wantErr: ErrMalformedPayload},
		{name: "probability out of range", status: http.StatusOK, body: `{"health_assessment":{"probability":3}}`, wantErr: ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			outcome := NewPlantID("k", server.URL, time.Second, zerolog.Nop()).Analyze(context.Background(), testImage, nil)

			assert.False(t, outcome.OK())
			assert.Equal(t, domain.ProviderPlantID, outcome.Provider)
			require.Error(t, outcome.Err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, outcome.Err, tt.wantErr)
			}
		})
	}
}

func TestPlantIDStatusErrorCarriesCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	outcome := NewPlantID("bad", server.URL, time.Second, zerolog.Nop()).Analyze(context.Background(), testImage, nil)

	var statusErr *StatusError
	require.ErrorAs(t, outcome.Err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
}

func TestAdapterHonoursCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	outcome := NewPlantID("k", server.URL, 5*time.Second, zerolog.Nop()).Analyze(ctx, testImage, nil)

	assert.False(t, outcome.OK())
	assert.Less(t, time.Since(start), time.Second)
}

func TestGoogleVisionLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gkey", r.URL.Query().Get("key"))
		io.WriteString(w, `{"responses":[{"labelAnnotations":[
			{"description":"Leaf","score":0.97},
			{"description":"Plant pathology","score":0.81}
		]}]}`)
	}))
	defer server.Close()

	outcome := NewGoogleVision("gkey", server.URL, time.Second, zerolog.Nop()).Analyze(context.Background(), testImage, nil)

	require.True(t, outcome.OK(), "unexpected error: %v", outcome.Err)
	labels, ok := outcome.Payload.(domain.VisionLabelsPayload)
	require.True(t, ok)
	assert.Equal(t, domain.VisionLabelsPayload{
		{Description: "Leaf", Confidence: 0.97},
		{Description: "Plant pathology", Confidence: 0.81},
	}, labels)
}

func TestGoogleVisionEmbeddedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"responses":[{"error":{"code":7,"message":"permission denied"}}]}`)
	}))
	defer server.Close()

	outcome := NewGoogleVision("gkey", server.URL, time.Second, zerolog.Nop()).Analyze(context.Background(), testImage, nil)

	require.Error(t, outcome.Err)
	assert.Contains(t, outcome.Err.Error(), "permission denied")
}

func TestAzureVisionTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vision/v3.2/analyze", r.URL.Path)
		assert.Equal(t, "Tags,Description", r.URL.Query().Get("visualFeatures"))
		assert.Equal(t, "akey", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, testImage.Data, body)

		io.WriteString(w, `{"tags":[{"name":"plant","confidence":0.99},{"name":"green","confidence":0.9}],
			"description":{"captions":[{"text":"a close up of a leaf","confidence":0.6}]}}`)
	}))
	defer server.Close()

	outcome := NewAzureVision(server.URL, "akey", time.Second, zerolog.Nop()).Analyze(context.Background(), testImage, nil)

	require.True(t, outcome.OK(), "unexpected error: %v", outcome.Err)
	payload := outcome.Payload.(domain.TagsPayload)
	require.Len(t, payload.Tags, 2)
	assert.Equal(t, "plant", payload.Tags[0].Name)
	require.NotNil(t, payload.Description)
	assert.Equal(t, "a close up of a leaf", payload.Description.Captions[0].Text)
}

func TestAzureVisionWithoutCredentials(t *testing.T) {
	outcome := NewAzureVision("", "", time.Second, zerolog.Nop()).Analyze(context.Background(), testImage, nil)
	assert.False(t, outcome.OK())
	assert.Contains(t, outcome.Err.Error(), "credentials not configured")
}

func TestWeatherSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "wkey", q.Get("appid"))
		assert.Equal(t, "43.238900", q.Get("lat"))
		io.WriteString(w, `{"main":{"temp":27.5,"humidity":82},"weather":[{"description":"light rain"}],"wind":{"speed":3.1}}`)
	}))
	defer server.Close()

	geo := &domain.GeoCoordinates{Latitude: 43.2389, Longitude: 76.8897}
	outcome := NewWeather("wkey", server.URL, time.Second, zerolog.Nop()).Analyze(context.Background(), domain.ImageInput{}, geo)

	require.True(t, outcome.OK(), "unexpected error: %v", outcome.Err)
	assert.Equal(t, domain.WeatherSnapshot{
		Temperature: 27.5,
		Humidity:    82,
		Description: "light rain",
		WindSpeed:   3.1,
	}, outcome.Payload)
}

func TestWeatherFailures(t *testing.T) {
	adapter := NewWeather("wkey", "http://127.0.0.1:0", time.Second, zerolog.Nop())
	outcome := adapter.Analyze(context.Background(), domain.ImageInput{}, nil)
	assert.ErrorIs(t, outcome.Err, ErrNoCoordinates)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"main":{"temp":20,"humidity":50},"weather":[]}`)
	}))
	defer server.Close()

	outcome = NewWeather("wkey", server.URL, time.Second, zerolog.Nop()).
		Analyze(context.Background(), domain.ImageInput{}, &domain.GeoCoordinates{Latitude: 1, Longitude: 2})
	assert.ErrorIs(t, outcome.Err, ErrMalformedPayload)
}

func TestSyntheticRanges(t *testing.T) {
	s := NewSynthetic(42)

	outcome := s.Analyze(context.Background(), testImage, nil)
	require.True(t, outcome.OK())
	assert.IsType(t, domain.SyntheticPayload{}, outcome.Payload)

	for i := 0; i < 500; i++ {
		f := s.Float64Range(1.5, 3.5)
		assert.GreaterOrEqual(t, f, 1.5)
		assert.Less(t, f, 3.5)

		n := s.IntRange(500, 1500)
		assert.GreaterOrEqual(t, n, 500)
		assert.Less(t, n, 1500)
	}
	assert.Equal(t, 7, s.IntRange(7, 7))
}

func TestSyntheticSeedIsDeterministic(t *testing.T) {
	a, b := NewSynthetic(7), NewSynthetic(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
	}
}
