package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/plantdoc/backend/internal/domain"
)

const chatVisionPrompt = `You are a plant pathologist. Inspect the photo and answer with a single JSON object:
{"disease": <disease name or null when the plant looks healthy>, "probability": <0..1 confidence that the disease is present>, "labels": [<short visual labels>]}`

// ChatVision asks an OpenAI-compatible multimodal chat model for a diagnosis
type ChatVision struct {
	model  string
	client *openai.Client
	logger zerolog.Logger
}

// NewChatVision creates a chat-vision adapter. An empty baseURL targets OpenAI.
func NewChatVision(apiKey, baseURL, model string, timeout time.Duration, logger zerolog.Logger) *ChatVision {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	clientConfig.HTTPClient = newHTTPClient(timeout)

	return &ChatVision{
		model:  model,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger.With().Str("provider", string(domain.ProviderChatVision)).Logger(),
	}
}

type chatVisionAnswer struct {
	Disease     *string  `json:"disease"`
	Probability *float64 `json:"probability"`
	Labels      []string `json:"labels"`
}

// Name returns the provider identifier
func (c *ChatVision) Name() domain.ProviderName {
	return domain.ProviderChatVision
}

// Analyze sends the image inline as a data URL and parses the JSON answer
func (c *ChatVision) Analyze(ctx context.Context, img domain.ImageInput, _ *domain.GeoCoordinates) domain.Outcome {
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, encodeImage(img))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: chatVisionPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: "Diagnose this plant."},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
						URL:    dataURL,
						Detail: openai.ImageURLDetailLow,
					}},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fail(c.logger, c.Name(), fmt.Errorf("chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return fail(c.logger, c.Name(), fmt.Errorf("%w: no choices", ErrMalformedPayload))
	}

	payload, err := parseChatVisionAnswer(resp.Choices[0].Message.Content)
	if err != nil {
		return fail(c.logger, c.Name(), err)
	}
	payload.Model = resp.Model

	return domain.Succeeded(c.Name(), payload)
}

// parseChatVisionAnswer decodes the model's JSON, tolerating markdown fences
func parseChatVisionAnswer(content string) (domain.ChatVisionPayload, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var answer chatVisionAnswer
	if err := sonic.UnmarshalString(content, &answer); err != nil {
		return domain.ChatVisionPayload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if answer.Probability == nil {
		return domain.ChatVisionPayload{}, fmt.Errorf("%w: missing probability", ErrMalformedPayload)
	}
	if !validProbability(*answer.Probability) {
		return domain.ChatVisionPayload{}, fmt.Errorf("%w: probability %v out of range", ErrMalformedPayload, *answer.Probability)
	}

	payload := domain.ChatVisionPayload{
		Probability: *answer.Probability,
		Labels:      answer.Labels,
	}
	if answer.Disease != nil {
		payload.Disease = strings.TrimSpace(*answer.Disease)
	}
	return payload, nil
}
