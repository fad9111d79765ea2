package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/tripweave/tripweave/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a travel document extraction engine. Extract flights, hotel stays and passengers from the document you are given and respond with a single JSON object of this shape, omitting entities that are not present:
{
  "flights": [{"flight_number": "", "operator": "", "departure": {"location": "", "terminal": "", "date": "", "time": ""}, "arrival": {"location": "", "terminal": "", "date": "", "time": ""}, "travel_class": "", "baggage_allowance": {"checked_baggage": "", "hand_baggage": ""}}],
  "hotels": [{"name": "", "city": "", "check_in_date": "", "check_out_date": "", "rooms": [{"room_type": "", "bed_type": "", "features": []}], "booking_reference": "", "address": ""}],
  "passengers": [{"title": "", "first_name": "", "last_name": "", "frequent_flyer": ""}]
}
Copy dates and times exactly as written in the document. Never invent values for fields the document does not state.`

// OpenAIExtractor extracts structured travel records from document text
// using the OpenAI chat completions API.
type OpenAIExtractor struct {
	client *openai.Client
	config Config
	logger *slog.Logger
}

// NewOpenAIExtractor creates an OpenAI-backed extractor.
func NewOpenAIExtractor(cfg Config, logger *slog.Logger) (*OpenAIExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key not configured")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OpenAIExtractor{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
		logger: logger,
	}, nil
}

// Extract sends the document to the model and parses the JSON response into
// typed extraction records.
func (e *OpenAIExtractor) Extract(ctx context.Context, document string) (*models.DocumentExtract, error) {
	start := time.Now()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.config.Model,
		Temperature: e.config.Temperature,
		MaxTokens:   e.config.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: document},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai extraction: %w", err)
	}

	e.logger.Info("document extraction complete",
		"model", e.config.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"total_tokens", resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai extraction: empty response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var extract models.DocumentExtract
	if err := json.Unmarshal([]byte(content), &extract); err != nil {
		return nil, fmt.Errorf("openai extraction: parse response: %w", err)
	}

	return &extract, nil
}
