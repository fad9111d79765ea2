package extraction

import (
	"context"
	"os"

	"github.com/tripweave/tripweave/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

// Extractor turns the unstructured text of one travel document into typed
// extraction records for the consolidation pipeline. Implementations may
// return partial data; downstream normalization handles the noise.
type Extractor interface {
	Extract(ctx context.Context, document string) (*models.DocumentExtract, error)
}

// Config holds configuration for the OpenAI-backed extractor.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// DefaultConfig returns sensible defaults for document extraction.
func DefaultConfig() Config {
	return Config{
		Model:       openai.GPT4oMini,
		Temperature: 0.1, // extraction is factual, keep it deterministic
		MaxTokens:   2000,
	}
}

// ConfigFromEnv creates config from environment variables with defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.Model = model
	}

	return cfg
}
