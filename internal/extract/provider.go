// Package extract holds the relation-extraction collaborator clients.
// A provider is selected by configuration at startup; all providers
// satisfy domain.RelationExtractor.
package extract

import (
	"fmt"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// Provider constants
const (
	ProviderOpenAI  = "openai"
	ProviderMistral = "mistral"
	ProviderMock    = "mock"
)

// NewClient creates a relation extractor based on the provider name.
// Returns an error if the provider is unknown or the API key is empty
// (except for mock).
func NewClient(provider, apiKey string) (domain.RelationExtractor, error) {
	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIClient(apiKey), nil

	case ProviderMistral:
		if apiKey == "" {
			return nil, fmt.Errorf("MISTRAL_API_KEY is required for Mistral provider")
		}
		return NewMistralClient(apiKey), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown extraction provider: %s (valid options: openai, mistral, mock)", provider)
	}
}
