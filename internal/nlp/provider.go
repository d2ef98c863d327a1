// Package nlp holds the term-extraction collaborator clients that turn
// a natural-language question into noun phrases and keywords.
package nlp

import (
	"fmt"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// Provider constants
const (
	ProviderService   = "service"
	ProviderHeuristic = "heuristic"
	ProviderMock      = "mock"
)

// NewClient creates a term extractor based on the provider name.
// "service" talks to an external NLP sidecar; "heuristic" is a local
// fallback that needs no external process.
func NewClient(provider, baseURL string) (domain.TermExtractor, error) {
	switch provider {
	case ProviderService:
		if baseURL == "" {
			return nil, fmt.Errorf("NLP_SERVICE_URL is required for service term extractor")
		}
		return NewServiceClient(baseURL), nil

	case ProviderHeuristic:
		return NewHeuristicClient(), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown term extractor provider: %s (valid options: service, heuristic, mock)", provider)
	}
}
