package nlp

import (
	"context"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// MockClient is a configurable term extractor for testing.
type MockClient struct {
	AnalyzeResponse *domain.TermAnalysis
	AnalyzeError    error

	// Call tracking for assertions
	AnalyzeCalls []string
}

func NewMockClient() *MockClient {
	return &MockClient{
		AnalyzeResponse: &domain.TermAnalysis{},
	}
}

func (c *MockClient) Analyze(ctx context.Context, question string) (*domain.TermAnalysis, error) {
	c.AnalyzeCalls = append(c.AnalyzeCalls, question)
	if c.AnalyzeError != nil {
		return nil, c.AnalyzeError
	}
	return c.AnalyzeResponse, nil
}
