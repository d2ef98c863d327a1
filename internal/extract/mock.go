package extract

import (
	"context"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// MockClient is a configurable relation extractor for testing.
// Set the response fields to control what Extract returns.
type MockClient struct {
	ExtractResponse []domain.RawRelation
	ExtractError    error

	// Call tracking for assertions
	ExtractCalls []string
}

func NewMockClient() *MockClient {
	return &MockClient{
		ExtractResponse: []domain.RawRelation{},
	}
}

func (c *MockClient) Extract(ctx context.Context, text string) ([]domain.RawRelation, error) {
	c.ExtractCalls = append(c.ExtractCalls, text)
	if c.ExtractError != nil {
		return nil, c.ExtractError
	}
	return c.ExtractResponse, nil
}

// Reset clears recorded calls and resets responses to defaults.
func (c *MockClient) Reset() {
	c.ExtractResponse = []domain.RawRelation{}
	c.ExtractError = nil
	c.ExtractCalls = nil
}
