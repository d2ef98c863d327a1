// Package reasoner holds the OWL-reasoner collaborator client. The
// reasoner receives the full relation snapshot and returns the
// materialized closure, which replaces the stored graph wholesale.
package reasoner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type materializeRequest struct {
	Relations []domain.Relation `json:"relations"`
}

type materializeResponse struct {
	Relations []domain.RefinedRelation `json:"relations"`
	Error     string                   `json:"error,omitempty"`
}

func (c *HTTPClient) Materialize(ctx context.Context, relations []domain.Relation) ([]domain.RefinedRelation, error) {
	body, err := json.Marshal(materializeRequest{Relations: relations})
	if err != nil {
		return nil, fmt.Errorf("marshal materialize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/materialize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create materialize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("materialize request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read materialize response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reasoner returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result materializeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal materialize response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("reasoner error: %s", result.Error)
	}

	return result.Relations, nil
}

// MockClient is a configurable reasoner for testing.
type MockClient struct {
	MaterializeResponse []domain.RefinedRelation
	MaterializeError    error

	// Call tracking for assertions
	MaterializeCalls [][]domain.Relation
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) Materialize(ctx context.Context, relations []domain.Relation) ([]domain.RefinedRelation, error) {
	c.MaterializeCalls = append(c.MaterializeCalls, relations)
	if c.MaterializeError != nil {
		return nil, c.MaterializeError
	}
	return c.MaterializeResponse, nil
}
