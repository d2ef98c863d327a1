package nlp

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

// ServiceClient calls an external NLP sidecar that performs noun-phrase
// chunking and keyword extraction.
type ServiceClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewServiceClient(baseURL string) *ServiceClient {
	return &ServiceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type analyzeRequest struct {
	Question string `json:"question"`
}

type analyzeResponse struct {
	NounPhrases []string `json:"noun_phrases"`
	Keywords    []string `json:"keywords"`
	Error       string   `json:"error,omitempty"`
}

func (c *ServiceClient) Analyze(ctx context.Context, question string) (*domain.TermAnalysis, error) {
	body, err := json.Marshal(analyzeRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analyze response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyze API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result analyzeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal analyze response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("analyze API error: %s", result.Error)
	}

	return &domain.TermAnalysis{
		NounPhrases: result.NounPhrases,
		Keywords:    result.Keywords,
	}, nil
}
