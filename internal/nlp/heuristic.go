package nlp

import (
	"context"
	"strings"
	"unicode"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// stopwords covers the function words that never name a graph entity.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "can": true, "do": true, "does": true, "for": true,
	"from": true, "how": true, "in": true, "is": true, "it": true, "of": true,
	"on": true, "or": true, "that": true, "the": true, "this": true, "to": true,
	"what": true, "when": true, "which": true, "who": true, "why": true,
	"with": true, "you": true, "your": true,
}

// HeuristicClient is a dependency-free term extractor used when no NLP
// sidecar is configured. Keywords are the non-stopword tokens; noun
// phrases are maximal runs of two or more consecutive non-stopword
// tokens. It is deliberately crude: the locator treats its output the
// same way it treats the sidecar's.
type HeuristicClient struct{}

func NewHeuristicClient() *HeuristicClient {
	return &HeuristicClient{}
}

func (c *HeuristicClient) Analyze(ctx context.Context, question string) (*domain.TermAnalysis, error) {
	tokens := tokenize(question)

	analysis := &domain.TermAnalysis{}
	var run []string
	flush := func() {
		if len(run) >= 2 {
			analysis.NounPhrases = append(analysis.NounPhrases, strings.Join(run, " "))
		}
		run = nil
	}

	for _, tok := range tokens {
		if stopwords[tok] {
			flush()
			continue
		}
		analysis.Keywords = append(analysis.Keywords, tok)
		run = append(run, tok)
	}
	flush()

	return analysis, nil
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
