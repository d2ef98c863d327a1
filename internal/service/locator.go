package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/normalize"
)

// searchConcurrency bounds parallel term searches so a many-term question
// cannot flood the store.
const searchConcurrency = 4

// LocatorService maps a question to the graph entities it mentions. Terms
// come from the NLP collaborator; each term is searched independently and
// the hits are merged in term order.
type LocatorService struct {
	terms    domain.TermExtractor
	searcher domain.EntitySearcher
	logger   *zap.Logger

	topK    int
	timeout time.Duration
}

func NewLocatorService(terms domain.TermExtractor, searcher domain.EntitySearcher, logger *zap.Logger, topK int, timeout time.Duration) *LocatorService {
	return &LocatorService{
		terms:    terms,
		searcher: searcher,
		logger:   logger,
		topK:     topK,
		timeout:  timeout,
	}
}

// Locate returns candidate entities for the question, ordered by the term
// that found them first. A failed term analysis degrades to searching the
// whole question; a failed search drops only that term's hits.
func (s *LocatorService) Locate(ctx context.Context, question string) ([]domain.EntityRef, error) {
	terms := s.searchTerms(ctx, question)
	if len(terms) == 0 {
		return nil, nil
	}

	results := make([][]domain.EntityRef, len(terms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)
	for i, term := range terms {
		i, term := i, term
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.timeout)
			defer cancel()

			refs, err := s.searcher.Search(callCtx, term, s.topK)
			if err != nil {
				s.logger.Warn("entity search failed, skipping term",
					zap.String("term", term),
					zap.Error(err))
				return nil
			}
			results[i] = refs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in term order, keeping the first occurrence of each entity.
	seen := make(map[string]bool)
	var candidates []domain.EntityRef
	for _, refs := range results {
		for _, ref := range refs {
			if seen[ref.ID.String()] {
				continue
			}
			seen[ref.ID.String()] = true
			candidates = append(candidates, ref)
		}
	}
	return candidates, nil
}

// searchTerms turns a question into the list of search terms: noun phrases
// first, then keywords that are not already covered by a phrase, each
// rewritten through the domain synonym table.
func (s *LocatorService) searchTerms(ctx context.Context, question string) []string {
	analysis, err := s.terms.Analyze(ctx, question)
	if err != nil {
		s.logger.Warn("term analysis failed, searching whole question", zap.Error(err))
		analysis = &domain.TermAnalysis{}
	}

	var terms []string
	seen := make(map[string]bool)
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" || seen[strings.ToLower(term)] {
			return
		}
		seen[strings.ToLower(term)] = true
		terms = append(terms, term)
	}

	for _, phrase := range analysis.NounPhrases {
		add(phrase)
	}
	for _, keyword := range analysis.Keywords {
		if coveredByPhrase(keyword, analysis.NounPhrases) {
			continue
		}
		add(keyword)
	}
	if len(terms) == 0 {
		add(question)
	}
	return normalize.ExpandTerms(terms)
}

func coveredByPhrase(keyword string, phrases []string) bool {
	lower := strings.ToLower(strings.TrimSpace(keyword))
	for _, phrase := range phrases {
		if strings.Contains(strings.ToLower(phrase), lower) {
			return true
		}
	}
	return false
}
