package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/nlp"
)

func newQueryPipeline(searcher domain.EntitySearcher, relations domain.RelationStore, terms domain.TermExtractor) *QueryService {
	logger := zap.NewNop()
	locator := NewLocatorService(terms, searcher, logger, 5, time.Second)
	expander := NewExpanderService(relations, logger, 50, time.Second)
	assembler := NewAssembler(10, 3, 4000)
	return NewQueryService(locator, expander, assembler, logger)
}

func TestQueryEndToEnd(t *testing.T) {
	smoking := entityRef("smoking", domain.EntityRiskFactor)
	amd := entityRef("age-related macular degeneration", domain.EntityDisease)

	terms := nlp.NewMockClient()
	terms.AnalyzeResponse = &domain.TermAnalysis{Keywords: []string{"amd"}}

	searcher := &fakeSearcher{results: map[string][]domain.EntityRef{
		"age-related macular degeneration": {amd, smoking},
	}}
	store := &fakeRelationStore{relations: []domain.Relation{
		relationBetween(smoking, amd, domain.RelationCause, "PUB_pub_42"),
	}}

	result := newQueryPipeline(searcher, store, terms).Query(context.Background(), "What causes AMD?")

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if !strings.Contains(result.Context, "smoking (risk factor) cause age-related macular degeneration (disease)") {
		t.Errorf("unexpected context: %s", result.Context)
	}
	if len(result.Sources) != 1 || result.Sources[0] != "pub.42" {
		t.Errorf("unexpected sources: %v", result.Sources)
	}
	if result.EntityCount != 2 || result.RelationCount != 1 {
		t.Errorf("unexpected counts: %d entities, %d relations", result.EntityCount, result.RelationCount)
	}
	if result.Question != "What causes AMD?" {
		t.Errorf("question not echoed: %q", result.Question)
	}
}

func TestQueryNoCandidatesSignalsEmpty(t *testing.T) {
	terms := nlp.NewMockClient()
	terms.AnalyzeResponse = &domain.TermAnalysis{Keywords: []string{"unrelated"}}

	searcher := &fakeSearcher{results: map[string][]domain.EntityRef{}}
	store := &fakeRelationStore{}

	result := newQueryPipeline(searcher, store, terms).Query(context.Background(), "unrelated")

	if result.Error != noRelevantResult {
		t.Errorf("expected %q, got %q", noRelevantResult, result.Error)
	}
	if result.Context != noContextFound {
		t.Errorf("expected %q, got %q", noContextFound, result.Context)
	}
	if result.EntityCount != 0 || result.RelationCount != 0 {
		t.Errorf("expected zero counts, got %d/%d", result.EntityCount, result.RelationCount)
	}
}

func TestQueryEntitiesWithoutRelationsSignalsEmpty(t *testing.T) {
	amd := entityRef("age-related macular degeneration", domain.EntityDisease)

	terms := nlp.NewMockClient()
	terms.AnalyzeResponse = &domain.TermAnalysis{Keywords: []string{"amd"}}

	searcher := &fakeSearcher{results: map[string][]domain.EntityRef{
		"age-related macular degeneration": {amd},
	}}
	store := &fakeRelationStore{}

	result := newQueryPipeline(searcher, store, terms).Query(context.Background(), "What is AMD?")

	if result.Error != noRelevantResult {
		t.Errorf("expected %q, got %q", noRelevantResult, result.Error)
	}
}
