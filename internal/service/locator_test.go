package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/nlp"
)

func newLocator(terms domain.TermExtractor, searcher domain.EntitySearcher) *LocatorService {
	return NewLocatorService(terms, searcher, zap.NewNop(), 5, time.Second)
}

func TestLocateMergesPhrasesAndKeywords(t *testing.T) {
	terms := nlp.NewMockClient()
	terms.AnalyzeResponse = &domain.TermAnalysis{
		NounPhrases: []string{"wet amd"},
		Keywords:    []string{"amd", "smoking"},
	}

	searcher := &fakeSearcher{results: map[string][]domain.EntityRef{}}

	_, err := newLocator(terms, searcher).Locate(context.Background(), "Does smoking cause wet AMD?")
	require.NoError(t, err)

	sort.Strings(searcher.calls)
	// "amd" is covered by the phrase "wet amd" and must not be searched
	// on its own; surviving terms pass through synonym expansion.
	assert.Equal(t, []string{
		"smoking",
		"wet age-related macular degeneration",
	}, searcher.calls)
}

func TestLocateDedupsAcrossTermsFirstSeen(t *testing.T) {
	amd := entityRef("age-related macular degeneration", domain.EntityDisease)
	smoking := entityRef("smoking", domain.EntityRiskFactor)

	terms := nlp.NewMockClient()
	terms.AnalyzeResponse = &domain.TermAnalysis{
		Keywords: []string{"degeneration", "smoking"},
	}
	searcher := &fakeSearcher{results: map[string][]domain.EntityRef{
		"degeneration": {amd, smoking},
		"smoking":      {smoking, amd},
	}}

	candidates, err := newLocator(terms, searcher).Locate(context.Background(), "degeneration smoking")
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, amd.ID, candidates[0].ID)
	assert.Equal(t, smoking.ID, candidates[1].ID)
}

func TestLocateFallsBackToWholeQuestion(t *testing.T) {
	terms := nlp.NewMockClient()
	terms.AnalyzeError = errors.New("nlp service down")

	ref := entityRef("geographic atrophy", domain.EntityDisease)
	searcher := &fakeSearcher{results: map[string][]domain.EntityRef{
		"what is geographic atrophy": {ref},
	}}

	candidates, err := newLocator(terms, searcher).Locate(context.Background(), "what is geographic atrophy")
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, ref.ID, candidates[0].ID)
}

func TestLocateSkipsFailedTerms(t *testing.T) {
	terms := nlp.NewMockClient()
	terms.AnalyzeResponse = &domain.TermAnalysis{Keywords: []string{"smoking"}}
	searcher := &fakeSearcher{err: errors.New("store unavailable")}

	candidates, err := newLocator(terms, searcher).Locate(context.Background(), "smoking")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestLocateEmptyQuestionYieldsNothing(t *testing.T) {
	terms := nlp.NewMockClient()
	searcher := &fakeSearcher{}

	candidates, err := newLocator(terms, searcher).Locate(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Empty(t, searcher.calls)
}
