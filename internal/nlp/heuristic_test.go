package nlp

import (
	"context"
	"testing"
)

func TestHeuristicAnalyze(t *testing.T) {
	c := NewHeuristicClient()

	analysis, err := c.Analyze(context.Background(), "What are the causes of wet AMD?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKeywords := []string{"causes", "wet", "amd"}
	if len(analysis.Keywords) != len(wantKeywords) {
		t.Fatalf("expected keywords %v, got %v", wantKeywords, analysis.Keywords)
	}
	for i, w := range wantKeywords {
		if analysis.Keywords[i] != w {
			t.Errorf("keyword %d: got %q, want %q", i, analysis.Keywords[i], w)
		}
	}

	if len(analysis.NounPhrases) != 1 || analysis.NounPhrases[0] != "causes wet amd" {
		t.Errorf("expected noun phrase [causes wet amd], got %v", analysis.NounPhrases)
	}
}

func TestHeuristicAnalyze_EmptyQuestion(t *testing.T) {
	c := NewHeuristicClient()

	analysis, err := c.Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(analysis.Keywords) != 0 || len(analysis.NounPhrases) != 0 {
		t.Errorf("expected empty analysis, got %+v", analysis)
	}
}

func TestTokenize_KeepsHyphenatedTerms(t *testing.T) {
	tokens := tokenize("Anti-VEGF improves age-related macular degeneration.")
	want := []string{"anti-vegf", "improves", "age-related", "macular", "degeneration"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %v, got %v", want, tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, tokens[i], want[i])
		}
	}
}
