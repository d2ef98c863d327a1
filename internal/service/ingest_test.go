package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/embedding"
	"github.com/AlexLecu/LLMKGraph/internal/extract"
	"github.com/AlexLecu/LLMKGraph/internal/refine"
)

// perTextExtractor serves different raw relations per input text, for
// partial-failure scenarios the shared mock cannot express.
type perTextExtractor struct {
	responses map[string][]domain.RawRelation
	failOn    map[string]bool
}

func (e *perTextExtractor) Extract(ctx context.Context, text string) ([]domain.RawRelation, error) {
	if e.failOn[text] {
		return nil, errors.New("extraction failed")
	}
	return e.responses[text], nil
}

func newIngest(extractor domain.RelationExtractor, relations *fakeRelationStore, entities *fakeEntityStore) *IngestService {
	logger := zap.NewNop()
	return NewIngestService(
		extractor,
		refine.NewRefiner(logger),
		refine.NewTypeResolver(logger),
		relations,
		entities,
		embedding.NewMockClient(),
		logger,
	)
}

func rawCause(subject, object string) domain.RawRelation {
	return domain.RawRelation{
		RelationType: "cause",
		Entity1Type:  "risk_factor",
		Entity1Name:  subject,
		Entity2Type:  "disease",
		Entity2Name:  object,
	}
}

func TestPreviewRefinesWithoutPersisting(t *testing.T) {
	extractor := extract.NewMockClient()
	extractor.ExtractResponse = []domain.RawRelation{
		rawCause("Smoking", "AMD"),
		rawCause("smoking", "age-related macular degeneration"), // duplicate after normalization
	}
	relations := &fakeRelationStore{}

	refined, err := newIngest(extractor, relations, newFakeEntityStore()).Preview(context.Background(), "some abstract")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(refined) != 1 {
		t.Fatalf("expected 1 refined relation, got %d", len(refined))
	}
	if refined[0].Entity2Name != "age-related macular degeneration" {
		t.Errorf("object not normalized: %q", refined[0].Entity2Name)
	}
	if len(relations.upserted) != 0 {
		t.Errorf("preview must not persist, upserted %d", len(relations.upserted))
	}
}

func TestIngestTagsPublicationAndPersists(t *testing.T) {
	extractor := extract.NewMockClient()
	extractor.ExtractResponse = []domain.RawRelation{rawCause("smoking", "amd")}
	relations := &fakeRelationStore{}

	count, err := newIngest(extractor, relations, newFakeEntityStore()).
		Ingest(context.Background(), "some abstract", "pub.1038/nature.123")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 relation, got %d", count)
	}
	if len(relations.upserted) != 1 {
		t.Fatalf("expected 1 upserted relation, got %d", len(relations.upserted))
	}
	if got := relations.upserted[0].PubID; got != "PUB_pub_1038_nature_123" {
		t.Errorf("unexpected publication tag: %q", got)
	}
}

func TestIngestBulkSkipsFailedAbstracts(t *testing.T) {
	extractor := &perTextExtractor{
		responses: map[string][]domain.RawRelation{
			"good": {rawCause("smoking", "amd")},
		},
		failOn: map[string]bool{"bad": true},
	}
	relations := &fakeRelationStore{}

	result, err := newIngest(extractor, relations, newFakeEntityStore()).
		IngestBulk(context.Background(), []Abstract{
			{ID: "pub.1", Text: "good"},
			{ID: "pub.2", Text: "bad"},
		})
	if err != nil {
		t.Fatalf("IngestBulk: %v", err)
	}
	if result.Abstracts != 2 || result.Failed != 1 || result.Relations != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(relations.upserted) != 1 {
		t.Fatalf("expected 1 upserted relation, got %d", len(relations.upserted))
	}
	if relations.upserted[0].PubID != "PUB_pub_1" {
		t.Errorf("unexpected publication tag: %q", relations.upserted[0].PubID)
	}
}

func TestIngestBulkResolvesTypesAcrossAbstracts(t *testing.T) {
	// "drusen" is asserted as a biomarker twice and a symptom once; the
	// majority must win across the whole batch, not per abstract.
	extractor := &perTextExtractor{
		responses: map[string][]domain.RawRelation{
			"a": {
				{RelationType: "present", Entity1Type: "biomarker", Entity1Name: "drusen",
					Entity2Type: "disease", Entity2Name: "amd"},
			},
			"b": {
				{RelationType: "present", Entity1Type: "biomarker", Entity1Name: "drusen",
					Entity2Type: "disease", Entity2Name: "geographic atrophy"},
				{RelationType: "present", Entity1Type: "symptom", Entity1Name: "drusen",
					Entity2Type: "disease", Entity2Name: "wet amd"},
			},
		},
	}
	relations := &fakeRelationStore{}

	result, err := newIngest(extractor, relations, newFakeEntityStore()).
		IngestBulk(context.Background(), []Abstract{
			{ID: "pub.1", Text: "a"},
			{ID: "pub.2", Text: "b"},
		})
	if err != nil {
		t.Fatalf("IngestBulk: %v", err)
	}
	if result.Relations != 3 {
		t.Fatalf("expected 3 relations, got %d", result.Relations)
	}
	for _, rel := range relations.upserted {
		if rel.Entity1Name == "drusen" && rel.Entity1Type != domain.EntityBiomarker {
			t.Errorf("drusen resolved to %q, want biomarker", rel.Entity1Type)
		}
	}
}

func TestIngestBackfillsEmbeddings(t *testing.T) {
	extractor := extract.NewMockClient()
	extractor.ExtractResponse = []domain.RawRelation{rawCause("smoking", "amd")}

	entities := newFakeEntityStore()
	pending := entityRef("smoking", domain.EntityRiskFactor)
	entities.withoutEmbedding = []domain.EntityRef{pending}

	_, err := newIngest(extractor, &fakeRelationStore{}, entities).
		Ingest(context.Background(), "some abstract", "")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if _, ok := entities.updatedVectors[pending.ID]; !ok {
		t.Errorf("expected embedding backfill for %q", pending.Name)
	}
}
