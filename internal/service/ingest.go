package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/normalize"
	"github.com/AlexLecu/LLMKGraph/internal/refine"
)

// embeddingBackfillBatch caps how many entities one backfill pass embeds.
const embeddingBackfillBatch = 100

// Abstract is one unit of bulk ingestion: a publication id and its text.
type Abstract struct {
	ID   string `json:"pub_id"`
	Text string `json:"abstract"`
}

// BulkResult summarizes a bulk ingestion run.
type BulkResult struct {
	Abstracts int `json:"abstracts"`
	Failed    int `json:"failed"`
	Relations int `json:"relations"`
}

// IngestService drives the enrichment pipeline: extract candidate
// relations from text, refine them, and persist the survivors. The type
// resolver always sees the whole batch, so bulk ingestion resolves across
// every abstract at once.
type IngestService struct {
	extractor domain.RelationExtractor
	refiner   *refine.Refiner
	resolver  *refine.TypeResolver
	relations domain.RelationStore
	entities  domain.EntityStore
	embedder  domain.EmbeddingClient
	logger    *zap.Logger
}

func NewIngestService(
	extractor domain.RelationExtractor,
	refiner *refine.Refiner,
	resolver *refine.TypeResolver,
	relations domain.RelationStore,
	entities domain.EntityStore,
	embedder domain.EmbeddingClient,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		extractor: extractor,
		refiner:   refiner,
		resolver:  resolver,
		relations: relations,
		entities:  entities,
		embedder:  embedder,
		logger:    logger,
	}
}

// Preview runs extraction and refinement without persisting anything.
func (s *IngestService) Preview(ctx context.Context, text string) ([]domain.RefinedRelation, error) {
	raw, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract relations: %w", err)
	}
	refined := s.refiner.Refine(raw)
	refined = s.resolver.Resolve(refined)
	return dedupByKey(refined), nil
}

// Ingest extracts relations from one text and persists them, tagged with
// the given publication when present.
func (s *IngestService) Ingest(ctx context.Context, text, pubID string) (int, error) {
	refined, err := s.Preview(ctx, text)
	if err != nil {
		return 0, err
	}
	tagPublication(refined, pubID)

	if err := s.relations.UpsertBatch(ctx, refined); err != nil {
		return 0, fmt.Errorf("persist relations: %w", err)
	}
	s.backfillEmbeddings(ctx)
	return len(refined), nil
}

// IngestBulk processes a batch of abstracts. Extraction runs per abstract
// and a failed abstract is logged and skipped; refinement and type
// resolution run across the accumulated batch so types settle globally.
func (s *IngestService) IngestBulk(ctx context.Context, abstracts []Abstract) (BulkResult, error) {
	result := BulkResult{Abstracts: len(abstracts)}

	var batch []domain.RefinedRelation
	for _, abstract := range abstracts {
		raw, err := s.extractor.Extract(ctx, abstract.Text)
		if err != nil {
			result.Failed++
			s.logger.Warn("extraction failed, skipping abstract",
				zap.String("pub_id", abstract.ID),
				zap.Error(err))
			continue
		}
		refined := s.refiner.Refine(raw)
		tagPublication(refined, abstract.ID)
		batch = append(batch, refined...)
	}

	batch = dedupByKey(s.resolver.Resolve(batch))
	if err := s.relations.UpsertBatch(ctx, batch); err != nil {
		return result, fmt.Errorf("persist relations: %w", err)
	}
	result.Relations = len(batch)
	s.backfillEmbeddings(ctx)
	return result, nil
}

// backfillEmbeddings computes vectors for entities the last write left
// without one. Failures are logged; the next ingest retries them.
func (s *IngestService) backfillEmbeddings(ctx context.Context) {
	refs, err := s.entities.WithoutEmbedding(ctx, embeddingBackfillBatch)
	if err != nil {
		s.logger.Warn("embedding backfill listing failed", zap.Error(err))
		return
	}
	for _, ref := range refs {
		embedding, err := s.embedder.Embed(ctx, ref.Name)
		if err != nil {
			s.logger.Warn("embedding failed",
				zap.String("entity", ref.Name),
				zap.Error(err))
			continue
		}
		if err := s.entities.UpdateEmbedding(ctx, ref.ID, embedding); err != nil {
			s.logger.Warn("embedding update failed",
				zap.String("entity", ref.Name),
				zap.Error(err))
		}
	}
}

// tagPublication stamps every relation with the storage name of the
// publication it was derived from.
func tagPublication(relations []domain.RefinedRelation, pubID string) {
	if pubID == "" {
		return
	}
	name := "PUB_" + normalize.Sanitize(pubID)
	for i := range relations {
		relations[i].PubID = name
	}
}

// dedupByKey collapses relations that became identical after type
// resolution, keeping first occurrences.
func dedupByKey(relations []domain.RefinedRelation) []domain.RefinedRelation {
	seen := make(map[string]bool, len(relations))
	out := relations[:0]
	for _, rel := range relations {
		key := rel.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rel)
	}
	return out
}
