package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// EntitySearch answers per-term entity lookups for the locator. Vector
// search is primary; if the embedding call fails the term still resolves
// through a lexical match instead of dropping out of the question.
type EntitySearch struct {
	entities domain.EntityStore
	embedder domain.EmbeddingClient
	logger   *zap.Logger
}

func NewEntitySearch(entities domain.EntityStore, embedder domain.EmbeddingClient, logger *zap.Logger) *EntitySearch {
	return &EntitySearch{
		entities: entities,
		embedder: embedder,
		logger:   logger,
	}
}

var _ domain.EntitySearcher = (*EntitySearch)(nil)

func (s *EntitySearch) Search(ctx context.Context, term string, topK int) ([]domain.EntityRef, error) {
	embedding, err := s.embedder.Embed(ctx, term)
	if err != nil {
		s.logger.Warn("embedding failed, falling back to lexical search",
			zap.String("term", term),
			zap.Error(err))
		return s.entities.SearchLexical(ctx, term, topK)
	}
	return s.entities.SearchByEmbedding(ctx, embedding, topK)
}
