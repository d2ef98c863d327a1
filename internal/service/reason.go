package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// ReasonService refreshes the stored graph with its reasoned closure: the
// full snapshot goes to the external reasoner and its output replaces the
// stored relations wholesale.
type ReasonService struct {
	relations domain.RelationStore
	reasoner  domain.Reasoner
	logger    *zap.Logger
}

func NewReasonService(relations domain.RelationStore, reasoner domain.Reasoner, logger *zap.Logger) *ReasonService {
	return &ReasonService{
		relations: relations,
		reasoner:  reasoner,
		logger:    logger,
	}
}

// Refresh returns the size of the materialized graph that replaced the
// stored one.
func (s *ReasonService) Refresh(ctx context.Context) (int, error) {
	snapshot, err := s.relations.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("load graph snapshot: %w", err)
	}

	materialized, err := s.reasoner.Materialize(ctx, snapshot)
	if err != nil {
		return 0, fmt.Errorf("materialize: %w", err)
	}

	if err := s.relations.ReplaceAll(ctx, materialized); err != nil {
		return 0, fmt.Errorf("replace graph: %w", err)
	}

	s.logger.Info("graph refreshed with reasoned closure",
		zap.Int("before", len(snapshot)),
		zap.Int("after", len(materialized)))
	return len(materialized), nil
}
