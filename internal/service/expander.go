package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// ExpanderService gathers the relations around a set of candidate
// entities: first the edges connecting candidates to each other, then each
// candidate's own neighborhood. Output order is deterministic for a given
// candidate order, which downstream scoring depends on.
type ExpanderService struct {
	relations domain.RelationStore
	logger    *zap.Logger

	perEntityLimit int
	timeout        time.Duration
}

func NewExpanderService(relations domain.RelationStore, logger *zap.Logger, perEntityLimit int, timeout time.Duration) *ExpanderService {
	return &ExpanderService{
		relations:      relations,
		logger:         logger,
		perEntityLimit: perEntityLimit,
		timeout:        timeout,
	}
}

// Expand returns the deduplicated union of the pairwise and per-entity
// passes. A failed fetch contributes nothing instead of failing the whole
// expansion.
func (s *ExpanderService) Expand(ctx context.Context, ids []uuid.UUID) ([]domain.Relation, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	pairCtx, cancel := context.WithTimeout(ctx, s.timeout)
	pairwise, err := s.relations.FetchByIDPair(pairCtx, ids)
	cancel()
	if err != nil {
		s.logger.Warn("pairwise fetch failed", zap.Error(err))
		pairwise = nil
	}

	perEntity := make([][]domain.Relation, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			perEntity[i] = s.fetchNeighborhood(gctx, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var merged []domain.Relation
	add := func(rels []domain.Relation) {
		for _, rel := range rels {
			key := rel.DedupKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, rel)
		}
	}
	// Pairwise edges must join two distinct candidates; a stored
	// self-loop never qualifies.
	for i := 0; i < len(pairwise); i++ {
		if pairwise[i].Subject.ID == pairwise[i].Object.ID {
			pairwise = append(pairwise[:i], pairwise[i+1:]...)
			i--
		}
	}
	add(pairwise)
	for _, rels := range perEntity {
		add(rels)
	}
	return merged, nil
}

// fetchNeighborhood collects relations where the entity is the subject,
// then where it is the object. Either side failing is logged and skipped.
func (s *ExpanderService) fetchNeighborhood(ctx context.Context, id uuid.UUID) []domain.Relation {
	var out []domain.Relation
	for _, direction := range []domain.Direction{domain.DirectionSubject, domain.DirectionObject} {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		rels, err := s.relations.FetchByEntity(callCtx, id, direction, s.perEntityLimit)
		cancel()
		if err != nil {
			s.logger.Warn("neighborhood fetch failed",
				zap.String("entity_id", id.String()),
				zap.String("direction", string(direction)),
				zap.Error(err))
			continue
		}
		out = append(out, rels...)
	}
	return out
}
