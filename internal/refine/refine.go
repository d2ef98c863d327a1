// Package refine turns raw extracted relations into a clean,
// deduplicated batch with batch-consistent entity types.
package refine

import (
	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/normalize"
	"go.uber.org/zap"
)

type Refiner struct {
	logger *zap.Logger
}

func NewRefiner(logger *zap.Logger) *Refiner {
	return &Refiner{logger: logger}
}

// Refine normalizes both entity names of every raw relation and drops
// invalid records, self-relations and duplicates. It is a single-pass,
// order-preserving filter: the first occurrence of each 6-tuple wins.
func (r *Refiner) Refine(raw []domain.RawRelation) []domain.RefinedRelation {
	seen := make(map[string]bool, len(raw))
	refined := make([]domain.RefinedRelation, 0, len(raw))

	for _, rel := range raw {
		if !rel.Valid() {
			r.logger.Warn("dropping relation with invalid fields",
				zap.String("relation_type", rel.RelationType),
				zap.String("entity1_type", rel.Entity1Type),
				zap.String("entity2_type", rel.Entity2Type))
			continue
		}

		name1 := normalize.Name(rel.Entity1Name)
		name2 := normalize.Name(rel.Entity2Name)

		if name1 == "" || name2 == "" {
			r.logger.Warn("dropping relation with empty entity name after normalization",
				zap.String("entity1_name", rel.Entity1Name),
				zap.String("entity2_name", rel.Entity2Name))
			continue
		}

		if name1 == name2 {
			r.logger.Warn("dropping self-relation",
				zap.String("entity_name", name1),
				zap.String("relation_type", rel.RelationType))
			continue
		}

		refinedRel := domain.RefinedRelation{
			RelationType: domain.RelationType(rel.RelationType),
			Entity1Type:  domain.EntityType(rel.Entity1Type),
			Entity1Name:  name1,
			Entity2Type:  domain.EntityType(rel.Entity2Type),
			Entity2Name:  name2,
			PubID:        rel.PubID,
		}

		key := refinedRel.Key()
		if seen[key] {
			r.logger.Info("dropping duplicate relation", zap.String("key", key))
			continue
		}
		seen[key] = true
		refined = append(refined, refinedRel)
	}

	return refined
}
