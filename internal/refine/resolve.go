package refine

import (
	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"go.uber.org/zap"
)

// TypeResolver settles per-entity type ambiguity across a whole batch.
// It is the sole writer of final entity types and must see the complete
// batch: resolution cannot run incrementally.
type TypeResolver struct {
	logger *zap.Logger
}

func NewTypeResolver(logger *zap.Logger) *TypeResolver {
	return &TypeResolver{logger: logger}
}

// Resolve tallies the asserted type of every entity name on both sides
// of every relation, picks a single type per ambiguous name (majority,
// then fixed priority), and rewrites both type fields of every relation
// mentioning that name. Unambiguous names are untouched.
func (tr *TypeResolver) Resolve(relations []domain.RefinedRelation) []domain.RefinedRelation {
	counts := make(map[string]map[domain.EntityType]int)
	tally := func(name string, t domain.EntityType) {
		if counts[name] == nil {
			counts[name] = make(map[domain.EntityType]int)
		}
		counts[name][t]++
	}
	for _, rel := range relations {
		tally(rel.Entity1Name, rel.Entity1Type)
		tally(rel.Entity2Name, rel.Entity2Type)
	}

	resolved := make(map[string]domain.EntityType)
	for name, typeCounts := range counts {
		if len(typeCounts) < 2 {
			continue
		}
		t := mostFrequentType(typeCounts)
		resolved[name] = t
		tr.logger.Info("resolved ambiguous entity type",
			zap.String("entity", name),
			zap.String("type", string(t)),
			zap.Int("distinct_types", len(typeCounts)))
	}

	for i := range relations {
		if t, ok := resolved[relations[i].Entity1Name]; ok {
			relations[i].Entity1Type = t
		}
		if t, ok := resolved[relations[i].Entity2Name]; ok {
			relations[i].Entity2Type = t
		}
	}

	return relations
}

// mostFrequentType picks the type with the highest count, breaking ties
// by the fixed resolution priority.
func mostFrequentType(typeCounts map[domain.EntityType]int) domain.EntityType {
	var best domain.EntityType
	bestCount := -1
	for t, count := range typeCounts {
		switch {
		case count > bestCount:
			best, bestCount = t, count
		case count == bestCount && domain.TypeResolutionPriority(t) > domain.TypeResolutionPriority(best):
			best = t
		}
	}
	return best
}
