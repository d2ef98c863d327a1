package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

const (
	noContextFound   = "No context found"
	noRelevantResult = "No relevant information found"
)

// QueryService runs the retrieval pipeline: locate entities for the
// question, expand their relations, assemble the bounded context. Faults
// never escape as errors; the caller always gets a QueryResult, degraded
// or empty as needed.
type QueryService struct {
	locator   *LocatorService
	expander  *ExpanderService
	assembler *Assembler
	logger    *zap.Logger
}

func NewQueryService(locator *LocatorService, expander *ExpanderService, assembler *Assembler, logger *zap.Logger) *QueryService {
	return &QueryService{
		locator:   locator,
		expander:  expander,
		assembler: assembler,
		logger:    logger,
	}
}

func (s *QueryService) Query(ctx context.Context, question string) domain.QueryResult {
	result := domain.QueryResult{
		Question: question,
		Context:  noContextFound,
		Sources:  []string{},
	}

	candidates, err := s.locator.Locate(ctx, question)
	if err != nil {
		s.logger.Error("entity location failed", zap.String("question", question), zap.Error(err))
		result.Error = err.Error()
		return result
	}
	if len(candidates) == 0 {
		result.Error = noRelevantResult
		return result
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, ref := range candidates {
		ids[i] = ref.ID
	}
	relations, err := s.expander.Expand(ctx, ids)
	if err != nil {
		s.logger.Error("relation expansion failed", zap.String("question", question), zap.Error(err))
		result.Error = err.Error()
		return result
	}

	assembled := s.assembler.Assemble(candidates, relations)
	if assembled.Empty {
		result.Error = noRelevantResult
		return result
	}

	result.Context = assembled.Context
	result.Sources = assembled.Sources
	result.EntityCount = assembled.EntityCount
	result.RelationCount = assembled.RelationCount

	s.logger.Info("query answered",
		zap.String("question", question),
		zap.Int("entities", assembled.EntityCount),
		zap.Int("relations", assembled.RelationCount),
		zap.Int("context_chars", len(assembled.Context)))
	return result
}
