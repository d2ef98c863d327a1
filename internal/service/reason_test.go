package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/reasoner"
)

func TestRefreshReplacesGraphWithClosure(t *testing.T) {
	smoking := entityRef("smoking", domain.EntityRiskFactor)
	amd := entityRef("age-related macular degeneration", domain.EntityDisease)

	store := &fakeRelationStore{relations: []domain.Relation{
		relationBetween(smoking, amd, domain.RelationCause),
	}}

	closure := []domain.RefinedRelation{
		{RelationType: domain.RelationCause, Entity1Type: domain.EntityRiskFactor,
			Entity1Name: "smoking", Entity2Type: domain.EntityDisease,
			Entity2Name: "age-related macular degeneration"},
		{RelationType: domain.RelationAggravate, Entity1Type: domain.EntityRiskFactor,
			Entity1Name: "smoking", Entity2Type: domain.EntityDisease,
			Entity2Name: "age-related macular degeneration"},
	}
	mock := reasoner.NewMockClient()
	mock.MaterializeResponse = closure

	count, err := NewReasonService(store, mock, zap.NewNop()).Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 materialized relations, got %d", count)
	}
	if len(mock.MaterializeCalls) != 1 || len(mock.MaterializeCalls[0]) != 1 {
		t.Errorf("reasoner did not receive the full snapshot")
	}
	if len(store.replaced) != 2 {
		t.Errorf("store not replaced with closure, got %d", len(store.replaced))
	}
}

func TestRefreshKeepsGraphWhenReasonerFails(t *testing.T) {
	store := &fakeRelationStore{}
	mock := reasoner.NewMockClient()
	mock.MaterializeError = errors.New("reasoner unavailable")

	_, err := NewReasonService(store, mock, zap.NewNop()).Refresh(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if store.replaced != nil {
		t.Errorf("graph must not be replaced on reasoner failure")
	}
}
