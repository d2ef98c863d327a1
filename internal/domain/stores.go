package domain

import (
	"context"

	"github.com/google/uuid"
)

// Direction selects which side of a relation an entity occupies when
// fetching by entity.
type Direction string

const (
	DirectionSubject Direction = "subject"
	DirectionObject  Direction = "object"
)

// EntityStore persists canonical entities and serves both vector and
// lexical lookups over them.
type EntityStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*EntityRef, error)
	SearchByEmbedding(ctx context.Context, embedding []float32, topK int) ([]EntityRef, error)
	SearchLexical(ctx context.Context, term string, topK int) ([]EntityRef, error)
	WithoutEmbedding(ctx context.Context, limit int) ([]EntityRef, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
}

// EntitySearcher is the entity-search collaborator seen by the locator.
type EntitySearcher interface {
	Search(ctx context.Context, term string, topK int) ([]EntityRef, error)
}

// RelationStore persists refined relations and answers the pattern
// queries the retrieval pipeline needs.
type RelationStore interface {
	UpsertBatch(ctx context.Context, relations []RefinedRelation) error
	FetchByIDPair(ctx context.Context, ids []uuid.UUID) ([]Relation, error)
	FetchByEntity(ctx context.Context, entityID uuid.UUID, direction Direction, limit int) ([]Relation, error)
	SearchPattern(ctx context.Context, text, filter string, limit int) ([]Triple, error)
	All(ctx context.Context) ([]Relation, error)
	// ReplaceAll clears the stored graph and re-inserts the given batch.
	// Used by the reasoning refresh.
	ReplaceAll(ctx context.Context, relations []RefinedRelation) error
}

// RelationExtractor turns free text into candidate relations. Providers
// are selected by configuration; output must be validated before use.
type RelationExtractor interface {
	Extract(ctx context.Context, text string) ([]RawRelation, error)
}

// EmbeddingClient computes a vector for a piece of text.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// TermExtractor is the NLP collaborator that splits a question into
// noun phrases and keywords.
type TermExtractor interface {
	Analyze(ctx context.Context, question string) (*TermAnalysis, error)
}

// Reasoner is the opaque OWL-reasoner collaborator: it receives the
// current relation snapshot and returns the materialized closure.
type Reasoner interface {
	Materialize(ctx context.Context, relations []Relation) ([]RefinedRelation, error)
}
