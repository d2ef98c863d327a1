package domain

import (
	"github.com/google/uuid"
)

// EntityRef identifies a stored entity plus enough of its record to
// render context without a second lookup.
type EntityRef struct {
	ID   uuid.UUID  `json:"id"`
	Name string     `json:"name"`
	Type EntityType `json:"type"`
}

type PublicationRef struct {
	Name string `json:"name"`
}

// Relation is a stored subject-predicate-object edge with its backing
// publications resolved.
type Relation struct {
	ID           uuid.UUID        `json:"id"`
	Predicate    RelationType     `json:"predicate"`
	Subject      EntityRef        `json:"subject"`
	Object       EntityRef        `json:"object"`
	Publications []PublicationRef `json:"publications,omitempty"`
}

// DedupKey identifies a relation across retrieval passes. Two fetches of
// the same edge (by pair and by entity) collapse to one.
func (r Relation) DedupKey() string {
	return r.Subject.ID.String() + "|" + string(r.Predicate) + "|" + r.Object.ID.String()
}

// Triple is a flat pattern-search result over the stored graph.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// TermAnalysis is the output of the term-extraction collaborator.
type TermAnalysis struct {
	NounPhrases []string `json:"noun_phrases"`
	Keywords    []string `json:"keywords"`
}

// QueryResult is the terminal output of the retrieval pipeline. A set
// Error means a degraded or empty result, never a fault.
type QueryResult struct {
	Question      string   `json:"question"`
	Context       string   `json:"context"`
	Sources       []string `json:"sources"`
	EntityCount   int      `json:"context_entities"`
	RelationCount int      `json:"context_relations"`
	Error         string   `json:"error,omitempty"`
}
