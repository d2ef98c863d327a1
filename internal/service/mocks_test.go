package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

type fakeSearcher struct {
	results map[string][]domain.EntityRef
	err     error
	calls   []string
}

func (f *fakeSearcher) Search(ctx context.Context, term string, topK int) ([]domain.EntityRef, error) {
	f.calls = append(f.calls, term)
	if f.err != nil {
		return nil, f.err
	}
	refs := f.results[term]
	if len(refs) > topK {
		refs = refs[:topK]
	}
	return refs, nil
}

type fakeRelationStore struct {
	relations []domain.Relation

	upserted   []domain.RefinedRelation
	replaced   []domain.RefinedRelation
	replaceErr error
	fetchErr   error
}

func (f *fakeRelationStore) UpsertBatch(ctx context.Context, relations []domain.RefinedRelation) error {
	f.upserted = append(f.upserted, relations...)
	return nil
}

func (f *fakeRelationStore) FetchByIDPair(ctx context.Context, ids []uuid.UUID) ([]domain.Relation, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	inSet := make(map[uuid.UUID]bool)
	for _, id := range ids {
		inSet[id] = true
	}
	var out []domain.Relation
	for _, rel := range f.relations {
		if inSet[rel.Subject.ID] && inSet[rel.Object.ID] {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (f *fakeRelationStore) FetchByEntity(ctx context.Context, entityID uuid.UUID, direction domain.Direction, limit int) ([]domain.Relation, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []domain.Relation
	for _, rel := range f.relations {
		if len(out) == limit {
			break
		}
		if direction == domain.DirectionSubject && rel.Subject.ID == entityID {
			out = append(out, rel)
		}
		if direction == domain.DirectionObject && rel.Object.ID == entityID {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (f *fakeRelationStore) SearchPattern(ctx context.Context, text, filter string, limit int) ([]domain.Triple, error) {
	var out []domain.Triple
	for _, rel := range f.relations {
		if len(out) == limit {
			break
		}
		if strings.Contains(rel.Subject.Name, text) || strings.Contains(rel.Object.Name, text) ||
			strings.Contains(string(rel.Predicate), text) {
			out = append(out, domain.Triple{
				Subject:   rel.Subject.Name,
				Predicate: string(rel.Predicate),
				Object:    rel.Object.Name,
			})
		}
	}
	return out, nil
}

func (f *fakeRelationStore) All(ctx context.Context) ([]domain.Relation, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.relations, nil
}

func (f *fakeRelationStore) ReplaceAll(ctx context.Context, relations []domain.RefinedRelation) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = relations
	return nil
}

type fakeEntityStore struct {
	byID             map[uuid.UUID]domain.EntityRef
	vectorResults    []domain.EntityRef
	lexicalResults   []domain.EntityRef
	withoutEmbedding []domain.EntityRef

	vectorErr      error
	updatedVectors map[uuid.UUID][]float32

	lexicalCalls []string
}

func newFakeEntityStore() *fakeEntityStore {
	return &fakeEntityStore{
		byID:           make(map[uuid.UUID]domain.EntityRef),
		updatedVectors: make(map[uuid.UUID][]float32),
	}
}

func (f *fakeEntityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.EntityRef, error) {
	ref, ok := f.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &ref, nil
}

func (f *fakeEntityStore) SearchByEmbedding(ctx context.Context, embedding []float32, topK int) ([]domain.EntityRef, error) {
	if f.vectorErr != nil {
		return nil, f.vectorErr
	}
	refs := f.vectorResults
	if len(refs) > topK {
		refs = refs[:topK]
	}
	return refs, nil
}

func (f *fakeEntityStore) SearchLexical(ctx context.Context, term string, topK int) ([]domain.EntityRef, error) {
	f.lexicalCalls = append(f.lexicalCalls, term)
	refs := f.lexicalResults
	if len(refs) > topK {
		refs = refs[:topK]
	}
	return refs, nil
}

func (f *fakeEntityStore) WithoutEmbedding(ctx context.Context, limit int) ([]domain.EntityRef, error) {
	refs := f.withoutEmbedding
	if len(refs) > limit {
		refs = refs[:limit]
	}
	return refs, nil
}

func (f *fakeEntityStore) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	f.updatedVectors[id] = embedding
	return nil
}

func entityRef(name string, entityType domain.EntityType) domain.EntityRef {
	return domain.EntityRef{ID: uuid.New(), Name: name, Type: entityType}
}

func relationBetween(subject, object domain.EntityRef, predicate domain.RelationType, pubs ...string) domain.Relation {
	rel := domain.Relation{
		ID:        uuid.New(),
		Predicate: predicate,
		Subject:   subject,
		Object:    object,
	}
	for _, pub := range pubs {
		rel.Publications = append(rel.Publications, domain.PublicationRef{Name: pub})
	}
	return rel
}
