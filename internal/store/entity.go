package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// EntityStore persists graph entities in Postgres. Entities are keyed by
// their sanitized name so the same concept ingested twice resolves to one
// row regardless of surface form.
type EntityStore struct {
	db *pgxpool.Pool
}

func NewEntityStore(db *pgxpool.Pool) *EntityStore {
	return &EntityStore{db: db}
}

var _ domain.EntityStore = (*EntityStore)(nil)

func (s *EntityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.EntityRef, error) {
	var ref domain.EntityRef
	err := s.db.QueryRow(ctx,
		`SELECT id, name, entity_type FROM entities WHERE id = $1`, id,
	).Scan(&ref.ID, &ref.Name, &ref.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entity: %w", err)
	}
	return &ref, nil
}

// SearchByEmbedding returns the topK entities nearest to the query vector
// by cosine distance. Rows without an embedding are excluded.
func (s *EntityStore) SearchByEmbedding(ctx context.Context, vector []float32, topK int) ([]domain.EntityRef, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, entity_type
		 FROM entities
		 WHERE embedding IS NOT NULL
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		pgvector.NewVector(vector), topK,
	)
	if err != nil {
		return nil, fmt.Errorf("search by embedding: %w", err)
	}
	defer rows.Close()
	return scanEntityRefs(rows)
}

// SearchLexical is the fallback when no embedding is available for the
// query term. Plain substring match on the stored name.
func (s *EntityStore) SearchLexical(ctx context.Context, term string, topK int) ([]domain.EntityRef, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, entity_type
		 FROM entities
		 WHERE name ILIKE '%' || $1 || '%'
		 ORDER BY length(name), name
		 LIMIT $2`,
		term, topK,
	)
	if err != nil {
		return nil, fmt.Errorf("search lexical: %w", err)
	}
	defer rows.Close()
	return scanEntityRefs(rows)
}

// WithoutEmbedding lists entities whose vector has not been computed yet,
// oldest first, so backfill makes steady progress.
func (s *EntityStore) WithoutEmbedding(ctx context.Context, limit int) ([]domain.EntityRef, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, entity_type
		 FROM entities
		 WHERE embedding IS NULL
		 ORDER BY created_at
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list without embedding: %w", err)
	}
	defer rows.Close()
	return scanEntityRefs(rows)
}

func (s *EntityStore) UpdateEmbedding(ctx context.Context, id uuid.UUID, vector []float32) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE entities SET embedding = $1, updated_at = now() WHERE id = $2`,
		pgvector.NewVector(vector), id,
	)
	if err != nil {
		return fmt.Errorf("update embedding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEntityRefs(rows pgx.Rows) ([]domain.EntityRef, error) {
	var refs []domain.EntityRef
	for rows.Next() {
		var ref domain.EntityRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Type); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}
	return refs, nil
}
