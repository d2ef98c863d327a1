package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/normalize"
)

// upsertChunkSize bounds the number of relations written per transaction
// so bulk ingestion of large abstract sets cannot hold one giant tx open.
const upsertChunkSize = 200

// RelationStore persists refined relations as edges between entity rows,
// with publications linked through relation_publications.
type RelationStore struct {
	db *pgxpool.Pool
}

func NewRelationStore(db *pgxpool.Pool) *RelationStore {
	return &RelationStore{db: db}
}

var _ domain.RelationStore = (*RelationStore)(nil)

// UpsertBatch writes relations in chunks, one transaction per chunk.
// Entities are upserted by sanitized key, so re-ingesting the same
// abstract updates types in place instead of duplicating nodes.
func (s *RelationStore) UpsertBatch(ctx context.Context, relations []domain.RefinedRelation) error {
	for start := 0; start < len(relations); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(relations) {
			end = len(relations)
		}
		if err := s.upsertChunk(ctx, relations[start:end]); err != nil {
			return fmt.Errorf("upsert chunk at %d: %w", start, err)
		}
	}
	return nil
}

func (s *RelationStore) upsertChunk(ctx context.Context, relations []domain.RefinedRelation) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rel := range relations {
		if err := upsertRelation(ctx, tx, rel); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func upsertRelation(ctx context.Context, tx pgx.Tx, rel domain.RefinedRelation) error {
	subjectID, err := upsertEntity(ctx, tx, rel.Entity1Name, rel.Entity1Type)
	if err != nil {
		return fmt.Errorf("upsert subject %q: %w", rel.Entity1Name, err)
	}
	objectID, err := upsertEntity(ctx, tx, rel.Entity2Name, rel.Entity2Type)
	if err != nil {
		return fmt.Errorf("upsert object %q: %w", rel.Entity2Name, err)
	}

	var relationID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO relations (id, subject_id, predicate, object_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (subject_id, predicate, object_id)
		 DO UPDATE SET updated_at = now()
		 RETURNING id`,
		uuid.New(), subjectID, rel.RelationType, objectID,
	).Scan(&relationID)
	if err != nil {
		return fmt.Errorf("upsert relation: %w", err)
	}

	if rel.PubID == "" {
		return nil
	}
	var pubID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO publications (id, name)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		uuid.New(), rel.PubID,
	).Scan(&pubID)
	if err != nil {
		return fmt.Errorf("upsert publication %q: %w", rel.PubID, err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO relation_publications (relation_id, publication_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		relationID, pubID,
	)
	if err != nil {
		return fmt.Errorf("link publication: %w", err)
	}
	return nil
}

func upsertEntity(ctx context.Context, tx pgx.Tx, name string, entityType domain.EntityType) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`INSERT INTO entities (id, key, name, entity_type)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (key) DO UPDATE SET entity_type = EXCLUDED.entity_type, updated_at = now()
		 RETURNING id`,
		uuid.New(), normalize.Sanitize(name), name, entityType,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

const relationSelect = `
	SELECT r.id, r.predicate,
	       s.id, s.name, s.entity_type,
	       o.id, o.name, o.entity_type,
	       COALESCE(array_agg(p.name ORDER BY p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
	FROM relations r
	JOIN entities s ON s.id = r.subject_id
	JOIN entities o ON o.id = r.object_id
	LEFT JOIN relation_publications rp ON rp.relation_id = r.id
	LEFT JOIN publications p ON p.id = rp.publication_id`

const relationGroup = ` GROUP BY r.id, r.predicate, s.id, s.name, s.entity_type, o.id, o.name, o.entity_type`

// FetchByIDPair returns relations whose subject AND object both fall in
// the given id set. This is the pairwise pass of context expansion.
func (s *RelationStore) FetchByIDPair(ctx context.Context, ids []uuid.UUID) ([]domain.Relation, error) {
	rows, err := s.db.Query(ctx,
		relationSelect+`
		 WHERE r.subject_id = ANY($1::uuid[]) AND r.object_id = ANY($1::uuid[])`+
			relationGroup+` ORDER BY r.created_at, r.id`,
		uuidStrings(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch by id pair: %w", err)
	}
	defer rows.Close()
	return scanRelations(rows)
}

// FetchByEntity returns up to limit relations where the entity occupies
// the given side.
func (s *RelationStore) FetchByEntity(ctx context.Context, entityID uuid.UUID, direction domain.Direction, limit int) ([]domain.Relation, error) {
	column := "r.subject_id"
	if direction == domain.DirectionObject {
		column = "r.object_id"
	}
	rows, err := s.db.Query(ctx,
		relationSelect+`
		 WHERE `+column+` = $1`+
			relationGroup+` ORDER BY r.created_at, r.id LIMIT $2`,
		entityID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch by entity: %w", err)
	}
	defer rows.Close()
	return scanRelations(rows)
}

// SearchPattern runs a substring search over the stored graph. The filter
// narrows where the text must match: the subject, the predicate, the
// object, or anywhere in the triple.
func (s *RelationStore) SearchPattern(ctx context.Context, text, filter string, limit int) ([]domain.Triple, error) {
	var where string
	switch filter {
	case "node":
		where = `s.name ILIKE $1`
	case "relation":
		where = `r.predicate ILIKE $1`
	case "entity":
		where = `o.name ILIKE $1`
	default:
		where = `s.name ILIKE $1 OR r.predicate ILIKE $1 OR o.name ILIKE $1`
	}
	rows, err := s.db.Query(ctx,
		`SELECT s.name, r.predicate, o.name
		 FROM relations r
		 JOIN entities s ON s.id = r.subject_id
		 JOIN entities o ON o.id = r.object_id
		 WHERE `+where+`
		 ORDER BY s.name, r.predicate, o.name
		 LIMIT $2`,
		"%"+text+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search pattern: %w", err)
	}
	defer rows.Close()

	var triples []domain.Triple
	for rows.Next() {
		var t domain.Triple
		if err := rows.Scan(&t.Subject, &t.Predicate, &t.Object); err != nil {
			return nil, fmt.Errorf("scan triple: %w", err)
		}
		triples = append(triples, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate triples: %w", err)
	}
	return triples, nil
}

// All returns the full stored graph. Feeds the reasoning refresh; not
// meant to serve interactive queries.
func (s *RelationStore) All(ctx context.Context) ([]domain.Relation, error) {
	rows, err := s.db.Query(ctx,
		relationSelect+relationGroup+` ORDER BY r.created_at, r.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch all relations: %w", err)
	}
	defer rows.Close()
	return scanRelations(rows)
}

// ReplaceAll drops every stored relation and re-inserts the materialized
// batch in one transaction, so readers never observe a half-replaced
// graph. Entities and publications survive the swap.
func (s *RelationStore) ReplaceAll(ctx context.Context, relations []domain.RefinedRelation) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM relation_publications`); err != nil {
		return fmt.Errorf("clear relation publications: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM relations`); err != nil {
		return fmt.Errorf("clear relations: %w", err)
	}
	for _, rel := range relations {
		if err := upsertRelation(ctx, tx, rel); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func scanRelations(rows pgx.Rows) ([]domain.Relation, error) {
	var relations []domain.Relation
	for rows.Next() {
		var rel domain.Relation
		var pubNames []string
		err := rows.Scan(
			&rel.ID, &rel.Predicate,
			&rel.Subject.ID, &rel.Subject.Name, &rel.Subject.Type,
			&rel.Object.ID, &rel.Object.Name, &rel.Object.Type,
			&pubNames,
		)
		if err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		for _, name := range pubNames {
			rel.Publications = append(rel.Publications, domain.PublicationRef{Name: name})
		}
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relations: %w", err)
	}
	return relations, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
