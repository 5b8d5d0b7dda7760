package repositories

import (
	"context"
	"fmt"
	"time"

	"codetrek/internal/dbs"
	"codetrek/internal/models"

	"github.com/jmoiron/sqlx"
)

type ConceptRepository interface {
	// Upsert replaces the document with the same collection and doc ID.
	Upsert(ctx context.Context, doc *models.ConceptDocument) error
	ListByCollection(ctx context.Context, collection string) ([]models.ConceptDocument, error)
	Count(ctx context.Context, collection string) (int, error)
}

type conceptRepository struct {
	db *sqlx.DB
}

func NewConceptRepository(db *sqlx.DB) ConceptRepository {
	return &conceptRepository{db: db}
}

func (r *conceptRepository) Upsert(ctx context.Context, doc *models.ConceptDocument) error {
	doc.CreatedAt = time.Now().UTC()

	query := `INSERT INTO concept_documents (collection, doc_id, content, embedding, created_at)
              VALUES (?, ?, ?, ?, ?)
              ON DUPLICATE KEY UPDATE content = VALUES(content), embedding = VALUES(embedding), created_at = VALUES(created_at)`
	if r.db.DriverName() == dbs.DriverSQLite {
		query = `INSERT INTO concept_documents (collection, doc_id, content, embedding, created_at)
              VALUES (?, ?, ?, ?, ?)
              ON CONFLICT (collection, doc_id) DO UPDATE SET content = excluded.content, embedding = excluded.embedding, created_at = excluded.created_at`
	}

	if _, err := r.db.ExecContext(ctx, query, doc.Collection, doc.DocID, doc.Content, doc.Embedding, doc.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert concept %s/%s: %w", doc.Collection, doc.DocID, err)
	}
	return nil
}

func (r *conceptRepository) ListByCollection(ctx context.Context, collection string) ([]models.ConceptDocument, error) {
	query := `SELECT id, collection, doc_id, content, embedding, created_at
              FROM concept_documents WHERE collection = ? ORDER BY id`

	docs := []models.ConceptDocument{}
	if err := r.db.SelectContext(ctx, &docs, query, collection); err != nil {
		return nil, fmt.Errorf("failed to list concepts: %w", err)
	}
	return docs, nil
}

func (r *conceptRepository) Count(ctx context.Context, collection string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM concept_documents WHERE collection = ?`, collection); err != nil {
		return 0, fmt.Errorf("failed to count concepts: %w", err)
	}
	return count, nil
}
