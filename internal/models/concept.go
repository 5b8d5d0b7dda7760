package models

import "time"

// ConceptDocument is one entry of a concept store collection. Embedding is
// stored as a JSON array.
type ConceptDocument struct {
	ID         int64     `db:"id"`
	Collection string    `db:"collection"`
	DocID      string    `db:"doc_id"`
	Content    string    `db:"content"`
	Embedding  string    `db:"embedding"`
	CreatedAt  time.Time `db:"created_at"`
}
