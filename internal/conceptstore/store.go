package conceptstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"codetrek/internal/logger"
	"codetrek/internal/models"
	"codetrek/internal/repositories"
	"codetrek/internal/tutor"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Document is concept text to be indexed under ID.
type Document struct {
	ID      string
	Content string
}

type Match struct {
	DocID   string  `json:"doc_id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Store is a vector-similarity collection of concept documents.
type Store struct {
	repo       repositories.ConceptRepository
	embedder   tutor.Embedder
	collection string
	workers    int
}

func New(repo repositories.ConceptRepository, embedder tutor.Embedder, collection string, workers int) *Store {
	if workers <= 0 {
		workers = 1
	}
	return &Store{repo: repo, embedder: embedder, collection: collection, workers: workers}
}

func (s *Store) Collection() string {
	return s.collection
}

// Query returns the content of the document closest to text, or "" when the
// collection is empty, nothing is similar at all, or anything fails.
func (s *Store) Query(ctx context.Context, text string, topK int) string {
	matches, err := s.Search(ctx, text, topK)
	if err != nil {
		logger.Log.Error("Concept store query failed",
			zap.String("collection", s.collection),
			zap.Error(err),
		)
		return ""
	}
	if len(matches) == 0 || matches[0].Score <= 0 {
		return ""
	}
	return matches[0].Content
}

// Search ranks the collection by cosine similarity to text and returns at
// most topK matches, best first. Documents embedded with a different
// dimension than the query are skipped.
func (s *Store) Search(ctx context.Context, text string, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 1
	}

	docs, err := s.repo.ListByCollection(ctx, s.collection)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	query, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(docs))
	mismatched := 0
	for _, doc := range docs {
		var vec []float32
		if err := json.Unmarshal([]byte(doc.Embedding), &vec); err != nil {
			logger.Log.Warn("Skipping concept with unreadable embedding",
				zap.String("doc_id", doc.DocID),
				zap.Error(err),
			)
			continue
		}
		if len(vec) != len(query) {
			mismatched++
			continue
		}
		matches = append(matches, Match{
			DocID:   doc.DocID,
			Content: doc.Content,
			Score:   cosine(query, vec),
		})
	}

	if mismatched > 0 {
		logger.Log.Warn("Skipping concepts with a different embedding dimension",
			zap.String("collection", s.collection),
			zap.Int("query_dim", len(query)),
			zap.Int("skipped", mismatched),
		)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Add embeds docs concurrently and upserts them into the collection.
func (s *Store) Add(ctx context.Context, docs []Document) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, doc := range docs {
		g.Go(func() error {
			vec, err := s.embedder.Embed(ctx, doc.Content)
			if err != nil {
				return fmt.Errorf("embed %s: %w", doc.ID, err)
			}
			raw, err := json.Marshal(vec)
			if err != nil {
				return fmt.Errorf("marshal embedding for %s: %w", doc.ID, err)
			}
			return s.repo.Upsert(ctx, &models.ConceptDocument{
				Collection: s.collection,
				DocID:      doc.ID,
				Content:    doc.Content,
				Embedding:  string(raw),
			})
		})
	}
	return g.Wait()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, s.collection)
}

// cosine returns 0 for mismatched or zero-length vectors.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
