package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codetrek/internal/common"
	"codetrek/internal/dbs"
	"codetrek/internal/models"

	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"
)

const problemColumns = `id, title, slug, description, difficulty, related_topics, created_at`

type ProblemRepository interface {
	// GetOrCreate returns the problem stored under p.Title, inserting p first
	// if no such title exists. created reports whether this call inserted it.
	GetOrCreate(ctx context.Context, p *models.Problem) (problem *models.Problem, created bool, err error)
	GetByTitle(ctx context.Context, title string) (*models.Problem, error)
	GetByID(ctx context.Context, id int64) (*models.Problem, error)
	GetBySlug(ctx context.Context, slug string) (*models.Problem, error)
	List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error)
}

type problemRepository struct {
	db *sqlx.DB
}

func NewProblemRepository(db *sqlx.DB) ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) GetOrCreate(ctx context.Context, p *models.Problem) (*models.Problem, bool, error) {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}

	query := dbs.InsertIgnore(r.db) + ` INTO problems (title, slug, description, difficulty, related_topics, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, p.Title, p.Slug, p.Description, p.Difficulty, p.RelatedTopics, time.Now().UTC())
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert problem: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	problem, err := r.GetByTitle(ctx, p.Title)
	if err != nil {
		return nil, false, err
	}
	return problem, affected == 1, nil
}

func (r *problemRepository) GetByTitle(ctx context.Context, title string) (*models.Problem, error) {
	return r.getOne(ctx, `title = ?`, title)
}

func (r *problemRepository) GetByID(ctx context.Context, id int64) (*models.Problem, error) {
	return r.getOne(ctx, `id = ?`, id)
}

// GetBySlug returns the oldest problem with the slug. Slugs are not unique
// because distinct titles may normalize to the same slug.
func (r *problemRepository) GetBySlug(ctx context.Context, s string) (*models.Problem, error) {
	return r.getOne(ctx, `slug = ? ORDER BY id LIMIT 1`, s)
}

func (r *problemRepository) getOne(ctx context.Context, where string, arg any) (*models.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems WHERE ` + where

	var problem models.Problem
	if err := r.db.GetContext(ctx, &problem, query, arg); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("problem %v: %w", arg, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return &problem, nil
}

func (r *problemRepository) List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error) {
	var (
		conditions []string
		args       []any
	)
	if topic := strings.TrimSpace(filter.Topic); topic != "" {
		conditions = append(conditions, `LOWER(related_topics) LIKE ?`)
		args = append(args, "%"+strings.ToLower(topic)+"%")
	}
	if difficulty := strings.TrimSpace(filter.Difficulty); difficulty != "" {
		conditions = append(conditions, `LOWER(difficulty) = ?`)
		args = append(args, strings.ToLower(difficulty))
	}

	query := `SELECT ` + problemColumns + ` FROM problems`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	query += ` ORDER BY id`

	problems := []models.Problem{}
	if err := r.db.SelectContext(ctx, &problems, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}
