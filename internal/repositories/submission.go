package repositories

import (
	"context"
	"fmt"
	"time"

	"codetrek/internal/models"

	"github.com/jmoiron/sqlx"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.CodeSubmission) error
	ListByUser(ctx context.Context, userID int64) ([]models.CodeSubmission, error)
}

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, sub *models.CodeSubmission) error {
	sub.SubmittedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO code_submissions (user_id, problem_title, code, feedback, submitted_at) VALUES (?, ?, ?, ?, ?)`,
		sub.UserID, sub.ProblemTitle, sub.Code, sub.Feedback, sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	sub.ID = id
	return nil
}

// ListByUser returns the user's submissions, newest first.
func (r *submissionRepository) ListByUser(ctx context.Context, userID int64) ([]models.CodeSubmission, error) {
	query := `SELECT id, user_id, problem_title, code, feedback, submitted_at
              FROM code_submissions
              WHERE user_id = ?
              ORDER BY submitted_at DESC, id DESC`

	subs := []models.CodeSubmission{}
	if err := r.db.SelectContext(ctx, &subs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user submissions: %w", err)
	}
	return subs, nil
}
