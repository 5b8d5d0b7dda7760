package repositories

import (
	"context"
	"fmt"
	"time"

	"codetrek/internal/models"

	"github.com/jmoiron/sqlx"
)

type UploadRepository interface {
	Create(ctx context.Context, file *models.UploadedFile) error
}

type uploadRepository struct {
	db *sqlx.DB
}

func NewUploadRepository(db *sqlx.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, file *models.UploadedFile) error {
	file.UploadedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO uploaded_files (user_id, file, file_name, file_type, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		file.UserID, file.File, file.FileName, file.FileType, file.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to save uploaded file: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	file.ID = id
	return nil
}
