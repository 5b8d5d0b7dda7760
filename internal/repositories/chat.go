package repositories

import (
	"context"
	"fmt"

	"codetrek/internal/models"

	"github.com/jmoiron/sqlx"
)

type ChatRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	CreatePair(ctx context.Context, userMsg, botMsg *models.ChatMessage) error
	ListByUser(ctx context.Context, userID int64) ([]models.ChatMessage, error)
}

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Create appends msg to the log. The caller sets Timestamp.
func (r *chatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	return insertMessage(ctx, r.db, msg)
}

// CreatePair appends one chat turn. Either both messages are stored or
// neither is.
func (r *chatRepository) CreatePair(ctx context.Context, userMsg, botMsg *models.ChatMessage) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertMessage(ctx, tx, userMsg); err != nil {
		return err
	}
	if err := insertMessage(ctx, tx, botMsg); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		userMsg.ID, botMsg.ID = 0, 0
		return fmt.Errorf("failed to commit chat turn: %w", err)
	}
	return nil
}

func insertMessage(ctx context.Context, exec sqlx.ExecerContext, msg *models.ChatMessage) error {
	result, err := exec.ExecContext(ctx,
		`INSERT INTO chat_messages (user_id, message_type, content, timestamp) VALUES (?, ?, ?, ?)`,
		msg.UserID, msg.MessageType, msg.Content, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	msg.ID = id
	return nil
}

func (r *chatRepository) ListByUser(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	query := `SELECT id, user_id, message_type, content, timestamp
              FROM chat_messages WHERE user_id = ? ORDER BY timestamp, id`

	messages := []models.ChatMessage{}
	if err := r.db.SelectContext(ctx, &messages, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	return messages, nil
}
