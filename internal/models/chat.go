package models

import "time"

const (
	MessageTypeUser = "user"
	MessageTypeBot  = "bot"
)

type ChatMessage struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"-"`
	MessageType string    `db:"message_type" json:"message_type"`
	Content     string    `db:"content" json:"content"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
}

// ChatExchange is the pair of log entries produced by one chat turn.
type ChatExchange struct {
	UserMessage *ChatMessage `json:"user_message"`
	BotResponse *ChatMessage `json:"bot_response"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type GuideRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type GuideResponse struct {
	Guide string `json:"guide"`
}
