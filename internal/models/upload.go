package models

import "time"

type UploadedFile struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user"`
	File       string    `db:"file" json:"file"`
	FileURL    string    `db:"-" json:"file_url,omitempty"`
	FileName   string    `db:"file_name" json:"file_name"`
	FileType   string    `db:"file_type" json:"file_type"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}
