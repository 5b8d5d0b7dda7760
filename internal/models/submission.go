package models

import "time"

// CodeSubmission records code sent for AI review together with the feedback.
type CodeSubmission struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"-"`
	ProblemTitle string    `db:"problem_title" json:"problem_title"`
	Code         string    `db:"code" json:"code"`
	Feedback     string    `db:"feedback" json:"feedback"`
	SubmittedAt  time.Time `db:"submitted_at" json:"submitted_at"`
}

type EvaluateCodeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

type EvaluateCodeResponse struct {
	Feedback string `json:"feedback"`
}
