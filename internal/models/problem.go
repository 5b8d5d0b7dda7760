package models

import (
	"strings"
	"time"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type Problem struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Slug          string    `db:"slug" json:"slug"`
	Description   string    `db:"description" json:"description"`
	Difficulty    string    `db:"difficulty" json:"difficulty"`
	RelatedTopics string    `db:"related_topics" json:"related_topics"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ProblemFilter narrows catalog listings. Empty fields are ignored.
type ProblemFilter struct {
	Topic      string
	Difficulty string
}

// NormalizeDifficulty maps any casing of a known difficulty to its canonical
// form and reports whether it was known.
func NormalizeDifficulty(d string) (string, bool) {
	for _, known := range []string{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if strings.EqualFold(strings.TrimSpace(d), known) {
			return known, true
		}
	}
	return d, false
}
