package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"codetrek/internal/logger"

	"go.uber.org/zap"
)

// MatchThreshold is the score a topic match must exceed to be accepted.
const MatchThreshold = 60

var requiredColumns = []string{"title", "description", "difficulty", "related_topics"}

type Record struct {
	Title         string
	Description   string
	Difficulty    string
	RelatedTopics string
}

// Index is an immutable in-memory problem table. It is safe for concurrent
// use.
type Index struct {
	records []Record
	topics  []string
}

// Load reads the CSV dataset at path. Any failure is logged and yields an
// empty index, so lookups report no match instead of failing.
func Load(path string) *Index {
	f, err := os.Open(path)
	if err != nil {
		logger.Log.Error("Failed to load dataset", zap.String("path", path), zap.Error(err))
		return New(nil)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		logger.Log.Error("Failed to load dataset", zap.String("path", path), zap.Error(err))
		return New(nil)
	}

	logger.Log.Info("Dataset loaded", zap.String("path", path), zap.Int("records", len(records)))
	return New(records)
}

// Parse reads dataset records from CSV with a header row naming at least the
// title, description, difficulty and related_topics columns.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", name)
		}
	}

	field := func(row []string, name string) string {
		if i := cols[name]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		records = append(records, Record{
			Title:         field(row, "title"),
			Description:   field(row, "description"),
			Difficulty:    field(row, "difficulty"),
			RelatedTopics: field(row, "related_topics"),
		})
	}
	return records, nil
}

func New(records []Record) *Index {
	idx := &Index{records: records}
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.RelatedTopics == "" {
			continue
		}
		if _, ok := seen[rec.RelatedTopics]; ok {
			continue
		}
		seen[rec.RelatedTopics] = struct{}{}
		idx.topics = append(idx.topics, rec.RelatedTopics)
	}
	return idx
}

func (idx *Index) Len() int {
	return len(idx.records)
}

// Topics returns the distinct related_topics values in order of first
// appearance.
func (idx *Index) Topics() []string {
	return append([]string(nil), idx.topics...)
}

// MatchTopic returns the related_topics value closest to userTopic, or false
// when nothing scores above MatchThreshold.
func (idx *Index) MatchTopic(userTopic string) (string, bool) {
	topic, _, ok := idx.ScoreTopic(userTopic)
	return topic, ok
}

// ScoreTopic is MatchTopic that also reports the winning score.
func (idx *Index) ScoreTopic(userTopic string) (string, int, bool) {
	topic, score, ok := BestMatch(strings.ToLower(userTopic), idx.topics)
	if !ok || score <= MatchThreshold {
		return "", score, false
	}
	return topic, score, true
}

// FindQuestion picks a random record whose topic is the best match for
// topic and whose difficulty equals difficulty, both ignoring case.
func (idx *Index) FindQuestion(topic, difficulty string) (Record, bool) {
	matched, ok := idx.MatchTopic(topic)
	if !ok {
		return Record{}, false
	}

	var candidates []Record
	for _, rec := range idx.records {
		if strings.EqualFold(rec.RelatedTopics, matched) && strings.EqualFold(rec.Difficulty, difficulty) {
			candidates = append(candidates, rec)
		}
	}
	if len(candidates) == 0 {
		return Record{}, false
	}
	return candidates[rand.IntN(len(candidates))], true
}
