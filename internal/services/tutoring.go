package services

import (
	"context"
	"strings"
	"time"

	"codetrek/internal/common"
	"codetrek/internal/dataset"
	"codetrek/internal/logger"
	"codetrek/internal/models"
	"codetrek/internal/repositories"

	"go.uber.org/zap"
)

// QuestionFinder resolves a topic and difficulty to a dataset row.
type QuestionFinder interface {
	FindQuestion(topic, difficulty string) (dataset.Record, bool)
}

// ConceptQuerier returns the stored concept closest to text, or "".
type ConceptQuerier interface {
	Query(ctx context.Context, text string, topK int) string
}

// Generator always returns reply text, possibly an error description.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

type TutorService struct {
	questions   QuestionFinder
	concepts    ConceptQuerier
	tutor       Generator
	problems    repositories.ProblemRepository
	chats       repositories.ChatRepository
	submissions repositories.SubmissionRepository
	topK        int
}

func NewTutorService(
	questions QuestionFinder,
	concepts ConceptQuerier,
	tutor Generator,
	problems repositories.ProblemRepository,
	chats repositories.ChatRepository,
	submissions repositories.SubmissionRepository,
	topK int,
) *TutorService {
	if topK <= 0 {
		topK = 1
	}
	return &TutorService{
		questions:   questions,
		concepts:    concepts,
		tutor:       tutor,
		problems:    problems,
		chats:       chats,
		submissions: submissions,
		topK:        topK,
	}
}

// ExplainConcept answers the user's message with help from the concept
// store and logs the message and the reply as one turn.
func (s *TutorService) ExplainConcept(ctx context.Context, userID int64, message string) (*models.ChatExchange, error) {
	if strings.TrimSpace(message) == "" {
		return nil, common.NewValidationError("", "Message cannot be empty")
	}

	userMsg := &models.ChatMessage{
		UserID:      userID,
		MessageType: models.MessageTypeUser,
		Content:     message,
		Timestamp:   time.Now().UTC(),
	}

	concept := s.concepts.Query(ctx, message, s.topK)
	reply := s.tutor.Generate(ctx, conceptPrompt(message, concept))

	botMsg := &models.ChatMessage{
		UserID:      userID,
		MessageType: models.MessageTypeBot,
		Content:     reply,
		Timestamp:   time.Now().UTC(),
	}
	if botMsg.Timestamp.Before(userMsg.Timestamp) {
		botMsg.Timestamp = userMsg.Timestamp
	}
	if err := s.chats.CreatePair(ctx, userMsg, botMsg); err != nil {
		return nil, err
	}

	return &models.ChatExchange{UserMessage: userMsg, BotResponse: botMsg}, nil
}

// ProblemByTopic picks a dataset problem for the topic and difficulty and
// returns its catalog record, creating it on first use.
func (s *TutorService) ProblemByTopic(ctx context.Context, topic, difficulty string) (*models.Problem, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, common.NewValidationError("", "Topic is required")
	}
	if strings.TrimSpace(difficulty) == "" {
		difficulty = models.DifficultyEasy
	}

	rec, ok := s.questions.FindQuestion(topic, difficulty)
	if !ok {
		return nil, common.NotFound("No matching questions found")
	}

	level, _ := models.NormalizeDifficulty(rec.Difficulty)
	problem, created, err := s.problems.GetOrCreate(ctx, &models.Problem{
		Title:         rec.Title,
		Description:   rec.Description,
		Difficulty:    level,
		RelatedTopics: rec.RelatedTopics,
	})
	if err != nil {
		return nil, err
	}

	if created {
		logger.Log.Info("Problem added to catalog", zap.Int64("problem_id", problem.ID), zap.String("title", problem.Title))
	}
	return problem, nil
}

func (s *TutorService) GuideThroughProblem(ctx context.Context, title, description string) (string, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return "", common.NewValidationError("", "Title and description are required.")
	}
	return s.tutor.Generate(ctx, guidePrompt(title, description)), nil
}

// EvaluateCode asks the tutor to review code. A non-zero userID also records
// the submission; failing to record it does not fail the call.
func (s *TutorService) EvaluateCode(ctx context.Context, userID int64, title, description, code string) (string, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(code) == "" {
		return "", common.NewValidationError("", "Title and code are required")
	}

	feedback := s.tutor.Generate(ctx, evaluationPrompt(title, description, code))

	if userID != 0 {
		sub := &models.CodeSubmission{UserID: userID, ProblemTitle: title, Code: code, Feedback: feedback}
		if err := s.submissions.Create(ctx, sub); err != nil {
			logger.Log.Warn("Failed to record code submission", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return feedback, nil
}

func (s *TutorService) ChatHistory(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	return s.chats.ListByUser(ctx, userID)
}

func (s *TutorService) Submissions(ctx context.Context, userID int64) ([]models.CodeSubmission, error) {
	return s.submissions.ListByUser(ctx, userID)
}
