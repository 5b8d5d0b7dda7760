package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"codetrek/internal/common"
	"codetrek/internal/dbs"
	"codetrek/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := dbs.Open(context.Background(), dbs.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *sqlx.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(db).CreateWithProfile(context.Background(), user))
	return user
}

func TestProblemGetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewProblemRepository(newTestDB(t))

	first, created, err := repo.GetOrCreate(ctx, &models.Problem{
		Title: "Two Sum", Description: "find two numbers", Difficulty: models.DifficultyEasy, RelatedTopics: "Array, Hash Table",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "two-sum", first.Slug)

	second, created, err := repo.GetOrCreate(ctx, &models.Problem{
		Title: "Two Sum", Description: "different text", Difficulty: models.DifficultyHard,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "find two numbers", second.Description)

	all, err := repo.List(ctx, models.ProblemFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProblemGetOrCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewProblemRepository(newTestDB(t))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ids     = map[int64]struct{}{}
		created int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, c, err := repo.GetOrCreate(ctx, &models.Problem{Title: "Climbing Stairs", Difficulty: models.DifficultyEasy})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			ids[p.ID] = struct{}{}
			if c {
				created++
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 1)
	assert.Equal(t, 1, created)
}

func TestProblemLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewProblemRepository(newTestDB(t))

	p, _, err := repo.GetOrCreate(ctx, &models.Problem{Title: "Coin Change", Difficulty: models.DifficultyMedium, RelatedTopics: "Dynamic Programming"})
	require.NoError(t, err)

	byID, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coin Change", byID.Title)

	bySlug, err := repo.GetBySlug(ctx, "coin-change")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)

	_, err = repo.GetByTitle(ctx, "Missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProblemListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewProblemRepository(newTestDB(t))

	for _, p := range []models.Problem{
		{Title: "Coin Change", Difficulty: models.DifficultyMedium, RelatedTopics: "Array, Dynamic Programming"},
		{Title: "Climbing Stairs", Difficulty: models.DifficultyEasy, RelatedTopics: "Math, Dynamic Programming"},
		{Title: "Two Sum", Difficulty: models.DifficultyEasy, RelatedTopics: "Array, Hash Table"},
	} {
		_, _, err := repo.GetOrCreate(ctx, &p)
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, models.ProblemFilter{Topic: "dynamic"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.List(ctx, models.ProblemFilter{Topic: "array", Difficulty: "EASY"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Two Sum", got[0].Title)

	got, err = repo.List(ctx, models.ProblemFilter{Difficulty: "Hard"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserCreateWithProfile(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)

	user := createUser(t, db, "ada")
	assert.NotZero(t, user.ID)

	profile, err := NewProfileRepository(db).GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", profile.Username)
	assert.Empty(t, profile.Bio)

	dup := &models.User{Username: "ada", Email: "other@example.com", PasswordHash: "hash"}
	assert.ErrorIs(t, users.CreateWithProfile(ctx, dup), common.ErrConflict)

	byEmail, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	first, err := users.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, first.ID)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserFirstEmpty(t *testing.T) {
	_, err := NewUserRepository(newTestDB(t)).First(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createUser(t, db, "grace")
	profiles := NewProfileRepository(db)

	profile, err := profiles.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	profile.Bio = "compilers"
	profile.SkillLevel = models.SkillAdvanced
	require.NoError(t, profiles.Update(ctx, profile))

	reloaded, err := profiles.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "compilers", reloaded.Bio)
	assert.Equal(t, models.SkillAdvanced, reloaded.SkillLevel)

	assert.ErrorIs(t, profiles.Update(ctx, &models.UserProfile{UserID: 404}), common.ErrNotFound)
}

func TestChatHistoryOrdering(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createUser(t, db, "linus")
	other := createUser(t, db, "ken")
	chats := NewChatRepository(db)

	same := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, msg := range []*models.ChatMessage{
		{UserID: user.ID, MessageType: models.MessageTypeUser, Content: "later", Timestamp: same.Add(time.Minute)},
		{UserID: user.ID, MessageType: models.MessageTypeUser, Content: "first", Timestamp: same},
		{UserID: user.ID, MessageType: models.MessageTypeBot, Content: "second", Timestamp: same},
		{UserID: other.ID, MessageType: models.MessageTypeUser, Content: "not mine", Timestamp: same},
	} {
		require.NoError(t, chats.Create(ctx, msg))
		assert.NotZero(t, msg.ID)
	}

	history, err := chats.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "second", history[1].Content)
	assert.Equal(t, "later", history[2].Content)
}

func TestChatCreatePair(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createUser(t, db, "grace")
	chats := NewChatRepository(db)

	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	userMsg := &models.ChatMessage{UserID: user.ID, MessageType: models.MessageTypeUser, Content: "hi", Timestamp: at}
	botMsg := &models.ChatMessage{UserID: user.ID, MessageType: models.MessageTypeBot, Content: "hello", Timestamp: at}
	require.NoError(t, chats.CreatePair(ctx, userMsg, botMsg))
	assert.Less(t, userMsg.ID, botMsg.ID)

	// A bad second row rolls back the first.
	orphan := &models.ChatMessage{UserID: user.ID, MessageType: models.MessageTypeUser, Content: "again", Timestamp: at}
	broken := &models.ChatMessage{UserID: user.ID, MessageType: "robot", Content: "x", Timestamp: at}
	require.Error(t, chats.CreatePair(ctx, orphan, broken))

	history, err := chats.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hi", history[0].Content)
	assert.Equal(t, "hello", history[1].Content)
}

func TestUploadAndSubmissions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createUser(t, db, "barbara")

	file := &models.UploadedFile{UserID: user.ID, File: "uploads/x.txt", FileName: "notes.txt", FileType: "text/plain"}
	require.NoError(t, NewUploadRepository(db).Create(ctx, file))
	assert.NotZero(t, file.ID)
	assert.False(t, file.UploadedAt.IsZero())

	subs := NewSubmissionRepository(db)
	require.NoError(t, subs.Create(ctx, &models.CodeSubmission{UserID: user.ID, ProblemTitle: "Two Sum", Code: "a", Feedback: "ok"}))
	require.NoError(t, subs.Create(ctx, &models.CodeSubmission{UserID: user.ID, ProblemTitle: "Coin Change", Code: "b", Feedback: "ok"}))

	list, err := subs.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Coin Change", list[0].ProblemTitle)
}

func TestConceptUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewConceptRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, &models.ConceptDocument{Collection: "c", DocID: "dp", Content: "v1", Embedding: "[1,0]"}))
	require.NoError(t, repo.Upsert(ctx, &models.ConceptDocument{Collection: "c", DocID: "dp", Content: "v2", Embedding: "[0,1]"}))
	require.NoError(t, repo.Upsert(ctx, &models.ConceptDocument{Collection: "other", DocID: "dp", Content: "x", Embedding: "[1]"}))

	docs, err := repo.ListByCollection(ctx, "c")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "v2", docs[0].Content)

	count, err := repo.Count(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, isDuplicate(&mysql.MySQLError{Number: 1045}))
	assert.True(t, isDuplicate(errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)")))
	assert.False(t, isDuplicate(errors.New("disk I/O error")))
}
