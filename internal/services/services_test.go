package services

import (
	"context"
	"testing"

	"codetrek/internal/dbs"
	"codetrek/internal/models"
	"codetrek/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := dbs.Open(context.Background(), dbs.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sqlx.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, repositories.NewUserRepository(db).CreateWithProfile(context.Background(), user))
	return user
}
