package dbs

import (
	"context"
	"testing"

	"codetrek/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAppliesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, table := range []string{"users", "user_profiles", "problems", "chat_messages", "uploaded_files", "code_submissions", "concept_documents"} {
		var name string
		err := db.GetContext(ctx, &name, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}

	// Migrations are idempotent.
	require.NoError(t, Migrate(ctx, db))
}

func TestInsertIgnore(t *testing.T) {
	db, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.Equal(t, "INSERT OR IGNORE", InsertIgnore(db))
}

func TestDSN(t *testing.T) {
	cfg := &configs.Config{DBDriver: DriverMySQL, DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "3306", DBName: "codetrek"}
	assert.Equal(t, "u:p@tcp(db:3306)/codetrek?charset=utf8mb4&parseTime=True&loc=UTC", DSN(cfg))

	cfg = &configs.Config{DBDriver: DriverSQLite, DBPath: "/tmp/x.db"}
	assert.Equal(t, "/tmp/x.db", DSN(cfg))
}

func TestOpenRedisDisabled(t *testing.T) {
	client, err := OpenRedis(context.Background(), &configs.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
