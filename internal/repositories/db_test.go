package repositories

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/internal/models"
)

func TestMigrations_Embedded(t *testing.T) {
	m, err := Migrations()
	require.NoError(t, err)

	names, err := fs.Glob(m, "*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"000001_init.up.sql", "000001_init.down.sql"}, names)

	up, err := fs.ReadFile(m, "000001_init.up.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "emotion_records", "meditation_sessions", "chat_sessions", "chat_messages"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("op", nil))
	assert.ErrorIs(t, mapError("op", pgx.ErrNoRows), models.ErrNotFound)
	assert.ErrorIs(t, mapError("op", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_username_key"}), models.ErrConflict)

	other := errors.New("connection reset")
	err := mapError("op", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}
