package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusWithoutDatabase(t *testing.T) {
	got := NewService(nil, true, false, "local").Status(context.Background())
	assert.Equal(t, true, got["ok"])
	assert.Equal(t, "memory", got["database"])
	assert.Equal(t, map[string]bool{"gemini": true, "openrouter": false}, got["llm"])
}

func TestStatusPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	got := NewService(db, false, true, "s3").Status(context.Background())
	assert.Equal(t, true, got["ok"])
	assert.Equal(t, "postgres", got["database"])

	mock.ExpectPing().WillReturnError(errors.New("down"))
	got = NewService(db, false, true, "s3").Status(context.Background())
	assert.Equal(t, false, got["ok"])
	assert.Equal(t, "unreachable", got["database"])
	require.NoError(t, mock.ExpectationsWereMet())
}
