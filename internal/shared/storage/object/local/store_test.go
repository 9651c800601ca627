package local

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/storage/object"
)

func TestPutThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "reports/a-1.pdf", "application/pdf", strings.NewReader("%PDF-1.3 body"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("%PDF-1.3 body")), n)

	data, err := object.ReadAll(ctx, store, "reports/a-1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 body", string(data))
}

func TestOpenMissingReturnsErrNotFound(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "reports/missing.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, object.ErrNotFound))
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Put(context.Background(), "../escape.txt", "text/plain", strings.NewReader("x"))
	require.Error(t, err)
	_, err = store.Open(context.Background(), "/etc/passwd")
	require.Error(t, err)
}

func TestPutOverwrites(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	_, err := store.Put(ctx, "k.txt", "text/plain", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "k.txt", "text/plain", strings.NewReader("second"))
	require.NoError(t, err)

	data, err := object.ReadAll(ctx, store, "k.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
