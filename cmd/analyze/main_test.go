package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRequiresResume(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume path is required")
	assert.Empty(t, out.String())
}

func TestRunReturnsReadErrors(t *testing.T) {
	err := run(context.Background(), []string{"-resume", filepath.Join(t.TempDir(), "missing.txt")}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read resume")
}

func TestRunWithoutLLMReturnsErrorAndWritesNothing(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	dir := t.TempDir()
	resume := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(resume, []byte("Jane Doe\nGo engineer"), 0o600))
	outPath := filepath.Join(dir, "report.pdf")

	err := run(context.Background(), []string{"-resume", resume, "-out", outPath}, &bytes.Buffer{})
	require.Error(t, err)
	assert.NotEmpty(t, err.Error())
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, splitList(" Go, ,SQL "))
	assert.Nil(t, splitList(""))
}
