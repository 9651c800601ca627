package object

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/util"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// Key joins sanitized path segments into a storage key.
func Key(segments ...string) (string, error) {
	clean := make([]string, 0, len(segments))
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			continue
		}
		safe, err := util.SanitizeFileName(s)
		if err != nil {
			return "", err
		}
		clean = append(clean, safe)
	}
	if len(clean) == 0 {
		return "", errors.New("empty storage key")
	}
	return path.Join(clean...), nil
}

// ReadAll opens a key and reads it fully.
func ReadAll(ctx context.Context, store ObjectStore, storageKey string) ([]byte, error) {
	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}
