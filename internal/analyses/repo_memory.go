package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps analyses for the life of the process and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Analysis)}
}

// Create stores the analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	return nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// Complete records the final status and result of an analysis.
func (r *MemoryRepo) Complete(ctx context.Context, analysisID, status string, result *Result, errorCode, errorMessage string, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}
	analysis.Status = status
	if result != nil {
		stored := *result
		analysis.Result = &stored
	}
	analysis.ErrorCode = errorCode
	analysis.ErrorMessage = errorMessage
	analysis.CompletedAt = &completedAt
	if analysis.Model == "" && result != nil {
		analysis.Model = result.ModelUsed
	}
	r.byID[analysisID] = analysis
	return nil
}

// List returns analyses newest first. Limits follow PGRepo: 0 or less means 20, at most 100.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	r.mu.RLock()
	all := make([]Analysis, 0, len(r.byID))
	for _, a := range r.byID {
		all = append(all, a)
	}
	r.mu.RUnlock()

	if offset >= len(all) {
		return []Analysis{}, nil
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	end := len(all)
	if offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}
