package screenings

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used in dev mode and
// tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
	results map[string]Result
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		resumes: make(map[string]Resume),
		results: make(map[string]Result),
	}
}

// CreateResume stores a résumé record.
func (r *MemoryRepo) CreateResume(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[resume.ID] = resume
	return nil
}

// CreateResult stores a screening result.
func (r *MemoryRepo) CreateResult(ctx context.Context, result Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[result.ID] = result
	return nil
}

// GetResult returns a screening result by ID.
func (r *MemoryRepo) GetResult(ctx context.Context, id string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.results[id]
	if !ok {
		return Result{}, ErrNotFound
	}
	return result, nil
}

// UpdateFeedback records human feedback on a stored screening result.
func (r *MemoryRepo) UpdateFeedback(ctx context.Context, id string, score float64, comment string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result, ok := r.results[id]
	if !ok {
		return ErrNotFound
	}
	result.HumanFeedbackScore = &score
	result.HumanFeedbackComment = comment
	r.results[id] = result
	return nil
}

// GetResume returns a résumé by ID.
func (r *MemoryRepo) GetResume(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}
