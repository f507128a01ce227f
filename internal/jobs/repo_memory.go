package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Job // jobID -> job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Job)}
}

// Create stores a new job.
func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.ID] = job
	return nil
}

// GetByPublicFormID resolves the public form token to a job.
func (r *MemoryRepo) GetByPublicFormID(ctx context.Context, publicFormID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.data {
		if job.PublicFormID == publicFormID {
			return job, nil
		}
	}
	return Job{}, ErrNotFound
}

// GetByID returns a job by id.
func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// ListByCompany returns the company's jobs, newest first.
func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0)
	for _, job := range r.data {
		if job.CompanyID == companyID {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// CountByCompany returns the number of jobs posted by a company.
func (r *MemoryRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, job := range r.data {
		if job.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

// Delete removes a job owned by the company. Applications referencing the
// job are intentionally left in place for historical analytics.
func (r *MemoryRepo) Delete(ctx context.Context, companyID, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.data[jobID]
	if !ok || job.CompanyID != companyID {
		return ErrNotFound
	}
	delete(r.data, jobID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
