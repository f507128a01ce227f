package applications

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Application // id -> application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Application)}
}

// Create stores a new application.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[app.ID] = cloneApp(app)
	return nil
}

// GetByID returns a stable copy of an application.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.data[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return cloneApp(app), nil
}

// ListByJob returns applications for a job, highest overall score first.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Application, 0)
	for _, app := range r.data {
		if app.JobID == jobID {
			out = append(out, cloneApp(app))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Scores.OverallScore > out[j].Scores.OverallScore
	})
	return out, nil
}

// ListByCompany returns the company's applications, newest first.
func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Application, 0)
	for _, app := range r.data {
		if app.CompanyID == companyID {
			out = append(out, cloneApp(app))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus applies a guarded status transition. The record is untouched
// when the transition is illegal.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, newStatus Status) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	if !ValidStatus(newStatus) {
		return Application{}, ErrInvalidTransition
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.data[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	if !CanTransition(app.Status, newStatus) {
		return Application{}, ErrInvalidTransition
	}
	app.Status = newStatus
	app.UpdatedAt = time.Now().UTC()
	r.data[id] = app
	return cloneApp(app), nil
}

// UpdateEvaluation records the evaluator's scores and tier verbatim, moves
// the application to evaluated, and stamps the evaluation time.
func (r *MemoryRepo) UpdateEvaluation(ctx context.Context, id string, eval Evaluation) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.data[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	if !CanEvaluate(app.Status) {
		return Application{}, ErrInvalidTransition
	}
	now := time.Now().UTC()
	app.Status = StatusEvaluated
	app.Scores = eval.Scores
	app.Tier = cloneTier(eval.Tier)
	app.EvaluatorPayload = clonePayload(eval.Payload)
	app.UpdatedAt = now
	app.LastEvaluatedAt = &now
	r.data[id] = app
	return cloneApp(app), nil
}

func cloneApp(app Application) Application {
	out := app
	out.EvaluatorPayload = clonePayload(app.EvaluatorPayload)
	out.Tier = cloneTier(app.Tier)
	if app.LastEvaluatedAt != nil {
		t := *app.LastEvaluatedAt
		out.LastEvaluatedAt = &t
	}
	if app.Resume.UploadDate != nil {
		t := *app.Resume.UploadDate
		out.Resume.UploadDate = &t
	}
	return out
}

func cloneTier(tier Tier) Tier {
	out := tier
	if tier.Level != nil {
		level := *tier.Level
		out.Level = &level
	}
	return out
}

func clonePayload(payload json.RawMessage) json.RawMessage {
	if payload == nil {
		return nil
	}
	return append(json.RawMessage(nil), payload...)
}

var _ Repo = (*MemoryRepo)(nil)
