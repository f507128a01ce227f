package applications

import "context"

// Repo defines persistence operations for applications. Reads return stable
// copies; mutating a returned record never affects the store. UpdateStatus
// and UpdateEvaluation apply the transition check and the write as one
// atomic step per record.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	ListByCompany(ctx context.Context, companyID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id string, newStatus Status) (Application, error)
	UpdateEvaluation(ctx context.Context, id string, eval Evaluation) (Application, error)
}
