package jobs

import "context"

// Repo defines persistence operations for jobs.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByPublicFormID(ctx context.Context, publicFormID string) (Job, error)
	GetByID(ctx context.Context, jobID string) (Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]Job, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Delete(ctx context.Context, companyID, jobID string) error
}
