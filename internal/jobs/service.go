package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for job postings.
type Service struct {
	Repo Repo
}

// Create mints a new posting with a cryptographically random public form id.
func (s *Service) Create(ctx context.Context, companyID, jobTitle, description string) (Job, error) {
	if strings.TrimSpace(companyID) == "" || strings.TrimSpace(jobTitle) == "" {
		return Job{}, ErrInvalidInput
	}

	job := Job{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		JobTitle:     strings.TrimSpace(jobTitle),
		Description:  strings.TrimSpace(description),
		PublicFormID: uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// List returns the company's postings, newest first.
func (s *Service) List(ctx context.Context, companyID string) ([]Job, error) {
	return s.Repo.ListByCompany(ctx, companyID)
}

// Delete removes a posting owned by the company.
func (s *Service) Delete(ctx context.Context, companyID, jobID string) error {
	return s.Repo.Delete(ctx, companyID, jobID)
}

// ResolvePublicForm maps a public form id to its job.
func (s *Service) ResolvePublicForm(ctx context.Context, publicFormID string) (Job, error) {
	if strings.TrimSpace(publicFormID) == "" {
		return Job{}, ErrNotFound
	}
	return s.Repo.GetByPublicFormID(ctx, publicFormID)
}
