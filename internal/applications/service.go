package applications

import (
	"context"
	"fmt"
	"io"

	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/storage/object"
)

// Service contains company- and evaluator-facing logic over the repository.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// ListForCompany returns the company's applications, newest first.
func (s *Service) ListForCompany(ctx context.Context, companyID string) ([]Application, error) {
	return s.Repo.ListByCompany(ctx, companyID)
}

// ListForJob returns a job's applications after checking the job belongs to
// the company.
func (s *Service) ListForJob(ctx context.Context, companyID, jobID string) ([]Application, error) {
	apps, err := s.Repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	out := apps[:0]
	for _, app := range apps {
		if app.CompanyID == companyID {
			out = append(out, app)
		}
	}
	return out, nil
}

// GetForCompany fetches one application, hiding records the company does not
// own behind not-found.
func (s *Service) GetForCompany(ctx context.Context, companyID, id string) (Application, error) {
	app, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if app.CompanyID != companyID {
		return Application{}, ErrNotFound
	}
	return app, nil
}

// OverrideStatus applies an operator decision through the state machine.
func (s *Service) OverrideStatus(ctx context.Context, companyID, id string, newStatus Status) (Application, error) {
	if _, err := s.GetForCompany(ctx, companyID, id); err != nil {
		return Application{}, err
	}
	return s.Repo.UpdateStatus(ctx, id, newStatus)
}

// ApplyEvaluation records the evaluator's callback. Scores and tier are
// stored verbatim; only structural validity is checked at this boundary.
func (s *Service) ApplyEvaluation(ctx context.Context, id string, eval Evaluation) (Application, error) {
	if err := validateEvaluation(eval); err != nil {
		return Application{}, err
	}
	app, err := s.Repo.UpdateEvaluation(ctx, id, eval)
	if err != nil {
		return Application{}, err
	}
	metrics.IncEvaluationApplied()
	return app, nil
}

// UpdateStatusFromEvaluator applies an evaluator-driven status change.
func (s *Service) UpdateStatusFromEvaluator(ctx context.Context, id string, newStatus Status) (Application, error) {
	return s.Repo.UpdateStatus(ctx, id, newStatus)
}

// OpenResume streams the stored resume blob for an owned application.
func (s *Service) OpenResume(ctx context.Context, companyID, id string) (io.ReadCloser, ResumeRef, error) {
	app, err := s.GetForCompany(ctx, companyID, id)
	if err != nil {
		return nil, ResumeRef{}, err
	}
	if app.Resume.FileID == "" {
		return nil, ResumeRef{}, ErrNoResume
	}
	rc, err := s.Store.Open(ctx, app.Resume.FileID)
	if err != nil {
		return nil, ResumeRef{}, fmt.Errorf("open resume: %w", err)
	}
	return rc, app.Resume, nil
}

func validateEvaluation(eval Evaluation) error {
	switch eval.Tier.Letter {
	case "A", "B", "C", "F":
	default:
		return fmt.Errorf("%w: tier letter must be one of A, B, C, F", ErrInvalidInput)
	}
	if eval.Tier.Level != nil && (*eval.Tier.Level < 1 || *eval.Tier.Level > 10) {
		return fmt.Errorf("%w: tier level must be between 1 and 10", ErrInvalidInput)
	}
	for _, score := range []int{
		eval.Scores.OverallScore,
		eval.Scores.ContentScore,
		eval.Scores.DesignScore,
		eval.Scores.ProjectsScore,
	} {
		if score < 0 || score > 100 {
			return fmt.Errorf("%w: scores must be between 0 and 100", ErrInvalidInput)
		}
	}
	return nil
}
