package intake

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/storage/object"
	"recruit-backend/internal/shared/telemetry"
)

// ResumeUpload is the raw file an applicant attached to the form.
type ResumeUpload struct {
	Filename string
	Reader   io.Reader
}

// Service accepts public submissions. Its core contract is ordering: the
// resume blob must be durably stored before the application record is
// created, so the repository never references unwritten bytes. A failed blob
// write aborts the submission with no record; a failed record write leaves
// only an orphan blob.
type Service struct {
	Jobs  jobs.Repo
	Apps  applications.Repo
	Store object.ObjectStore
}

// Submit validates and persists a new application for the job behind the
// public form id.
func (s *Service) Submit(ctx context.Context, publicFormID string, info applications.PersonalInfo, links applications.Links, resume *ResumeUpload) (applications.Application, error) {
	metrics.IncSubmissionStarted()
	start := time.Now()

	app, err := s.submit(ctx, publicFormID, info, links, resume)
	metrics.ObserveSubmissionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncSubmissionFailed()
		return applications.Application{}, err
	}
	metrics.IncSubmissionCompleted()
	return app, nil
}

func (s *Service) submit(ctx context.Context, publicFormID string, info applications.PersonalInfo, links applications.Links, resume *ResumeUpload) (applications.Application, error) {
	job, err := s.Jobs.GetByPublicFormID(ctx, publicFormID)
	if err != nil {
		if err == jobs.ErrNotFound {
			return applications.Application{}, ErrJobNotFound
		}
		return applications.Application{}, fmt.Errorf("resolve public form: %w", err)
	}

	info.FirstName = strings.TrimSpace(info.FirstName)
	info.LastName = strings.TrimSpace(info.LastName)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)
	if err := validate(info); err != nil {
		return applications.Application{}, err
	}

	var ref applications.ResumeRef
	if resume != nil {
		storageKey, size, mimeType, err := s.Store.Save(ctx, job.ID, resume.Filename, resume.Reader)
		if err != nil {
			return applications.Application{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		uploadedAt := time.Now().UTC()
		ref = applications.ResumeRef{
			FileID:      storageKey,
			Filename:    resume.Filename,
			ContentType: mimeType,
			UploadDate:  &uploadedAt,
		}
		telemetry.Info("intake.resume_stored", map[string]any{
			"job_id":     job.ID,
			"size_bytes": size,
			"mime_type":  mimeType,
		})
	}

	app := applications.New(job.ID, job.CompanyID, info, links, ref)
	if err := s.Apps.Create(ctx, app); err != nil {
		telemetry.Error("intake.record_create_failed", map[string]any{
			"job_id":      job.ID,
			"orphan_blob": ref.FileID,
			"error":       err.Error(),
		})
		return applications.Application{}, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return app, nil
}

func validate(info applications.PersonalInfo) error {
	var missing []string
	if info.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if info.LastName == "" {
		missing = append(missing, "lastName")
	}
	if info.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if !strings.Contains(info.Email, "@") {
		return fmt.Errorf("%w: email is malformed", ErrValidation)
	}
	return nil
}
