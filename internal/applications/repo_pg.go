package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres. Guarded transitions are single
// UPDATE statements so a concurrent reader sees either the pre- or
// post-transition record, never a mix.
type PGRepo struct {
	DB *sql.DB
}

const applicationColumns = `
id, job_id, company_id,
first_name, last_name, email, phone,
linkedin, github, portfolio,
resume_file_id, resume_filename, resume_content_type, resume_uploaded_at,
status, tier_letter, tier_code, tier_level,
overall_score, content_score, design_score, projects_score, reasoning_summary,
evaluator_payload, created_at, updated_at, last_evaluated_at`

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (
    id, job_id, company_id,
    first_name, last_name, email, phone,
    linkedin, github, portfolio,
    resume_file_id, resume_filename, resume_content_type, resume_uploaded_at,
    status, tier_letter, tier_code, tier_level,
    overall_score, content_score, design_score, projects_score, reasoning_summary,
    evaluator_payload, created_at, updated_at, last_evaluated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
    $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
)`
	payload := app.EvaluatorPayload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	_, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.JobID,
		app.CompanyID,
		app.PersonalInfo.FirstName,
		app.PersonalInfo.LastName,
		app.PersonalInfo.Email,
		nullableString(app.PersonalInfo.Phone),
		nullableString(app.Links.LinkedIn),
		nullableString(app.Links.GitHub),
		nullableString(app.Links.Portfolio),
		nullableString(app.Resume.FileID),
		nullableString(app.Resume.Filename),
		nullableString(app.Resume.ContentType),
		app.Resume.UploadDate,
		string(app.Status),
		app.Tier.Letter,
		app.Tier.Code,
		app.Tier.Level,
		app.Scores.OverallScore,
		app.Scores.ContentScore,
		app.Scores.DesignScore,
		app.Scores.ProjectsScore,
		app.Scores.ReasoningSummary,
		[]byte(payload),
		app.CreatedAt,
		app.UpdatedAt,
		app.LastEvaluatedAt,
	)
	return err
}

// GetByID fetches an application by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	query := `SELECT ` + applicationColumns + `
FROM applications
WHERE id = $1
LIMIT 1`
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

// ListByJob returns applications for a job, highest overall score first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	query := `SELECT ` + applicationColumns + `
FROM applications
WHERE job_id = $1
ORDER BY overall_score DESC, created_at DESC`
	return r.list(ctx, query, jobID)
}

// ListByCompany returns the company's applications, newest first.
func (r *PGRepo) ListByCompany(ctx context.Context, companyID string) ([]Application, error) {
	query := `SELECT ` + applicationColumns + `
FROM applications
WHERE company_id = $1
ORDER BY created_at DESC`
	return r.list(ctx, query, companyID)
}

// UpdateStatus applies a guarded status transition in one statement.
func (r *PGRepo) UpdateStatus(ctx context.Context, id string, newStatus Status) (Application, error) {
	if !ValidStatus(newStatus) {
		return Application{}, ErrInvalidTransition
	}

	sources := AllowedSources(newStatus)
	placeholders := make([]string, 0, len(sources))
	args := []any{string(newStatus), id}
	for _, s := range sources {
		args = append(args, string(s))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := `
UPDATE applications
SET status = $1, updated_at = now()
WHERE id = $2 AND status IN (` + strings.Join(placeholders, ", ") + `)
RETURNING ` + applicationColumns

	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, r.classifyNoRows(ctx, id)
		}
		return Application{}, err
	}
	return app, nil
}

// UpdateEvaluation records the evaluator's write and moves the record to
// evaluated, guarded against terminal states.
func (r *PGRepo) UpdateEvaluation(ctx context.Context, id string, eval Evaluation) (Application, error) {
	sources := EvaluationSources()
	placeholders := make([]string, 0, len(sources))
	payload := eval.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	args := []any{
		id,
		eval.Scores.OverallScore,
		eval.Scores.ContentScore,
		eval.Scores.DesignScore,
		eval.Scores.ProjectsScore,
		eval.Scores.ReasoningSummary,
		eval.Tier.Letter,
		eval.Tier.Code,
		eval.Tier.Level,
		[]byte(payload),
	}
	for _, s := range sources {
		args = append(args, string(s))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := `
UPDATE applications
SET status = 'evaluated',
    overall_score = $2,
    content_score = $3,
    design_score = $4,
    projects_score = $5,
    reasoning_summary = $6,
    tier_letter = $7,
    tier_code = $8,
    tier_level = $9,
    evaluator_payload = $10,
    updated_at = now(),
    last_evaluated_at = now()
WHERE id = $1 AND status IN (` + strings.Join(placeholders, ", ") + `)
RETURNING ` + applicationColumns

	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, r.classifyNoRows(ctx, id)
		}
		return Application{}, err
	}
	return app, nil
}

// classifyNoRows distinguishes a missing record from a guarded transition
// that matched no rows.
func (r *PGRepo) classifyNoRows(ctx context.Context, id string) error {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrInvalidTransition
}

func (r *PGRepo) list(ctx context.Context, query string, arg any) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var phone, linkedin, github, portfolio sql.NullString
	var resumeFileID, resumeFilename, resumeContentType sql.NullString
	var resumeUploadedAt, lastEvaluatedAt sql.NullTime
	var tierLevel sql.NullInt64
	var status string
	var payload []byte

	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.CompanyID,
		&app.PersonalInfo.FirstName,
		&app.PersonalInfo.LastName,
		&app.PersonalInfo.Email,
		&phone,
		&linkedin,
		&github,
		&portfolio,
		&resumeFileID,
		&resumeFilename,
		&resumeContentType,
		&resumeUploadedAt,
		&status,
		&app.Tier.Letter,
		&app.Tier.Code,
		&tierLevel,
		&app.Scores.OverallScore,
		&app.Scores.ContentScore,
		&app.Scores.DesignScore,
		&app.Scores.ProjectsScore,
		&app.Scores.ReasoningSummary,
		&payload,
		&app.CreatedAt,
		&app.UpdatedAt,
		&lastEvaluatedAt,
	)
	if err != nil {
		return Application{}, err
	}

	app.Status = Status(status)
	if phone.Valid {
		app.PersonalInfo.Phone = phone.String
	}
	if linkedin.Valid {
		app.Links.LinkedIn = linkedin.String
	}
	if github.Valid {
		app.Links.GitHub = github.String
	}
	if portfolio.Valid {
		app.Links.Portfolio = portfolio.String
	}
	if resumeFileID.Valid {
		app.Resume.FileID = resumeFileID.String
	}
	if resumeFilename.Valid {
		app.Resume.Filename = resumeFilename.String
	}
	if resumeContentType.Valid {
		app.Resume.ContentType = resumeContentType.String
	}
	if resumeUploadedAt.Valid {
		t := resumeUploadedAt.Time
		app.Resume.UploadDate = &t
	}
	if tierLevel.Valid {
		level := int(tierLevel.Int64)
		app.Tier.Level = &level
	}
	if lastEvaluatedAt.Valid {
		t := lastEvaluatedAt.Time
		app.LastEvaluatedAt = &t
	}
	if len(payload) > 0 {
		app.EvaluatorPayload = json.RawMessage(payload)
	}
	return app, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
