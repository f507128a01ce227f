package jobs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, company_id, job_title, description, public_form_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.CompanyID,
		job.JobTitle,
		job.Description,
		job.PublicFormID,
		job.CreatedAt,
	)
	return err
}

// GetByPublicFormID resolves the public form token to a job.
func (r *PGRepo) GetByPublicFormID(ctx context.Context, publicFormID string) (Job, error) {
	const query = `
SELECT id, company_id, job_title, description, public_form_id, created_at
FROM jobs
WHERE public_form_id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, publicFormID))
}

// GetByID returns a job by id.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, company_id, job_title, description, public_form_id, created_at
FROM jobs
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, jobID))
}

// ListByCompany returns the company's jobs, newest first.
func (r *PGRepo) ListByCompany(ctx context.Context, companyID string) ([]Job, error) {
	const query = `
SELECT id, company_id, job_title, description, public_form_id, created_at
FROM jobs
WHERE company_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(
			&job.ID,
			&job.CompanyID,
			&job.JobTitle,
			&job.Description,
			&job.PublicFormID,
			&job.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// CountByCompany returns the number of jobs posted by a company.
func (r *PGRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	const query = `SELECT count(*) FROM jobs WHERE company_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, companyID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a job owned by the company. Applications keep their job_id
// reference for historical analytics.
func (r *PGRepo) Delete(ctx context.Context, companyID, jobID string) error {
	const query = `DELETE FROM jobs WHERE id = $1 AND company_id = $2`
	res, err := r.DB.ExecContext(ctx, query, jobID, companyID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Job, error) {
	var job Job
	err := row.Scan(
		&job.ID,
		&job.CompanyID,
		&job.JobTitle,
		&job.Description,
		&job.PublicFormID,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

var _ Repo = (*PGRepo)(nil)
