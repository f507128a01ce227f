package jobs

import "time"

// JobResponse is the outward-facing representation of a job posting.
type JobResponse struct {
	JobID        string    `json:"jobId"`
	JobTitle     string    `json:"jobTitle"`
	Description  string    `json:"description"`
	PublicFormID string    `json:"publicFormId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toResponse(job Job) JobResponse {
	return JobResponse{
		JobID:        job.ID,
		JobTitle:     job.JobTitle,
		Description:  job.Description,
		PublicFormID: job.PublicFormID,
		CreatedAt:    job.CreatedAt,
	}
}
