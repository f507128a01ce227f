package applications

import (
	"encoding/json"
	"time"
)

// ApplicationResponse is the outward-facing representation of an
// application, matching the record layout the evaluator and dashboard
// consume.
type ApplicationResponse struct {
	ID               string          `json:"id"`
	JobID            string          `json:"jobId"`
	CompanyID        string          `json:"companyId"`
	PersonalInfo     PersonalInfo    `json:"personalInfo"`
	Resume           ResumeRef       `json:"resume"`
	Links            Links           `json:"links"`
	Status           Status          `json:"status"`
	Tier             Tier            `json:"tier"`
	Scores           Scores          `json:"scores"`
	EvaluatorPayload json.RawMessage `json:"evaluatorPayload,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	LastEvaluatedAt  *time.Time      `json:"lastEvaluatedAt,omitempty"`
}

// ToResponse converts an application to its response form.
func ToResponse(app Application) ApplicationResponse {
	return ApplicationResponse{
		ID:               app.ID,
		JobID:            app.JobID,
		CompanyID:        app.CompanyID,
		PersonalInfo:     app.PersonalInfo,
		Resume:           app.Resume,
		Links:            app.Links,
		Status:           app.Status,
		Tier:             app.Tier,
		Scores:           app.Scores,
		EvaluatorPayload: app.EvaluatorPayload,
		CreatedAt:        app.CreatedAt,
		UpdatedAt:        app.UpdatedAt,
		LastEvaluatedAt:  app.LastEvaluatedAt,
	}
}
