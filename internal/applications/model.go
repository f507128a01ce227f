package applications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PersonalInfo is the applicant's identity as entered on the public form.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// Links are the applicant's optional profile URLs.
type Links struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// ResumeRef points at the stored resume blob. It is immutable once set.
type ResumeRef struct {
	FileID      string     `json:"fileId,omitempty"`
	Filename    string     `json:"filename,omitempty"`
	ContentType string     `json:"contentType,omitempty"`
	UploadDate  *time.Time `json:"uploadDate,omitempty"`
}

// Tier is the coarse rank bucket assigned by the external evaluator. The
// repository stores it verbatim and never computes it.
type Tier struct {
	Letter string `json:"letter"`
	Code   string `json:"code"`
	Level  *int   `json:"level,omitempty"`
}

// Scores carries the evaluator's 0-100 component scores. The structure is
// always present; before evaluation every field is zero.
type Scores struct {
	OverallScore     int    `json:"overallScore"`
	ContentScore     int    `json:"contentScore"`
	DesignScore      int    `json:"designScore"`
	ProjectsScore    int    `json:"projectsScore"`
	ReasoningSummary string `json:"reasoningSummary"`
}

// Application is one candidate's submission to one job posting. CompanyID is
// denormalized from the job so per-company queries survive job deletion.
type Application struct {
	ID               string
	JobID            string
	CompanyID        string
	PersonalInfo     PersonalInfo
	Resume           ResumeRef
	Links            Links
	Status           Status
	Tier             Tier
	Scores           Scores
	EvaluatorPayload json.RawMessage
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LastEvaluatedAt  *time.Time
}

// Evaluation is the payload the external evaluator writes back.
type Evaluation struct {
	Scores  Scores
	Tier    Tier
	Payload json.RawMessage
}

// New builds a pending application with placeholder tier and zero-filled
// scores, assigning id and timestamps.
func New(jobID, companyID string, info PersonalInfo, links Links, resume ResumeRef) Application {
	now := time.Now().UTC()
	return Application{
		ID:           uuid.NewString(),
		JobID:        jobID,
		CompanyID:    companyID,
		PersonalInfo: info,
		Resume:       resume,
		Links:        links,
		Status:       StatusPending,
		Tier: Tier{
			Letter: TierPending,
			Code:   "Processing...",
		},
		Scores: Scores{
			ReasoningSummary: "Evaluation in progress",
		},
		EvaluatorPayload: json.RawMessage(`{}`),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
