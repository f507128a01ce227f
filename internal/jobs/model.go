package jobs

import "time"

// Job represents a posting owned by a company. PublicFormID is the
// unguessable token that grants submission access without authentication;
// it is minted once at creation and never changes.
type Job struct {
	ID           string
	CompanyID    string
	JobTitle     string
	Description  string
	PublicFormID string
	CreatedAt    time.Time
}
