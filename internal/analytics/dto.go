package analytics

import "time"

// CandidateSummary is one row in a dashboard bucket or list.
type CandidateSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Tier       string    `json:"tier"`
	Score      int       `json:"score"`
	Status     string    `json:"status"`
	ResumeName string    `json:"resume_name,omitempty"`
	Date       time.Time `json:"date"`
}

// JobTiers partitions one job's applications by tier letter. Every
// application lands in exactly one bucket; unknown or pending tiers fall
// into TierPending.
type JobTiers struct {
	JobID       string             `json:"job_id"`
	TierA       []CandidateSummary `json:"tier_a"`
	TierB       []CandidateSummary `json:"tier_b"`
	TierC       []CandidateSummary `json:"tier_c"`
	TierF       []CandidateSummary `json:"tier_f"`
	TierPending []CandidateSummary `json:"tier_pending"`
}

// JobStat is a per-job rollup inside the company stats.
type JobStat struct {
	JobID    string `json:"job_id"`
	Total    int    `json:"total"`
	Selected int    `json:"selected"`
	Rejected int    `json:"rejected"`
}

// CompanyStats is the per-company rollup the dashboard polls.
type CompanyStats struct {
	JobsPosted           int                `json:"jobs_posted"`
	ApplicationsReceived int                `json:"applications_received"`
	ApplicationsSelected int                `json:"applications_selected"`
	ApplicationsRejected int                `json:"applications_rejected"`
	SelectedList         []CandidateSummary `json:"selected_list"`
	RejectedList         []CandidateSummary `json:"rejected_list"`
	JobStats             []JobStat          `json:"job_stats"`
}
