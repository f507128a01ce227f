package analytics

import (
	"context"
	"sort"
	"strings"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/jobs"
)

const decisionListLimit = 10

// Service computes dashboard views by scanning the application repository.
// It holds no state of its own, so it is safe to call at polling frequency;
// results reflect the repository's latest committed records.
type Service struct {
	Jobs jobs.Repo
	Apps applications.Repo
}

// PerJobTiers buckets a job's applications by tier letter. The job is
// resolved through its public form id and must belong to the company.
func (s *Service) PerJobTiers(ctx context.Context, companyID, publicFormID string) (JobTiers, error) {
	job, err := s.Jobs.GetByPublicFormID(ctx, publicFormID)
	if err != nil {
		return JobTiers{}, err
	}
	if job.CompanyID != companyID {
		return JobTiers{}, jobs.ErrNotFound
	}

	apps, err := s.Apps.ListByJob(ctx, job.ID)
	if err != nil {
		return JobTiers{}, err
	}

	out := JobTiers{
		JobID:       publicFormID,
		TierA:       []CandidateSummary{},
		TierB:       []CandidateSummary{},
		TierC:       []CandidateSummary{},
		TierF:       []CandidateSummary{},
		TierPending: []CandidateSummary{},
	}
	for _, app := range apps {
		summary := summarize(app)
		switch app.Tier.Letter {
		case "A":
			out.TierA = append(out.TierA, summary)
		case "B":
			out.TierB = append(out.TierB, summary)
		case "C":
			out.TierC = append(out.TierC, summary)
		case "F":
			out.TierF = append(out.TierF, summary)
		default:
			out.TierPending = append(out.TierPending, summary)
		}
	}
	return out, nil
}

// PerCompanyStats rolls up the company's applications by status and job.
func (s *Service) PerCompanyStats(ctx context.Context, companyID string) (CompanyStats, error) {
	jobsPosted, err := s.Jobs.CountByCompany(ctx, companyID)
	if err != nil {
		return CompanyStats{}, err
	}

	apps, err := s.Apps.ListByCompany(ctx, companyID)
	if err != nil {
		return CompanyStats{}, err
	}

	stats := CompanyStats{
		JobsPosted:           jobsPosted,
		ApplicationsReceived: len(apps),
		SelectedList:         []CandidateSummary{},
		RejectedList:         []CandidateSummary{},
		JobStats:             []JobStat{},
	}

	byJob := make(map[string]*JobStat)
	var selected, rejected []applications.Application
	for _, app := range apps {
		stat, ok := byJob[app.JobID]
		if !ok {
			stat = &JobStat{JobID: app.JobID}
			byJob[app.JobID] = stat
		}
		stat.Total++
		switch app.Status {
		case applications.StatusAccepted:
			stats.ApplicationsSelected++
			stat.Selected++
			selected = append(selected, app)
		case applications.StatusRejected:
			stats.ApplicationsRejected++
			stat.Rejected++
			rejected = append(rejected, app)
		}
	}

	stats.SelectedList = decisionList(selected)
	stats.RejectedList = decisionList(rejected)

	for _, stat := range byJob {
		stats.JobStats = append(stats.JobStats, *stat)
	}
	sort.Slice(stats.JobStats, func(i, j int) bool {
		if stats.JobStats[i].Total != stats.JobStats[j].Total {
			return stats.JobStats[i].Total > stats.JobStats[j].Total
		}
		return stats.JobStats[i].JobID < stats.JobStats[j].JobID
	})

	return stats, nil
}

// decisionList returns the most recently evaluated entries first, capped for
// dashboard display.
func decisionList(apps []applications.Application) []CandidateSummary {
	sort.Slice(apps, func(i, j int) bool {
		ti, tj := apps[i].LastEvaluatedAt, apps[j].LastEvaluatedAt
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})
	out := make([]CandidateSummary, 0, decisionListLimit)
	for _, app := range apps {
		if len(out) == decisionListLimit {
			break
		}
		out = append(out, summarize(app))
	}
	return out
}

func summarize(app applications.Application) CandidateSummary {
	name := strings.TrimSpace(app.PersonalInfo.FirstName + " " + app.PersonalInfo.LastName)
	return CandidateSummary{
		ID:         app.ID,
		Name:       name,
		Tier:       app.Tier.Code,
		Score:      app.Scores.OverallScore,
		Status:     string(app.Status),
		ResumeName: app.Resume.Filename,
		Date:       app.CreatedAt,
	}
}
