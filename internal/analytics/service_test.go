package analytics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/jobs"
)

func newFixture(t *testing.T) (*Service, jobs.Job, *applications.MemoryRepo) {
	t.Helper()
	jobsRepo := jobs.NewMemoryRepo()
	appsRepo := applications.NewMemoryRepo()

	jobSvc := &jobs.Service{Repo: jobsRepo}
	job, err := jobSvc.Create(context.Background(), "company-1", "Backend Engineer", "Go services")
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return &Service{Jobs: jobsRepo, Apps: appsRepo}, job, appsRepo
}

func addApplication(t *testing.T, repo *applications.MemoryRepo, jobID, companyID, tierLetter string, score int) applications.Application {
	t.Helper()
	app := applications.New(jobID, companyID, applications.PersonalInfo{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     fmt.Sprintf("jane+%s@example.com", tierLetter),
	}, applications.Links{}, applications.ResumeRef{Filename: "resume.pdf"})
	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("create application: %v", err)
	}
	if tierLetter == "" {
		return app
	}
	got, err := repo.UpdateEvaluation(context.Background(), app.ID, applications.Evaluation{
		Scores: applications.Scores{OverallScore: score},
		Tier:   applications.Tier{Letter: tierLetter, Code: tierLetter + "1"},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return got
}

func decide(t *testing.T, repo *applications.MemoryRepo, id string, status applications.Status) {
	t.Helper()
	if _, err := repo.UpdateStatus(context.Background(), id, status); err != nil {
		t.Fatalf("decide %s: %v", status, err)
	}
}

func TestPerJobTiersPartition(t *testing.T) {
	svc, job, appsRepo := newFixture(t)

	addApplication(t, appsRepo, job.ID, "company-1", "A", 90)
	addApplication(t, appsRepo, job.ID, "company-1", "B", 70)
	addApplication(t, appsRepo, job.ID, "company-1", "B", 65)
	addApplication(t, appsRepo, job.ID, "company-1", "F", 20)
	addApplication(t, appsRepo, job.ID, "company-1", "", 0) // still pending

	tiers, err := svc.PerJobTiers(context.Background(), "company-1", job.PublicFormID)
	if err != nil {
		t.Fatalf("per job tiers: %v", err)
	}

	if tiers.JobID != job.PublicFormID {
		t.Errorf("job_id = %q, want public form id", tiers.JobID)
	}
	if len(tiers.TierA) != 1 || len(tiers.TierB) != 2 || len(tiers.TierC) != 0 || len(tiers.TierF) != 1 || len(tiers.TierPending) != 1 {
		t.Errorf("bucket sizes a=%d b=%d c=%d f=%d pending=%d",
			len(tiers.TierA), len(tiers.TierB), len(tiers.TierC), len(tiers.TierF), len(tiers.TierPending))
	}

	total := len(tiers.TierA) + len(tiers.TierB) + len(tiers.TierC) + len(tiers.TierF) + len(tiers.TierPending)
	if total != 5 {
		t.Errorf("every application must land in exactly one bucket, total = %d", total)
	}

	if tiers.TierA[0].Score != 90 || tiers.TierA[0].Name != "Jane Doe" {
		t.Errorf("summary = %+v", tiers.TierA[0])
	}
}

func TestPerJobTiersOwnership(t *testing.T) {
	svc, job, _ := newFixture(t)

	if _, err := svc.PerJobTiers(context.Background(), "company-2", job.PublicFormID); !errors.Is(err, jobs.ErrNotFound) {
		t.Errorf("foreign company = %v, want jobs.ErrNotFound", err)
	}
	if _, err := svc.PerJobTiers(context.Background(), "company-1", "nope"); !errors.Is(err, jobs.ErrNotFound) {
		t.Errorf("unknown form id = %v, want jobs.ErrNotFound", err)
	}
}

func TestPerJobTiersEmptyJob(t *testing.T) {
	svc, job, _ := newFixture(t)

	tiers, err := svc.PerJobTiers(context.Background(), "company-1", job.PublicFormID)
	if err != nil {
		t.Fatalf("per job tiers: %v", err)
	}
	// Buckets serialize as [] rather than null for the dashboard.
	if tiers.TierA == nil || tiers.TierPending == nil {
		t.Error("expected zero-filled buckets")
	}
}

func TestPerCompanyStats(t *testing.T) {
	svc, job, appsRepo := newFixture(t)

	a := addApplication(t, appsRepo, job.ID, "company-1", "A", 90)
	b := addApplication(t, appsRepo, job.ID, "company-1", "B", 70)
	addApplication(t, appsRepo, job.ID, "company-1", "C", 50)
	addApplication(t, appsRepo, job.ID, "company-1", "", 0)

	decide(t, appsRepo, a.ID, applications.StatusAccepted)
	decide(t, appsRepo, b.ID, applications.StatusRejected)

	stats, err := svc.PerCompanyStats(context.Background(), "company-1")
	if err != nil {
		t.Fatalf("per company stats: %v", err)
	}

	if stats.JobsPosted != 1 {
		t.Errorf("jobs_posted = %d, want 1", stats.JobsPosted)
	}
	if stats.ApplicationsReceived != 4 {
		t.Errorf("applications_received = %d, want 4", stats.ApplicationsReceived)
	}
	if stats.ApplicationsSelected != 1 || stats.ApplicationsRejected != 1 {
		t.Errorf("selected=%d rejected=%d", stats.ApplicationsSelected, stats.ApplicationsRejected)
	}
	if stats.ApplicationsSelected+stats.ApplicationsRejected > stats.ApplicationsReceived {
		t.Error("decided count exceeds received count")
	}

	if len(stats.SelectedList) != 1 || stats.SelectedList[0].ID != a.ID {
		t.Errorf("selected_list = %+v", stats.SelectedList)
	}
	if len(stats.RejectedList) != 1 || stats.RejectedList[0].ID != b.ID {
		t.Errorf("rejected_list = %+v", stats.RejectedList)
	}

	if len(stats.JobStats) != 1 {
		t.Fatalf("job_stats = %+v", stats.JobStats)
	}
	js := stats.JobStats[0]
	if js.JobID != job.ID || js.Total != 4 || js.Selected != 1 || js.Rejected != 1 {
		t.Errorf("job stat = %+v", js)
	}
}

func TestPerCompanyStatsDecisionListCap(t *testing.T) {
	svc, job, appsRepo := newFixture(t)

	for i := 0; i < decisionListLimit+3; i++ {
		app := addApplication(t, appsRepo, job.ID, "company-1", "A", 80)
		decide(t, appsRepo, app.ID, applications.StatusAccepted)
	}

	stats, err := svc.PerCompanyStats(context.Background(), "company-1")
	if err != nil {
		t.Fatalf("per company stats: %v", err)
	}
	if stats.ApplicationsSelected != decisionListLimit+3 {
		t.Errorf("applications_selected = %d", stats.ApplicationsSelected)
	}
	if len(stats.SelectedList) != decisionListLimit {
		t.Errorf("selected_list len = %d, want %d", len(stats.SelectedList), decisionListLimit)
	}
}

func TestPerCompanyStatsEmpty(t *testing.T) {
	svc, _, _ := newFixture(t)

	stats, err := svc.PerCompanyStats(context.Background(), "company-2")
	if err != nil {
		t.Fatalf("per company stats: %v", err)
	}
	if stats.JobsPosted != 0 || stats.ApplicationsReceived != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.SelectedList == nil || stats.RejectedList == nil || stats.JobStats == nil {
		t.Error("expected zero-filled lists")
	}
}
