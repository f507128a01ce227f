package applications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func seedPending(t *testing.T, repo *MemoryRepo, jobID, companyID string) Application {
	t.Helper()
	app := New(jobID, companyID, PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}, Links{}, ResumeRef{})
	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("create: %v", err)
	}
	return app
}

func evaluated(t *testing.T, repo *MemoryRepo, id string) Application {
	t.Helper()
	app, err := repo.UpdateEvaluation(context.Background(), id, Evaluation{
		Scores: Scores{OverallScore: 82, ContentScore: 80, DesignScore: 78, ProjectsScore: 85, ReasoningSummary: "solid"},
		Tier:   Tier{Letter: "A", Code: "A2"},
	})
	if err != nil {
		t.Fatalf("update evaluation: %v", err)
	}
	return app
}

func TestMemoryRepoCreateAndGet(t *testing.T) {
	repo := NewMemoryRepo()
	app := seedPending(t, repo, "job-1", "company-1")

	got, err := repo.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PersonalInfo.Email != "jane@example.com" {
		t.Errorf("email = %q", got.PersonalInfo.Email)
	}

	if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepoGuardedStatus(t *testing.T) {
	repo := NewMemoryRepo()
	app := seedPending(t, repo, "job-1", "company-1")

	// A terminal decision straight from pending must be refused and must not
	// modify the record.
	if _, err := repo.UpdateStatus(context.Background(), app.ID, StatusAccepted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending->accepted = %v, want ErrInvalidTransition", err)
	}
	got, err := repo.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("status after refused transition = %s, want pending", got.Status)
	}

	evaluated(t, repo, app.ID)

	accepted, err := repo.UpdateStatus(context.Background(), app.ID, StatusAccepted)
	if err != nil {
		t.Fatalf("evaluated->accepted: %v", err)
	}
	if accepted.Status != StatusAccepted {
		t.Fatalf("status = %s, want accepted", accepted.Status)
	}

	// Terminal decisions can be reversed either way.
	if _, err := repo.UpdateStatus(context.Background(), app.ID, StatusRejected); err != nil {
		t.Fatalf("accepted->rejected: %v", err)
	}
	if _, err := repo.UpdateStatus(context.Background(), app.ID, StatusAccepted); err != nil {
		t.Fatalf("rejected->accepted: %v", err)
	}

	// But not back into the review pipeline.
	if _, err := repo.UpdateStatus(context.Background(), app.ID, StatusEvaluated); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("accepted->evaluated = %v, want ErrInvalidTransition", err)
	}

	if _, err := repo.UpdateStatus(context.Background(), "nope", StatusAccepted); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepoEvaluationGuard(t *testing.T) {
	repo := NewMemoryRepo()
	app := seedPending(t, repo, "job-1", "company-1")

	got := evaluated(t, repo, app.ID)
	if got.Status != StatusEvaluated {
		t.Fatalf("status = %s, want evaluated", got.Status)
	}
	if got.Tier.Letter != "A" || got.Scores.OverallScore != 82 {
		t.Errorf("evaluation not stored verbatim: %+v %+v", got.Tier, got.Scores)
	}
	if got.LastEvaluatedAt == nil {
		t.Error("expected LastEvaluatedAt to be set")
	}

	// Re-evaluation from evaluated is allowed.
	if _, err := repo.UpdateEvaluation(context.Background(), app.ID, Evaluation{Tier: Tier{Letter: "B", Code: "B1"}}); err != nil {
		t.Fatalf("re-evaluation: %v", err)
	}

	if _, err := repo.UpdateStatus(context.Background(), app.ID, StatusAccepted); err != nil {
		t.Fatalf("evaluated->accepted: %v", err)
	}

	// A late evaluator callback must not demote a decided application.
	if _, err := repo.UpdateEvaluation(context.Background(), app.ID, Evaluation{Tier: Tier{Letter: "C", Code: "C1"}}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("evaluation on accepted = %v, want ErrInvalidTransition", err)
	}
}

func TestMemoryRepoReturnsStableCopies(t *testing.T) {
	repo := NewMemoryRepo()
	app := seedPending(t, repo, "job-1", "company-1")
	evaluated(t, repo, app.ID)

	got, err := repo.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.PersonalInfo.FirstName = "Mallory"
	got.EvaluatorPayload = json.RawMessage(`{"tampered":true}`)
	*got.LastEvaluatedAt = got.LastEvaluatedAt.AddDate(1, 0, 0)

	again, err := repo.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.PersonalInfo.FirstName != "Jane" {
		t.Error("stored record mutated through returned copy")
	}
	if string(again.EvaluatorPayload) == `{"tampered":true}` {
		t.Error("stored payload mutated through returned copy")
	}
	if again.LastEvaluatedAt.Equal(*got.LastEvaluatedAt) {
		t.Error("stored timestamp mutated through returned copy")
	}
}

func TestMemoryRepoListOrdering(t *testing.T) {
	repo := NewMemoryRepo()
	low := seedPending(t, repo, "job-1", "company-1")
	high := seedPending(t, repo, "job-1", "company-1")
	other := seedPending(t, repo, "job-2", "company-2")

	if _, err := repo.UpdateEvaluation(context.Background(), high.ID, Evaluation{
		Scores: Scores{OverallScore: 90},
		Tier:   Tier{Letter: "A", Code: "A1"},
	}); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	byJob, err := repo.ListByJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("list by job: %v", err)
	}
	if len(byJob) != 2 {
		t.Fatalf("len = %d, want 2", len(byJob))
	}
	if byJob[0].ID != high.ID {
		t.Errorf("expected highest score first, got %s", byJob[0].ID)
	}
	if byJob[1].ID != low.ID {
		t.Errorf("expected %s second, got %s", low.ID, byJob[1].ID)
	}

	byCompany, err := repo.ListByCompany(context.Background(), "company-2")
	if err != nil {
		t.Fatalf("list by company: %v", err)
	}
	if len(byCompany) != 1 || byCompany[0].ID != other.ID {
		t.Errorf("list by company = %+v", byCompany)
	}
}
