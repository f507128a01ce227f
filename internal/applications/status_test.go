package applications

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusEvaluated, true},
		{StatusPending, StatusAccepted, false},
		{StatusPending, StatusRejected, false},
		{StatusEvaluated, StatusAccepted, true},
		{StatusEvaluated, StatusRejected, true},
		{StatusEvaluated, StatusPending, false},
		{StatusAccepted, StatusRejected, true},
		{StatusAccepted, StatusEvaluated, false},
		{StatusRejected, StatusAccepted, true},
		{StatusRejected, StatusEvaluated, false},
		{StatusPending, StatusPending, false},
		{StatusAccepted, StatusAccepted, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusEvaluated, StatusAccepted, StatusRejected} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false", s)
		}
	}
	for _, s := range []Status{"", "unknown", "Pending", "selected"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestAllowedSources(t *testing.T) {
	got := AllowedSources(StatusAccepted)
	want := map[Status]bool{StatusEvaluated: true, StatusRejected: true}
	if len(got) != len(want) {
		t.Fatalf("AllowedSources(accepted) = %v, want sources %v", got, want)
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("AllowedSources(accepted) contains unexpected source %s", s)
		}
	}

	if got := AllowedSources(StatusPending); len(got) != 0 {
		t.Errorf("AllowedSources(pending) = %v, want none", got)
	}
}

func TestCanEvaluate(t *testing.T) {
	if !CanEvaluate(StatusPending) || !CanEvaluate(StatusEvaluated) {
		t.Error("evaluation must be accepted from pending and evaluated")
	}
	if CanEvaluate(StatusAccepted) || CanEvaluate(StatusRejected) {
		t.Error("evaluation must be rejected from terminal statuses")
	}
}

func TestNewApplicationDefaults(t *testing.T) {
	app := New("job-1", "company-1", PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}, Links{}, ResumeRef{})

	if app.ID == "" {
		t.Fatal("expected generated id")
	}
	if app.Status != StatusPending {
		t.Errorf("status = %s, want pending", app.Status)
	}
	if app.Tier.Letter != TierPending {
		t.Errorf("tier letter = %q, want %q", app.Tier.Letter, TierPending)
	}
	if app.Tier.Code != "Processing..." {
		t.Errorf("tier code = %q", app.Tier.Code)
	}
	if app.Scores.OverallScore != 0 || app.Scores.ContentScore != 0 {
		t.Errorf("expected zero scores, got %+v", app.Scores)
	}
	if string(app.EvaluatorPayload) != "{}" {
		t.Errorf("evaluator payload = %s, want {}", app.EvaluatorPayload)
	}
	if app.LastEvaluatedAt != nil {
		t.Error("expected nil LastEvaluatedAt before evaluation")
	}
}
