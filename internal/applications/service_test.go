package applications

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"recruit-backend/internal/shared/storage/object"
)

type stubStore struct {
	objects map[string][]byte
}

func (s *stubStore) Save(ctx context.Context, namespace, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := namespace + "/" + fileName
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	s.objects[key] = data
	return key, int64(len(data)), "application/octet-stream", nil
}

func (s *stubStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, object.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubStore) Exists(ctx context.Context, storageKey string) (bool, error) {
	_, ok := s.objects[storageKey]
	return ok, nil
}

func TestServiceOwnershipHidesForeignRecords(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Store: &stubStore{}}

	app := seedPending(t, repo, "job-1", "company-1")

	if _, err := svc.GetForCompany(context.Background(), "company-2", app.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign get = %v, want ErrNotFound", err)
	}
	if _, err := svc.OverrideStatus(context.Background(), "company-2", app.ID, StatusAccepted); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign override = %v, want ErrNotFound", err)
	}

	got, err := svc.GetForCompany(context.Background(), "company-1", app.ID)
	if err != nil {
		t.Fatalf("owned get: %v", err)
	}
	if got.ID != app.ID {
		t.Errorf("id = %s", got.ID)
	}
}

func TestServiceListForJobFiltersByCompany(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Store: &stubStore{}}

	mine := seedPending(t, repo, "job-1", "company-1")
	foreign := New("job-1", "company-2", PersonalInfo{FirstName: "X", LastName: "Y", Email: "x@y.z"}, Links{}, ResumeRef{})
	if err := repo.Create(context.Background(), foreign); err != nil {
		t.Fatalf("create: %v", err)
	}

	apps, err := svc.ListForJob(context.Background(), "company-1", "job-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != mine.ID {
		t.Errorf("apps = %+v", apps)
	}
}

func TestServiceApplyEvaluationValidation(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Store: &stubStore{}}
	app := seedPending(t, repo, "job-1", "company-1")

	level := 11
	cases := []Evaluation{
		{Tier: Tier{Letter: "D", Code: "D1"}},
		{Tier: Tier{Letter: "A", Code: "A1", Level: &level}},
		{Tier: Tier{Letter: "A", Code: "A1"}, Scores: Scores{OverallScore: 101}},
		{Tier: Tier{Letter: "A", Code: "A1"}, Scores: Scores{ContentScore: -1}},
	}
	for i, eval := range cases {
		if _, err := svc.ApplyEvaluation(context.Background(), app.ID, eval); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}

	okLevel := 2
	got, err := svc.ApplyEvaluation(context.Background(), app.ID, Evaluation{
		Scores: Scores{OverallScore: 82, ContentScore: 80, DesignScore: 78, ProjectsScore: 85, ReasoningSummary: "solid"},
		Tier:   Tier{Letter: "A", Code: "A2", Level: &okLevel},
	})
	if err != nil {
		t.Fatalf("apply evaluation: %v", err)
	}
	if got.Status != StatusEvaluated || got.Tier.Letter != "A" {
		t.Errorf("got %+v", got)
	}
}

func TestServiceOpenResume(t *testing.T) {
	repo := NewMemoryRepo()
	store := &stubStore{}
	svc := &Service{Repo: repo, Store: store}

	key, _, _, err := store.Save(context.Background(), "job-1", "resume.pdf", bytes.NewReader([]byte("pdf bytes")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	withResume := New("job-1", "company-1", PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}, Links{}, ResumeRef{
		FileID:      key,
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
	})
	if err := repo.Create(context.Background(), withResume); err != nil {
		t.Fatalf("create: %v", err)
	}

	rc, ref, err := svc.OpenResume(context.Background(), "company-1", withResume.ID)
	if err != nil {
		t.Fatalf("open resume: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "pdf bytes" {
		t.Errorf("data = %q", data)
	}
	if ref.ContentType != "application/pdf" {
		t.Errorf("content type = %q", ref.ContentType)
	}

	bare := seedPending(t, repo, "job-1", "company-1")
	if _, _, err := svc.OpenResume(context.Background(), "company-1", bare.ID); !errors.Is(err, ErrNoResume) {
		t.Errorf("no resume = %v, want ErrNoResume", err)
	}
}
