package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "job/resume.pdf", want: "job/resume.pdf"},
		{name: "simple prefix", prefix: "resumes", key: "job/resume.pdf", want: "resumes/job/resume.pdf"},
		{name: "prefix trailing slash", prefix: "resumes/", key: "job/resume.pdf", want: "resumes/job/resume.pdf"},
		{name: "prefix and key slashes", prefix: "/resumes/", key: "/job/resume.pdf", want: "resumes/job/resume.pdf"},
		{name: "nested prefix", prefix: "resumes/prod", key: "job/resume.pdf", want: "resumes/prod/job/resume.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
