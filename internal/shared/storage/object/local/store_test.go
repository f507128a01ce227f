package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"recruit-backend/internal/shared/storage/object"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	body := []byte("%PDF-1.4 fake resume content")
	key, size, mimeType, err := store.Save(context.Background(), "job-1", "resume.pdf", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len(body)) {
		t.Errorf("size = %d, want %d", size, len(body))
	}
	if mimeType == "" {
		t.Error("expected sniffed mime type")
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("read back %q, want %q", got, body)
	}

	ok, err := store.Exists(context.Background(), key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Error("expected key to exist")
	}
}

func TestSaveUniqueKeys(t *testing.T) {
	store := New(t.TempDir())

	key1, _, _, err := store.Save(context.Background(), "job-1", "resume.pdf", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("save 1: %v", err)
	}
	key2, _, _, err := store.Save(context.Background(), "job-1", "resume.pdf", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("save 2: %v", err)
	}
	if key1 == key2 {
		t.Error("same file name must not collide")
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())

	if _, _, _, err := store.Save(context.Background(), "job-1", "../../etc/passwd", strings.NewReader("x")); err == nil {
		t.Error("expected error for traversal file name")
	}
}

func TestOpenMissing(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Open(context.Background(), "no/such/key"); !errors.Is(err, object.ErrNotFound) {
		t.Errorf("open missing = %v, want object.ErrNotFound", err)
	}

	ok, err := store.Exists(context.Background(), "no/such/key")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("missing key reported as existing")
	}

	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Error("expected error for traversal key")
	}
}
