package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func newStore(t *testing.T) *FS {
	t.Helper()
	s, err := NewFS(filepath.Join(t.TempDir(), "output"))
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return s
}

func TestNewFSCreatesRootIdempotently(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b")
	if _, err := NewFS(root); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := NewFS(root); err != nil {
		t.Fatalf("second: %v", err)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		t.Fatalf("root not a directory: %v", err)
	}
}

func TestNewFSEmptyRoot(t *testing.T) {
	_, err := NewFS("")
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newStore(t)
	data := []byte("%PDF-1.3\x00\xff binary")
	if err := s.Put("invoice_20250101_000000.pdf", data); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get("invoice_20250101_000000.pdf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %q, want %q", got, data)
	}
	// repeated reads return the same bytes
	again, _ := s.Get("invoice_20250101_000000.pdf")
	if !bytes.Equal(again, data) {
		t.Fatalf("second read differs")
	}
}

func TestPutOverwrites(t *testing.T) {
	s := newStore(t)
	_ = s.Put("a.pdf", []byte("one"))
	if err := s.Put("a.pdf", []byte("two")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, _ := s.Get("a.pdf")
	if string(got) != "two" {
		t.Fatalf("got %q", got)
	}
}

func TestPutLeavesNoTempFiles(t *testing.T) {
	s := newStore(t)
	for i := 0; i < 3; i++ {
		_ = s.Put(fmt.Sprintf("f%d.pdf", i), []byte("x"))
	}
	entries, err := os.ReadDir(s.Root())
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 files, got %d", len(entries))
	}
}

func TestGetNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.Get("invoice_19990101_000000.pdf")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAfterExternalDelete(t *testing.T) {
	s := newStore(t)
	_ = s.Put("gone.pdf", []byte("x"))
	if err := os.Remove(filepath.Join(s.Root(), "gone.pdf")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.Get("gone.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDirectoryIsNotFound(t *testing.T) {
	s := newStore(t)
	if err := os.Mkdir(filepath.Join(s.Root(), "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := s.Get("sub")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var serr *Error
	if errors.As(err, &serr) {
		t.Fatalf("directory reported as storage failure: %v", err)
	}
}

func TestInvalidNames(t *testing.T) {
	s := newStore(t)
	secret := filepath.Join(filepath.Dir(s.Root()), "secret.txt")
	if err := os.WriteFile(secret, []byte("secret"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, name := range []string{"", ".", "..", "../secret.txt", "a/b.pdf", `a\b.pdf`, ".hidden"} {
		if _, err := s.Get(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q): expected ErrNotFound, got %v", name, err)
		}
		var serr *Error
		if err := s.Put(name, []byte("x")); !errors.As(err, &serr) {
			t.Errorf("Put(%q): expected storage error, got %v", name, err)
		}
	}
}

func TestPutUnwritableRoot(t *testing.T) {
	s := newStore(t)
	if err := os.RemoveAll(s.Root()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	err := s.Put("a.pdf", []byte("x"))
	var serr *Error
	if !errors.As(err, &serr) || serr.Op != "put" {
		t.Fatalf("expected put storage error, got %v", err)
	}
}

func TestConcurrentPutsSameName(t *testing.T) {
	s := newStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Put("race.pdf", bytes.Repeat([]byte{byte('a' + i)}, 4096))
		}(i)
	}
	wg.Wait()
	got, err := s.Get("race.pdf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 4096 || !bytes.Equal(got, bytes.Repeat(got[:1], 4096)) {
		t.Fatalf("torn write observed")
	}
}
