// Package storage keeps generated artifacts in a single flat directory,
// addressed by file name.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is reported when no artifact is stored under a name.
var ErrNotFound = errors.New("artifact not found")

// Error is a failure at the filesystem boundary.
type Error struct {
	Op   string
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// FS stores artifacts as files directly under root.
//
// Put writes through a temporary file and renames it into place, so a Get
// never observes a partially written artifact. Concurrent Puts to the same
// name are last-writer-wins.
type FS struct {
	root string
}

// NewFS returns a store rooted at root, creating the directory if needed.
func NewFS(root string) (*FS, error) {
	if root == "" {
		return nil, &Error{Op: "init", Name: root, Err: errors.New("empty root directory")}
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &Error{Op: "init", Name: root, Err: err}
	}
	return &FS{root: root}, nil
}

// Root returns the directory holding the artifacts.
func (s *FS) Root() string { return s.root }

// Put stores data under name, replacing any previous artifact.
func (s *FS) Put(name string, data []byte) error {
	if !validName(name) {
		return &Error{Op: "put", Name: name, Err: errors.New("invalid artifact name")}
	}
	tmp, err := os.CreateTemp(s.root, ".put-*")
	if err != nil {
		return &Error{Op: "put", Name: name, Err: err}
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &Error{Op: "put", Name: name, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &Error{Op: "put", Name: name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Op: "put", Name: name, Err: err}
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return &Error{Op: "put", Name: name, Err: err}
	}
	if err := os.Rename(tmpPath, filepath.Join(s.root, name)); err != nil {
		return &Error{Op: "put", Name: name, Err: err}
	}
	success = true
	return nil
}

// Get returns the bytes stored under name. The error matches ErrNotFound
// when nothing is stored there.
func (s *FS) Get(name string) ([]byte, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	path := filepath.Join(s.root, name)
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !fi.Mode().IsRegular()) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, &Error{Op: "get", Name: name, Err: err}
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, &Error{Op: "get", Name: name, Err: err}
	}
	return b, nil
}

// validName accepts plain file names only: no separators, no parent
// references and no hidden files (temporary files are hidden).
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return filepath.Base(name) == name
}
