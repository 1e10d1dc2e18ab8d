package storage

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// ErrNotFound is returned when the activity file does not exist.
var ErrNotFound = errors.New("activity data not found")

// FileStore reads and writes the tracker's JSON document. Paths ending in .gz are
// gzip-compressed.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Describe() string {
	return s.path
}

func (s *FileStore) compressed() bool {
	return strings.HasSuffix(s.path, ".gz")
}

// Load decodes the whole file. A missing file wraps ErrNotFound.
func (s *FileStore) Load(ctx context.Context) (*domain.RawActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to open activity file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var r io.Reader = file
	if s.compressed() {
		gr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() { _ = gr.Close() }()
		r = gr
	}
	return Decode(r)
}

// Save writes the document to a temporary file in the same directory and renames it
// into place, so readers never see a partial write.
func (s *FileStore) Save(ctx context.Context, a *domain.RawActivity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".activity-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := s.encode(tmp, a); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace activity file: %w", err)
	}
	return nil
}

func (s *FileStore) encode(w io.Writer, a *domain.RawActivity) error {
	if !s.compressed() {
		return Encode(w, a)
	}
	gw := gzip.NewWriter(w)
	if err := Encode(gw, a); err != nil {
		return err
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

// Decode reads one activity document.
func Decode(r io.Reader) (*domain.RawActivity, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity data: %w", err)
	}
	var a domain.RawActivity
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse activity data: %w", err)
	}
	return &a, nil
}

// Encode writes the document indented by four spaces, like the tracker always has.
func Encode(w io.Writer, a *domain.RawActivity) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("failed to encode activity data: %w", err)
	}
	return nil
}
