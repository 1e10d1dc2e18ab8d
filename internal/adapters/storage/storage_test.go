package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

const sampleJSON = `{
    "code.exe": {
        "total_time": 120,
        "total_sessions": 1,
        "avg_cpu_usage": 3.5,
        "avg_memory_usage": 10,
        "last_path": "C:\\code.exe",
        "sessions": [
            {"start_time": "2024-01-15T09:00:00", "end_time": "2024-01-15T09:02:00", "duration": 120}
        ]
    },
    "chrome.exe": {
        "total_time": 0,
        "total_sessions": 0,
        "avg_cpu_usage": 0,
        "avg_memory_usage": 0,
        "last_path": "",
        "sessions": []
    }
}`

func TestFileStore_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity_data.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if a.Len() != 2 || a.Apps[0].Name != "code.exe" || a.Apps[1].Name != "chrome.exe" {
		t.Fatalf("unexpected apps %+v", a.Apps)
	}
	if a.Apps[0].Record.LastPath != `C:\code.exe` {
		t.Errorf("last_path = %q", a.Apps[0].Record.LastPath)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[1, 2]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Error("expected error for non-object document")
	}
}

func TestFileStore_SaveRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"plain", "activity_data.json"},
		{"gzip", "activity_data.json.gz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store := NewFileStore(filepath.Join(dir, "nested", tt.file))

			src, err := Decode(strings.NewReader(sampleJSON))
			if err != nil {
				t.Fatal(err)
			}
			if err := store.Save(context.Background(), src); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			got, err := store.Load(context.Background())
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got.Len() != 2 || got.Apps[0].Name != "code.exe" {
				t.Errorf("unexpected apps %+v", got.Apps)
			}

			entries, err := os.ReadDir(filepath.Join(dir, "nested"))
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 {
				t.Errorf("expected only the data file, found %d entries", len(entries))
			}
		})
	}
}

func TestFileStore_SaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewFileStore(filepath.Join(t.TempDir(), "a.json")).Save(ctx, &domain.RawActivity{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestURLSource_Load(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"ok", http.StatusOK, sampleJSON, false},
		{"not found", http.StatusNotFound, "", true},
		{"malformed", http.StatusOK, "{", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			src := NewURLSource(srv.URL)
			if src.Describe() != srv.URL {
				t.Errorf("Describe() = %q", src.Describe())
			}
			a, err := src.Load(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && a.Len() != 2 {
				t.Errorf("expected 2 apps, got %d", a.Len())
			}
		})
	}
}
