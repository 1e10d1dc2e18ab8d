package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateApp is returned when activity data names the same application twice.
var ErrDuplicateApp = errors.New("duplicate application key")

// RawActivity is the tracker's output: application name to usage record.
// Key order of the source document is preserved.
type RawActivity struct {
	Apps []NamedRecord
}

// NamedRecord pairs an application identifier with its raw usage record.
type NamedRecord struct {
	Name   string
	Record RawAppRecord
}

// RawAppRecord holds the accumulated usage of a single application.
type RawAppRecord struct {
	TotalTime      float64      `json:"total_time"`
	TotalSessions  int          `json:"total_sessions"`
	AvgCPUUsage    float64      `json:"avg_cpu_usage"`
	AvgMemoryUsage float64      `json:"avg_memory_usage"`
	LastPath       string       `json:"last_path"`
	WindowTitles   []string     `json:"window_titles,omitempty"`
	Sessions       []RawSession `json:"sessions"`
}

// RawSession is one foreground interval of an application.
type RawSession struct {
	StartTime Timestamp `json:"start_time"`
	EndTime   Timestamp `json:"end_time"`
	Duration  *float64  `json:"duration,omitempty"`
}

// Get returns the record stored under name, or nil.
func (a *RawActivity) Get(name string) *RawAppRecord {
	for i := range a.Apps {
		if a.Apps[i].Name == name {
			return &a.Apps[i].Record
		}
	}
	return nil
}

// Add appends a new record and returns a pointer to it. Callers must check Get first.
func (a *RawActivity) Add(name string, rec RawAppRecord) *RawAppRecord {
	a.Apps = append(a.Apps, NamedRecord{Name: name, Record: rec})
	return &a.Apps[len(a.Apps)-1].Record
}

// Len returns the number of applications.
func (a *RawActivity) Len() int {
	return len(a.Apps)
}

// UnmarshalJSON decodes the top-level object while keeping key order and rejecting duplicates.
func (a *RawActivity) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read activity data: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("activity data must be a JSON object")
	}

	apps := make([]NamedRecord, 0)
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read application key: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in activity data", tok)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateApp, name)
		}
		seen[name] = struct{}{}

		var rec RawAppRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("failed to decode record for %q: %w", name, err)
		}
		apps = append(apps, NamedRecord{Name: name, Record: rec})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read end of activity data: %w", err)
	}

	a.Apps = apps
	return nil
}

// MarshalJSON encodes the mapping as an object in stored order.
func (a RawActivity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, app := range a.Apps {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(app.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(app.Record)
		if err != nil {
			return nil, fmt.Errorf("failed to encode record for %q: %w", app.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ProcessedApp is the normalized, read-only view of one application.
type ProcessedApp struct {
	AppName          string             `json:"appName"`
	TotalTime        float64            `json:"totalTime"`
	SessionsCount    int                `json:"sessionsCount"`
	AvgSessionLength float64            `json:"avgSessionLength"`
	CPUUsage         float64            `json:"cpuUsage"`
	MemoryUsage      float64            `json:"memoryUsage"`
	Path             string             `json:"path"`
	Sessions         []ProcessedSession `json:"sessions"`
}

// ProcessedSession carries the raw session fields plus parsed instants.
// Duration is the canonical length in seconds chosen by the preprocessing policy.
type ProcessedSession struct {
	StartTime        Timestamp `json:"start_time"`
	EndTime          Timestamp `json:"end_time"`
	SuppliedDuration *float64  `json:"suppliedDuration,omitempty"`
	Duration         float64   `json:"duration"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
}

// Hours returns the canonical duration in hours.
func (s ProcessedSession) Hours() float64 {
	return s.Duration / 3600
}

// DurationMismatch records a session whose duration field disagrees with its timestamps.
type DurationMismatch struct {
	App      string  `json:"app"`
	Session  int     `json:"session"`
	Supplied float64 `json:"supplied"`
	Derived  float64 `json:"derived"`
}

// Dataset is the immutable output of preprocessing for one analysis pass.
type Dataset struct {
	Apps       []ProcessedApp
	Location   *time.Location
	Mismatches []DurationMismatch
}
