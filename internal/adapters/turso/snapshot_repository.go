package turso

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

// timeLayout is fixed width so stored instants sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SnapshotRepository keeps a history of generated reports.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores the report and returns its new ID.
func (r *SnapshotRepository) Save(ctx context.Context, report *domain.Report) (string, error) {
	body, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	id := uuid.New().String()
	s := domain.NewSnapshot(id, report)
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO report_snapshots (
			id, generated_at, timezone, productivity_score, focus_score, work_percentage,
			switching_rate, break_count, total_seconds, app_count, report_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.GeneratedAt.UTC().Format(timeLayout), s.Timezone, s.ProductivityScore, s.FocusScore,
		s.WorkPercentage, s.SwitchingRate, s.BreakCount, s.TotalSeconds, s.AppCount, string(body))
	if err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return id, nil
}

// List returns the most recent snapshots first. A limit of zero means 50.
func (r *SnapshotRepository) List(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, generated_at, timezone, productivity_score, focus_score, work_percentage,
			switching_rate, break_count, total_seconds, app_count
		FROM report_snapshots ORDER BY generated_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]domain.Snapshot, 0)
	for rows.Next() {
		var s domain.Snapshot
		var generatedAt string
		if err := rows.Scan(&s.ID, &generatedAt, &s.Timezone, &s.ProductivityScore, &s.FocusScore,
			&s.WorkPercentage, &s.SwitchingRate, &s.BreakCount, &s.TotalSeconds, &s.AppCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.GeneratedAt = util.ParseTimeSQLite(generatedAt)
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// Get returns the full stored report, or nil when id is unknown.
func (r *SnapshotRepository) Get(ctx context.Context, id string) (*domain.Report, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT report_json FROM report_snapshots WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	return &report, nil
}

// DeleteBefore removes snapshots generated before the RFC 3339 instant.
func (r *SnapshotRepository) DeleteBefore(ctx context.Context, before string) (int64, error) {
	t, err := time.Parse(time.RFC3339, before)
	if err != nil {
		return 0, fmt.Errorf("invalid cutoff %q: %w", before, err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM report_snapshots WHERE generated_at < ?`, t.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to delete snapshots: %w", err)
	}
	return res.RowsAffected()
}
