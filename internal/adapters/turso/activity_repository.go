package turso

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

// ActivityRepository stores the raw usage mapping in libSQL. It serves as both an
// activity source and sink.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Describe() string {
	return "database"
}

// Load reads every app in its stored order.
func (r *ActivityRepository) Load(ctx context.Context) (*domain.RawActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, total_time, total_sessions, avg_cpu_usage, avg_memory_usage, last_path
		FROM apps ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	defer rows.Close()

	activity := &domain.RawActivity{Apps: make([]domain.NamedRecord, 0)}
	for rows.Next() {
		var name string
		rec := domain.RawAppRecord{Sessions: make([]domain.RawSession, 0)}
		if err := rows.Scan(&name, &rec.TotalTime, &rec.TotalSessions, &rec.AvgCPUUsage, &rec.AvgMemoryUsage, &rec.LastPath); err != nil {
			return nil, fmt.Errorf("failed to scan app: %w", err)
		}
		activity.Add(name, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}

	for i := range activity.Apps {
		entry := &activity.Apps[i]
		sessions, err := r.sessions(ctx, entry.Name)
		if err != nil {
			return nil, err
		}
		entry.Record.Sessions = sessions

		titles, err := r.titles(ctx, entry.Name)
		if err != nil {
			return nil, err
		}
		entry.Record.WindowTitles = titles
	}
	return activity, nil
}

func (r *ActivityRepository) sessions(ctx context.Context, app string) ([]domain.RawSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT start_time, start_numeric, end_time, end_numeric, duration
		FROM app_sessions WHERE app_name = ? ORDER BY seq
	`, app)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for %q: %w", app, err)
	}
	defer rows.Close()

	sessions := make([]domain.RawSession, 0)
	for rows.Next() {
		var start, end string
		var startNumeric, endNumeric int64
		var duration sql.NullFloat64
		if err := rows.Scan(&start, &startNumeric, &end, &endNumeric, &duration); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, domain.RawSession{
			StartTime: domain.NewTimestamp(start, startNumeric == 1),
			EndTime:   domain.NewTimestamp(end, endNumeric == 1),
			Duration:  util.NullFloat64ToPtr(duration),
		})
	}
	return sessions, rows.Err()
}

func (r *ActivityRepository) titles(ctx context.Context, app string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT title FROM app_window_titles WHERE app_name = ? ORDER BY seq`, app)
	if err != nil {
		return nil, fmt.Errorf("failed to list window titles for %q: %w", app, err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan window title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// Save replaces the stored mapping in one transaction.
func (r *ActivityRepository) Save(ctx context.Context, a *domain.RawActivity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{`DELETE FROM app_window_titles`, `DELETE FROM app_sessions`, `DELETE FROM apps`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear activity: %w", err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for pos, entry := range a.Apps {
		rec := entry.Record
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO apps (name, position, total_time, total_sessions, avg_cpu_usage, avg_memory_usage, last_path, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, entry.Name, pos, rec.TotalTime, rec.TotalSessions, rec.AvgCPUUsage, rec.AvgMemoryUsage, rec.LastPath, now); err != nil {
			return fmt.Errorf("failed to insert app %q: %w", entry.Name, err)
		}

		for seq, s := range rec.Sessions {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO app_sessions (app_name, seq, start_time, start_numeric, end_time, end_numeric, duration)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, entry.Name, seq, s.StartTime.String(), util.BoolToInt64(s.StartTime.IsNumeric()),
				s.EndTime.String(), util.BoolToInt64(s.EndTime.IsNumeric()), util.NullFloat64(s.Duration)); err != nil {
				return fmt.Errorf("failed to insert session %d of %q: %w", seq, entry.Name, err)
			}
		}

		for seq, title := range rec.WindowTitles {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO app_window_titles (app_name, seq, title) VALUES (?, ?, ?)
			`, entry.Name, seq, title); err != nil {
				return fmt.Errorf("failed to insert window title of %q: %w", entry.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activity: %w", err)
	}
	return nil
}
