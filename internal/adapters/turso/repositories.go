package turso

import (
	"database/sql"

	"github.com/aryan-gupta7/track-it-v1/internal/ports"
)

// Repositories holds all turso repository implementations as port interfaces.
type Repositories struct {
	ActivitySource ports.ActivitySource
	ActivitySink   ports.ActivitySink
	Snapshots      ports.SnapshotRepository
}

// NewRepositories creates all turso repository implementations from a database connection.
func NewRepositories(db *sql.DB) *Repositories {
	activity := NewActivityRepository(db)
	return &Repositories{
		ActivitySource: activity,
		ActivitySink:   activity,
		Snapshots:      NewSnapshotRepository(db),
	}
}
