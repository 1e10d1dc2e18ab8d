package turso

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tursodatabase/go-libsql"

	"github.com/aryan-gupta7/track-it-v1/internal/infrastructure/config"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

const defaultDBFile = "trackit.db"

// DB wraps the connection and, for embedded replicas, the connector that syncs it.
type DB struct {
	*sql.DB
	connector *libsql.Connector
}

// NewDB opens the configured database. Without a URL it opens a local file; with a
// URL it connects remotely, or through a local embedded replica when enabled.
func NewDB(cfg config.Database) (*DB, error) {
	switch {
	case cfg.URL == "":
		return openLocal(cfg.Path)
	case cfg.Replica:
		return openReplica(cfg)
	default:
		return openRemote(cfg)
	}
}

func localPath(path string) (string, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
		return path, nil
	}
	return util.DataFile(defaultDBFile)
}

func openLocal(path string) (*DB, error) {
	path, err := localPath(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{DB: db}, nil
}

func openRemote(cfg config.Database) (*DB, error) {
	connStr := cfg.URL
	if cfg.AuthToken != "" {
		sep := "?"
		if strings.Contains(connStr, "?") {
			sep = "&"
		}
		connStr += sep + "authToken=" + cfg.AuthToken
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Turso closes idle Hrana streams aggressively; stale pooled connections fail
	// with "stream not found".
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{DB: db}, nil
}

func openReplica(cfg config.Database) (*DB, error) {
	path, err := localPath(cfg.Path)
	if err != nil {
		return nil, err
	}

	var opts []libsql.Option
	if cfg.AuthToken != "" {
		opts = append(opts, libsql.WithAuthToken(cfg.AuthToken))
	}
	connector, err := libsql.NewEmbeddedReplicaConnector(path, cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedded replica: %w", err)
	}

	return &DB{DB: sql.OpenDB(connector), connector: connector}, nil
}

// Sync pulls remote changes into an embedded replica. It is a no-op otherwise.
func (d *DB) Sync() error {
	if d.connector == nil {
		return nil
	}
	if _, err := d.connector.Sync(); err != nil {
		return fmt.Errorf("failed to sync replica: %w", err)
	}
	return nil
}

// Close closes the connection and the replica connector.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.connector != nil {
		if cerr := d.connector.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
