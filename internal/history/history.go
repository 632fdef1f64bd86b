package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/htmlslim/htmlslim/internal/model"
)

// Store records completed runs in a SQLite database.
// It manages connection pooling and provides methods for saving and
// listing run records.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance during batch runs.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a run-history store in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, "htmlslim.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids lock
	// contention between concurrent batch workers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_path TEXT NOT NULL,
		mode TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		minified_size INTEGER NOT NULL,
		text_chars INTEGER NOT NULL,
		comments_bytes INTEGER NOT NULL,
		scripts_bytes INTEGER NOT NULL,
		scripts_count INTEGER NOT NULL,
		styles_bytes INTEGER NOT NULL,
		styles_count INTEGER NOT NULL,
		inline_style_attr_bytes INTEGER NOT NULL,
		data_uri_bytes INTEGER NOT NULL,
		images_count INTEGER NOT NULL,
		output_path TEXT,
		output_size INTEGER,
		processed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input_path);
	CREATE INDEX IF NOT EXISTS idx_runs_processed ON runs(processed_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// SaveResult inserts one completed run.
func (s *Store) SaveResult(ctx context.Context, result *model.Result) (int64, error) {
	query := `
	INSERT INTO runs (
		input_path, mode, file_size, minified_size, text_chars,
		comments_bytes, scripts_bytes, scripts_count, styles_bytes,
		styles_count, inline_style_attr_bytes, data_uri_bytes,
		images_count, output_path, output_size, processed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	r := result.Report
	res, err := s.db.ExecContext(ctx, query,
		result.InputPath,
		string(result.Mode),
		r.FileSize,
		r.MinifiedSize,
		r.TextChars,
		r.CommentsBytes,
		r.ScriptsBytes,
		r.ScriptsCount,
		r.StylesBytes,
		r.StylesCount,
		r.InlineStyleAttrBytes,
		r.DataURIBytes,
		r.ImagesCount,
		result.OutputPath,
		result.OutputSize,
		result.ProcessedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run record: %w", err)
	}

	return res.LastInsertId()
}

// Entry is a stored run record.
type Entry struct {
	ID          int64
	InputPath   string
	Mode        model.Mode
	FileSize    int
	OutputPath  string
	OutputSize  int
	ProcessedAt time.Time
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
	SELECT id, input_path, mode, file_size, output_path, output_size, processed_at
	FROM runs
	ORDER BY id DESC
	LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query run records: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only result set

	var entries []Entry
	for rows.Next() {
		var e Entry
		var mode, timestamp string
		var outputPath sql.NullString
		var outputSize sql.NullInt64

		if err := rows.Scan(&e.ID, &e.InputPath, &mode, &e.FileSize, &outputPath, &outputSize, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}

		e.Mode = model.Mode(mode)
		e.OutputPath = outputPath.String
		e.OutputSize = int(outputSize.Int64)
		e.ProcessedAt = parseTimestamp(timestamp)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// parseTimestamp parses the stored timestamp. SQLite may return different
// formats depending on how the value was written.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
