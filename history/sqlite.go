package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite stores the log in a SQLite database; insertion order is kept by an autoincrement key.
type SQLite struct {
	db *sqlx.DB
}

type attemptRow struct {
	ID        string `db:"id"`
	Filename  string `db:"filename"`
	Platform  string `db:"platform"`
	Author    string `db:"author"`
	URL       string `db:"url"`
	Outcome   string `db:"outcome"`
	CreatedAt int64  `db:"created_at"`
}

// NewSQLite opens the database at path and applies pending migrations.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := runMigrations(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db := sqlx.NewDb(sqlDB, "sqlite3")
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	return &SQLite{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Append implements Store.
func (s *SQLite) Append(ctx context.Context, attempt Attempt) error {
	const query = `
		INSERT INTO attempts (id, filename, platform, author, url, outcome, created_at)
		VALUES (:id, :filename, :platform, :author, :url, :outcome, :created_at)
	`

	_, err := s.db.NamedExecContext(ctx, query, attemptRow{
		ID:        attempt.ID.String(),
		Filename:  attempt.Filename,
		Platform:  attempt.Platform,
		Author:    attempt.Author,
		URL:       attempt.URL,
		Outcome:   string(attempt.Outcome),
		CreatedAt: attempt.Timestamp.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// List implements Store.
func (s *SQLite) List(ctx context.Context) ([]Attempt, error) {
	var rows []attemptRow
	const query = `SELECT id, filename, platform, author, url, outcome, created_at FROM attempts ORDER BY seq`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	attempts := make([]Attempt, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("attempt %q: %w", row.ID, err)
		}
		attempts = append(attempts, Attempt{
			ID:        id,
			Filename:  row.Filename,
			Platform:  row.Platform,
			Author:    row.Author,
			URL:       row.URL,
			Outcome:   Outcome(row.Outcome),
			Timestamp: time.UnixMilli(row.CreatedAt),
		})
	}
	return attempts, nil
}

// Clear implements Store.
func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attempts`); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}
