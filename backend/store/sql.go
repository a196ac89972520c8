// ABOUTME: database/sql project store shared by the SQLite and Postgres backends
// ABOUTME: Timestamps are stored as fixed-width UTC text so both dialects sort them the same way

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/engestimate/estimator/backend/models"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id                    TEXT PRIMARY KEY,
	name                  TEXT NOT NULL,
	project_size          TEXT NOT NULL,
	client_profile        TEXT NOT NULL DEFAULT '',
	client_complexity     INTEGER NOT NULL DEFAULT 5,
	archived              INTEGER NOT NULL DEFAULT 0,
	created_at            TEXT NOT NULL,
	updated_at            TEXT NOT NULL,
	base_hours            INTEGER,
	complexity_multiplier DOUBLE PRECISION,
	adjusted_hours        INTEGER,
	total_hours           INTEGER,
	duration_weeks        INTEGER,
	confidence_level      TEXT,
	estimated_at          TEXT
)`

const projectColumns = `id, name, project_size, client_profile, client_complexity, archived,
	created_at, updated_at, base_hours, complexity_multiplier, adjusted_hours,
	total_hours, duration_weeks, confidence_level, estimated_at`

// SQLStore persists projects through database/sql.
type SQLStore struct {
	db       *sql.DB
	postgres bool
}

// NewSQL opens a SQLite or Postgres database and ensures the schema exists.
func NewSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%s store requires a DSN", driver)
	}

	var sqlDriver string
	switch driver {
	case DriverSQLite:
		sqlDriver = "sqlite3"
	case DriverPostgres:
		sqlDriver = "pgx"
	default:
		return nil, fmt.Errorf("unknown SQL driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == DriverSQLite {
		// One writer avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLStore{db: db, postgres: driver == DriverPostgres}, nil
}

// rebind rewrites ? placeholders to $n for Postgres.
func (s *SQLStore) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Archived = false
	p.Estimate = nil

	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO projects
		(id, name, project_size, client_profile, client_complexity, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)`),
		p.ID, p.Name, string(p.Size), string(p.ClientProfile), p.ClientComplexity,
		formatTime(now), formatTime(now))
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to insert project: %w", err)
	}
	return p, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (models.Project, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+projectColumns+` FROM projects WHERE id = ?`), id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to load project: %w", err)
	}
	return p, nil
}

func (s *SQLStore) List(ctx context.Context, includeArchived bool) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *SQLStore) SaveEstimate(ctx context.Context, id string, snap models.EstimateSnapshot) (models.Project, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE projects SET
		base_hours = ?, complexity_multiplier = ?, adjusted_hours = ?, total_hours = ?,
		duration_weeks = ?, confidence_level = ?, estimated_at = ?, updated_at = ?
		WHERE id = ?`),
		snap.BaseHours, snap.ComplexityMultiplier, snap.AdjustedHours, snap.TotalHours,
		snap.DurationWeeks, string(snap.ConfidenceLevel), formatTime(snap.EstimatedAt),
		formatTime(time.Now().UTC()), id)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to save estimate: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return models.Project{}, err
	}
	return s.Get(ctx, id)
}

func (s *SQLStore) Archive(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE projects SET archived = 1, updated_at = ? WHERE id = ?`),
		formatTime(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("failed to archive project: %w", err)
	}
	return expectOneRow(res)
}

func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(sc scanner) (models.Project, error) {
	var (
		p                   models.Project
		size, profile       string
		archived            int
		created, updated    string
		baseHours, adjusted sql.NullInt64
		total, weeks        sql.NullInt64
		multiplier          sql.NullFloat64
		level, estimatedAt  sql.NullString
	)
	err := sc.Scan(&p.ID, &p.Name, &size, &profile, &p.ClientComplexity, &archived,
		&created, &updated, &baseHours, &multiplier, &adjusted, &total, &weeks, &level, &estimatedAt)
	if err != nil {
		return models.Project{}, err
	}

	p.Size = models.ProjectSize(size)
	p.ClientProfile = models.ClientProfile(profile)
	p.Archived = archived != 0
	if p.CreatedAt, err = parseTime(created); err != nil {
		return models.Project{}, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return models.Project{}, err
	}

	if estimatedAt.Valid {
		at, err := parseTime(estimatedAt.String)
		if err != nil {
			return models.Project{}, err
		}
		p.Estimate = &models.EstimateSnapshot{
			BaseHours:            int(baseHours.Int64),
			ComplexityMultiplier: multiplier.Float64,
			AdjustedHours:        int(adjusted.Int64),
			TotalHours:           int(total.Int64),
			DurationWeeks:        int(weeks.Int64),
			ConfidenceLevel:      models.ConfidenceLevel(level.String),
			EstimatedAt:          at,
		}
	}
	return p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
