// ABOUTME: Project persistence interface and backend selection
// ABOUTME: Backends: in-memory (default), SQLite via ncruces, Postgres via pgx

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/engestimate/estimator/backend/models"
)

// ErrNotFound is returned when a project ID does not exist.
var ErrNotFound = errors.New("project not found")

// Store persists projects and their latest estimate.
type Store interface {
	// Create assigns an ID and timestamps and stores the project.
	Create(ctx context.Context, p models.Project) (models.Project, error)
	Get(ctx context.Context, id string) (models.Project, error)
	// List returns projects oldest first.
	List(ctx context.Context, includeArchived bool) ([]models.Project, error)
	SaveEstimate(ctx context.Context, id string, snap models.EstimateSnapshot) (models.Project, error)
	// Archive soft-deletes a project. Archived projects remain readable by ID.
	Archive(ctx context.Context, id string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open returns the backend named by driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, DriverPostgres:
		return NewSQL(ctx, driver, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
