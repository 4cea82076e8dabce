package store

import (
	"context"
	"errors"

	"github.com/nhle/portfolio/internal/model"
)

// ErrOperationFailed is returned for every failed call, whatever the
// transport error or HTTP status. Callers only distinguish success from
// failure.
var ErrOperationFailed = errors.New("operation failed")

// Store defines the persistence interface for portfolio projects.
type Store interface {
	// ListProjects returns the collection in server order.
	ListProjects(ctx context.Context) ([]model.Project, error)

	// GetProject returns a single project by id.
	GetProject(ctx context.Context, id string) (*model.Project, error)

	// CreateProject persists a new project and returns the server's record,
	// including its assigned id and creation time.
	CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error)

	// UpdateProject replaces the project with the given id using the full
	// representation in.
	UpdateProject(ctx context.Context, id string, in model.ProjectInput) (*model.Project, error)

	// DeleteProject removes the project with the given id.
	DeleteProject(ctx context.Context, id string) error
}
