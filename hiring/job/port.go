package job

import (
	"context"

	"github.com/hirestack/beacon/pkg/kernel"
)

type Repository interface {
	// Create adds a posting to the catalog
	Create(ctx context.Context, posting *JobPosting) error

	// GetByID retrieves a posting by ID
	GetByID(ctx context.Context, id kernel.JobID) (*JobPosting, error)

	// ListPublished retrieves every published posting. The matcher scores
	// the full published catalog on each request.
	ListPublished(ctx context.Context) ([]JobPosting, error)
}
