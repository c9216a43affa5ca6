// Package store is the boundary to the hosted tables. Every backend reads
// list columns through normalize.List, so callers always get clean slices.
package store

import (
	"context"

	"practicehub/models"
)

// Table names in the hosted database.
const (
	InternsTable  = "practicantes"
	ProjectsTable = "proyectos"
)

// FallbackInternColumns is the reduced column set used when the full intern
// listing fails.
var FallbackInternColumns = []string{"id", "nombre", "apellido", "area", "estado"}

// FallbackInternLimit caps the degraded intern listing.
const FallbackInternLimit = 10

// ListOptions narrows a table read. The zero value selects every column,
// ordered by nombre ascending, without a row cap.
type ListOptions struct {
	Columns    []string
	OrderBy    string
	Descending bool
	Limit      int
}

func (o ListOptions) orderColumn() string {
	if o.OrderBy == "" {
		return "nombre"
	}
	return o.OrderBy
}

// InternRepository reads and writes the practicantes table.
type InternRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.Practicante, error)
	Get(ctx context.Context, id models.ID) (*models.Practicante, error)
	Create(ctx context.Context, p *models.Practicante) (*models.Practicante, error)
	CreateMany(ctx context.Context, ps []models.Practicante) (int, error)
	Update(ctx context.Context, id models.ID, p *models.Practicante) (*models.Practicante, error)
	Delete(ctx context.Context, id models.ID) error
}

// ProjectRepository reads and writes the proyectos table.
type ProjectRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.Proyecto, error)
	Get(ctx context.Context, id models.ID) (*models.Proyecto, error)
	Create(ctx context.Context, p *models.Proyecto) (*models.Proyecto, error)
	Update(ctx context.Context, id models.ID, p *models.Proyecto) (*models.Proyecto, error)
	// SetInterns replaces the whole reference list. There is no merge and
	// no version check: concurrent writers race, last write wins.
	SetInterns(ctx context.Context, id models.ID, refs []string) error
	Delete(ctx context.Context, id models.ID) error
}

// Store groups the two repositories handed to handlers.
type Store struct {
	Interns  InternRepository
	Projects ProjectRepository
}
