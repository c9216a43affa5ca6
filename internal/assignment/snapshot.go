package assignment

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"practicehub/errs"
	"practicehub/internal/store"
	"practicehub/models"
)

// Snapshot is one read of both tables. A table whose fetch failed is empty
// and its client-safe error message is in Warnings.
type Snapshot struct {
	Interns  []models.Practicante
	Projects []models.Proyecto
	Warnings []string

	InternsErr  error
	ProjectsErr error
}

// LoadSnapshot fetches interns and projects in parallel. A failed fetch
// does not cancel the other one; the returned error joins every failure and
// the snapshot stays usable.
func LoadSnapshot(ctx context.Context, interns store.InternRepository, projects store.ProjectRepository) (*Snapshot, error) {
	var g errgroup.Group
	snap := &Snapshot{
		Interns:  []models.Practicante{},
		Projects: []models.Proyecto{},
	}
	g.Go(func() error {
		rows, err := interns.List(ctx, store.ListOptions{})
		if err != nil {
			snap.InternsErr = err
			return nil
		}
		snap.Interns = rows
		return nil
	})
	g.Go(func() error {
		rows, err := projects.List(ctx, store.ListOptions{})
		if err != nil {
			snap.ProjectsErr = err
			return nil
		}
		snap.Projects = rows
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{snap.InternsErr, snap.ProjectsErr} {
		if err != nil {
			snap.Warnings = append(snap.Warnings, errs.PublicMessage(err))
		}
	}
	return snap, errors.Join(snap.InternsErr, snap.ProjectsErr)
}

// Report resolves the snapshot and carries its warnings over.
func (m Matcher) Report(snap *Snapshot) *Report {
	r := m.Resolve(snap.Interns, snap.Projects)
	r.Warnings = append(r.Warnings, snap.Warnings...)
	return r
}
