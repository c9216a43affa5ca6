package assignment

import (
	"context"

	"practicehub/errs"
	"practicehub/internal/normalize"
	"practicehub/internal/store"
	"practicehub/models"
)

// AddReference appends internID to refs unless it is already present. The
// input slice is never modified.
func AddReference(refs []string, internID string) ([]string, bool) {
	for _, r := range refs {
		if r == internID {
			return refs, false
		}
	}
	out := make([]string, 0, len(refs)+1)
	out = append(out, refs...)
	return append(out, internID), true
}

// Assign adds internID to the project's reference list and writes the whole
// list back. The read and the write are not atomic: a concurrent Assign on
// the same project can overwrite this one.
func Assign(ctx context.Context, projects store.ProjectRepository, projectID, internID models.ID) (added bool, err error) {
	if projectID.IsZero() || internID.IsZero() {
		return false, errs.NewBadRequestError("proyecto_id and practicante_id are required")
	}
	project, err := projects.Get(ctx, projectID)
	if err != nil {
		return false, err
	}
	refs := normalize.Strings([]string(project.Practicantes), normalize.Comma)
	next, added := AddReference(refs, internID.String())
	if !added {
		return false, nil
	}
	if err := projects.SetInterns(ctx, projectID, next); err != nil {
		return false, err
	}
	return true, nil
}
