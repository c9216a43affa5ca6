// Package filter applies the intern list filters shared by the list,
// assignment and export endpoints.
package filter

import (
	"strings"

	"practicehub/models"
)

// Criteria are the transient list filters taken from the query string.
// Empty fields match everything.
type Criteria struct {
	Search       string `query:"search"`
	Area         string `query:"area"`
	Availability string `query:"availability" validate:"omitempty,oneof=disponible asignado"`
	Technology   string `query:"technology"`
	// NameOnly restricts Search to the display name, as the assignment
	// board does.
	NameOnly bool `query:"-"`
}

// AssignedFunc reports whether an intern counts as assigned.
type AssignedFunc func(models.Practicante) bool

// StoredEstado treats only the stored estado column as truth.
func StoredEstado(p models.Practicante) bool {
	return models.NormalizeEstado(p.Estado) == models.EstadoAsignado
}

// Either combines the resolver decision with the stored estado: an intern
// is assigned when either says so.
func Either(resolved AssignedFunc) AssignedFunc {
	return func(p models.Practicante) bool {
		return StoredEstado(p) || (resolved != nil && resolved(p))
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// Match reports whether p passes every criterion.
func (c Criteria) Match(p models.Practicante, assigned AssignedFunc) bool {
	if q := strings.ToLower(strings.TrimSpace(c.Search)); q != "" {
		if !contains(p.DisplayName(), q) && (c.NameOnly || (!contains(p.Carrera, q) && !contains(p.Email, q))) {
			return false
		}
	}
	if area := strings.TrimSpace(c.Area); area != "" && !strings.EqualFold(strings.TrimSpace(p.Area), area) {
		return false
	}
	if want := strings.ToLower(strings.TrimSpace(c.Availability)); want != "" {
		if assigned == nil {
			assigned = StoredEstado
		}
		is := assigned(p)
		if (want == models.EstadoAsignado) != is {
			return false
		}
	}
	if tech := strings.ToLower(strings.TrimSpace(c.Technology)); tech != "" {
		found := false
		for _, t := range p.Tecnologias {
			if contains(t, tech) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply returns the interns that pass c, keeping their order.
func (c Criteria) Apply(interns []models.Practicante, assigned AssignedFunc) []models.Practicante {
	out := make([]models.Practicante, 0, len(interns))
	for _, p := range interns {
		if c.Match(p, assigned) {
			out = append(out, p)
		}
	}
	return out
}

// IsZero reports whether no filter is set.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" && strings.TrimSpace(c.Area) == "" &&
		strings.TrimSpace(c.Availability) == "" && strings.TrimSpace(c.Technology) == ""
}
