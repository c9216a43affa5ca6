// Package assignment decides which interns are assigned to projects and
// records new assignments. Project reference lists may hold intern ids,
// full display names or name fragments; Matcher is the one place that
// interprets them.
package assignment

import (
	"strings"

	"practicehub/internal/normalize"
	"practicehub/models"
)

// MatchKind says which rule tied a reference to an intern.
type MatchKind string

const (
	ByID           MatchKind = "by_id"
	ByName         MatchKind = "by_name"
	ByNameFragment MatchKind = "by_name_fragment"
)

// Matcher compares project references against interns. Comparisons are
// case-insensitive.
type Matcher struct {
	// NameFragments enables the substring rule: a reference contained in
	// the intern's display name counts as a match.
	NameFragments bool
}

// NewMatcher returns a Matcher with the substring rule set as given.
func NewMatcher(nameFragments bool) Matcher {
	return Matcher{NameFragments: nameFragments}
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match reports whether a single reference refers to p.
func (m Matcher) Match(ref string, p models.Practicante) (MatchKind, bool) {
	v := fold(ref)
	if v == "" {
		return "", false
	}
	if id := fold(p.ID.String()); id != "" && v == id {
		return ByID, true
	}
	name := fold(p.DisplayName())
	if name == "" {
		return "", false
	}
	if v == name {
		return ByName, true
	}
	if m.NameFragments && strings.Contains(name, v) {
		return ByNameFragment, true
	}
	return "", false
}

// MatchAny tests refs in order and returns the first reference that hits.
func (m Matcher) MatchAny(refs []string, p models.Practicante) (string, MatchKind, bool) {
	for _, ref := range refs {
		if kind, ok := m.Match(ref, p); ok {
			return ref, kind, true
		}
	}
	return "", "", false
}

// InternsIn returns the interns referenced by project, in intern order.
func (m Matcher) InternsIn(project models.Proyecto, interns []models.Practicante) []models.Practicante {
	refs := normalize.Strings([]string(project.Practicantes), normalize.Comma)
	out := []models.Practicante{}
	for _, p := range interns {
		if _, _, ok := m.MatchAny(refs, p); ok {
			out = append(out, p)
		}
	}
	return out
}

// ProjectsOf returns the projects whose references resolve to intern.
func (m Matcher) ProjectsOf(intern models.Practicante, projects []models.Proyecto) []models.Proyecto {
	out := []models.Proyecto{}
	for _, pr := range projects {
		refs := normalize.Strings([]string(pr.Practicantes), normalize.Comma)
		if _, _, ok := m.MatchAny(refs, intern); ok {
			out = append(out, pr)
		}
	}
	return out
}
