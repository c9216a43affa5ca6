package assignment

import (
	"math"
	"strings"

	"practicehub/internal/normalize"
	"practicehub/models"
)

// UnspecifiedArea is the bucket for interns without an area.
const UnspecifiedArea = "unspecified"

// Totals are the dashboard counters.
type Totals struct {
	Interns         int `json:"interns"`
	Available       int `json:"available"`
	Assigned        int `json:"assigned"`
	Projects        int `json:"projects"`
	AvailabilityPct int `json:"availability_pct"`
}

// HeuristicMatch records an intern that is assigned only because a
// reference is a fragment of its name.
type HeuristicMatch struct {
	InternID  models.ID `json:"practicante_id"`
	Intern    string    `json:"practicante"`
	Reference string    `json:"reference"`
}

// Report is the resolver output served by the dashboard.
type Report struct {
	Totals           Totals               `json:"totals"`
	ByArea           map[string]int       `json:"by_area"`
	Assigned         []models.Practicante `json:"assigned"`
	Available        []models.Practicante `json:"available"`
	HeuristicMatches []HeuristicMatch     `json:"heuristic_matches"`
	// Warnings are served in the response envelope, not in the report body.
	Warnings []string `json:"-"`

	assigned map[models.ID]bool
}

// IsAssigned reports whether the resolver placed p in the assigned set.
func (r *Report) IsAssigned(p models.Practicante) bool {
	return r.assigned[p.ID]
}

// AssignedValues unions every project's references into one ordered,
// case-folded, de-duplicated list.
func AssignedValues(projects []models.Proyecto) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, pr := range projects {
		for _, ref := range normalize.Strings([]string(pr.Practicantes), normalize.Comma) {
			v := fold(ref)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Percentage returns round(part/total*100), or 0 when total is 0.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// AreaCounts groups interns by area; blank areas count as UnspecifiedArea.
func AreaCounts(interns []models.Practicante) map[string]int {
	counts := make(map[string]int)
	for _, p := range interns {
		area := strings.TrimSpace(p.Area)
		if area == "" {
			area = UnspecifiedArea
		}
		counts[area]++
	}
	return counts
}

// Resolve partitions interns into assigned and available against the
// references held by projects.
func (m Matcher) Resolve(interns []models.Practicante, projects []models.Proyecto) *Report {
	values := AssignedValues(projects)
	r := &Report{
		ByArea:           AreaCounts(interns),
		Assigned:         []models.Practicante{},
		Available:        []models.Practicante{},
		HeuristicMatches: []HeuristicMatch{},
		assigned:         make(map[models.ID]bool),
	}
	for _, p := range interns {
		ref, kind, ok := m.MatchAny(values, p)
		if !ok {
			r.Available = append(r.Available, p)
			continue
		}
		r.Assigned = append(r.Assigned, p)
		r.assigned[p.ID] = true
		if kind == ByNameFragment {
			r.HeuristicMatches = append(r.HeuristicMatches, HeuristicMatch{
				InternID:  p.ID,
				Intern:    p.DisplayName(),
				Reference: ref,
			})
		}
	}
	r.Totals = Totals{
		Interns:         len(interns),
		Available:       len(r.Available),
		Assigned:        len(r.Assigned),
		Projects:        len(projects),
		AvailabilityPct: Percentage(len(r.Available), len(interns)),
	}
	return r
}
