package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"practicehub/internal/normalize"
	"practicehub/models"
)

func names(ps []models.Practicante) []string {
	out := []string{}
	for _, p := range ps {
		out = append(out, p.Nombre)
	}
	return out
}

var interns = []models.Practicante{
	{ID: "1", Nombre: "Ana", Carrera: "Sistemas", Email: "ana@uni.edu", Area: "Frontend", Tecnologias: normalize.List{"React", "TypeScript"}},
	{ID: "2", Nombre: "Luis", Carrera: "Diseño", Email: "luis@uni.edu", Area: "UX", Tecnologias: normalize.List{"Figma"}, Estado: models.EstadoAsignado},
	{ID: "3", Nombre: "Marta", Carrera: "Sistemas", Email: "marta@uni.edu", Area: "Backend", Tecnologias: normalize.List{"Go", "PostgreSQL"}},
}

func TestCriteriaApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		assigned AssignedFunc
		want     []string
	}{
		{"no filters", Criteria{}, nil, []string{"Ana", "Luis", "Marta"}},
		{"search by career", Criteria{Search: "sistemas"}, nil, []string{"Ana", "Marta"}},
		{"search by email", Criteria{Search: "LUIS@"}, nil, []string{"Luis"}},
		{"name only ignores career", Criteria{Search: "sistemas", NameOnly: true}, nil, []string{}},
		{"name only matches name", Criteria{Search: "mar", NameOnly: true}, nil, []string{"Marta"}},
		{"area ignores case", Criteria{Area: "backend"}, nil, []string{"Marta"}},
		{"technology substring", Criteria{Technology: "script"}, nil, []string{"Ana"}},
		{"stored estado", Criteria{Availability: "asignado"}, nil, []string{"Luis"}},
		{"available by stored estado", Criteria{Availability: "disponible"}, nil, []string{"Ana", "Marta"}},
		{
			"resolver or stored estado",
			Criteria{Availability: "asignado"},
			Either(func(p models.Practicante) bool { return p.ID == "3" }),
			[]string{"Luis", "Marta"},
		},
		{"combined", Criteria{Search: "a", Area: "Frontend", Technology: "react"}, nil, []string{"Ana"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(tt.criteria.Apply(interns, tt.assigned)))
		})
	}
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, Criteria{Search: "  "}.IsZero())
	assert.False(t, Criteria{Area: "UX"}.IsZero())
}
