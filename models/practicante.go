package models

import (
	"strings"

	"practicehub/internal/normalize"
)

// Availability values stored in practicantes.estado.
const (
	EstadoDisponible = "disponible"
	EstadoAsignado   = "asignado"
)

// Areas offered by the intern forms.
var Areas = []string{"Frontend", "Backend", "UX", "QA", "Mobile", "Fullstack"}

// Practicante represents an intern row in the practicantes table.
type Practicante struct {
	ID            ID             `json:"id,omitempty"`
	Nombre        string         `json:"nombre"`
	Apellido      *string        `json:"apellido,omitempty"` // Nullable
	Carrera       string         `json:"carrera"`
	Email         string         `json:"email"`
	Telefono      string         `json:"telefono"`
	Semestre      *int           `json:"semestre,omitempty"` // Nullable
	Area          string         `json:"area"`
	Tecnologias   normalize.List `json:"tecnologias"`
	SoftSkills    normalize.List `json:"soft_skills"`
	Proyectos     normalize.List `json:"proyectos"`
	Descripcion   string         `json:"descripcion"`
	PortafolioURL string         `json:"portafolio_url"`
	Estado        string         `json:"estado"`
}

// DisplayName is the name shown in lists: nombre plus apellido when present.
func (p Practicante) DisplayName() string {
	name := strings.TrimSpace(p.Nombre)
	if p.Apellido != nil {
		if last := strings.TrimSpace(*p.Apellido); last != "" {
			if name == "" {
				return last
			}
			name += " " + last
		}
	}
	return name
}

// NormalizeEstado maps any stored or imported availability value onto the
// two canonical ones. Only the literal assigned value (Spanish or English)
// counts as assigned.
func NormalizeEstado(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case EstadoAsignado, "assigned":
		return EstadoAsignado
	default:
		return EstadoDisponible
	}
}

// AvailabilityLabel is the human label used by listings and exports.
func AvailabilityLabel(estado string) string {
	if NormalizeEstado(estado) == EstadoAsignado {
		return "No disponible"
	}
	return "Disponible"
}
