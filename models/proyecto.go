package models

import "practicehub/internal/normalize"

// Project states offered by the project forms. The column is free text.
const (
	ProyectoActivo  = "Activo"
	ProyectoEnPausa = "En pausa"
)

// Proyecto represents a project row in the proyectos table. Practicantes
// holds intern references, which historically may be ids, display names or
// name fragments.
type Proyecto struct {
	ID           ID             `json:"id,omitempty"`
	Nombre       string         `json:"nombre"`
	Descripcion  string         `json:"descripcion"`
	Cliente      string         `json:"cliente"`
	Lider        string         `json:"lider"`
	Estado       string         `json:"estado"`
	Practicantes normalize.List `json:"practicantes"`
}
