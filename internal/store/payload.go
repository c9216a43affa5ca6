package store

import (
	"practicehub/internal/normalize"
	"practicehub/models"
)

// internPayload builds the column map written on insert and update. The id
// is left out so the database generates it; list columns are written as
// native arrays.
func internPayload(p *models.Practicante) map[string]interface{} {
	data := map[string]interface{}{
		"nombre":         p.Nombre,
		"carrera":        p.Carrera,
		"email":          p.Email,
		"telefono":       p.Telefono,
		"area":           p.Area,
		"tecnologias":    normalize.Encode(p.Tecnologias, normalize.FormArray),
		"soft_skills":    normalize.Encode(p.SoftSkills, normalize.FormArray),
		"proyectos":      normalize.Encode(p.Proyectos, normalize.FormArray),
		"descripcion":    p.Descripcion,
		"portafolio_url": p.PortafolioURL,
		"estado":         models.NormalizeEstado(p.Estado),
		"apellido":       nil,
		"semestre":       nil,
	}
	if p.Apellido != nil {
		data["apellido"] = *p.Apellido
	}
	if p.Semestre != nil {
		data["semestre"] = *p.Semestre
	}
	return data
}

// optionalInternColumns are the text columns an import row may lack.
var optionalInternColumns = []string{"carrera", "email", "telefono", "area", "descripcion", "portafolio_url"}

// importPayload is internPayload for bulk imports: an empty optional text
// column is written as null, the way a missing CSV column reads.
func importPayload(p *models.Practicante) map[string]interface{} {
	data := internPayload(p)
	for _, col := range optionalInternColumns {
		if data[col] == "" {
			data[col] = nil
		}
	}
	return data
}

func projectPayload(p *models.Proyecto) map[string]interface{} {
	return map[string]interface{}{
		"nombre":       p.Nombre,
		"descripcion":  p.Descripcion,
		"cliente":      p.Cliente,
		"lider":        p.Lider,
		"estado":       p.Estado,
		"practicantes": normalize.Encode(p.Practicantes, normalize.FormArray),
	}
}
