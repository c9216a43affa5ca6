// Package importer turns uploaded CSV text into practicante rows. Two
// parsers exist and deliberately disagree on short rows: the naive one drops
// them, the structured one keeps them with the missing fields unset.
package importer

import (
	"fmt"
	"io"
	"strings"

	"practicehub/internal/normalize"
	"practicehub/models"
)

// Mode selects the parser.
type Mode string

const (
	ModeNaive      Mode = "naive"
	ModeStructured Mode = "structured"
)

// ParseMode reads the mode query value; empty means structured.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeStructured:
		return ModeStructured, nil
	case ModeNaive:
		return ModeNaive, nil
	default:
		return "", fmt.Errorf("unknown import mode %q", s)
	}
}

// Record is one imported row. A nil field was absent from the row.
type Record struct {
	Nombre      *string  `json:"nombre"`
	Apellido    *string  `json:"apellido"`
	Email       *string  `json:"email"`
	Telefono    *string  `json:"telefono"`
	Carrera     *string  `json:"carrera"`
	Semestre    *int     `json:"semestre"`
	Area        *string  `json:"area"`
	Tecnologias []string `json:"tecnologias"`
	Estado      string   `json:"estado"`
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Practicante converts the record into a row ready for insertion.
func (r Record) Practicante() models.Practicante {
	return models.Practicante{
		Nombre:      value(r.Nombre),
		Apellido:    r.Apellido,
		Email:       value(r.Email),
		Telefono:    value(r.Telefono),
		Carrera:     value(r.Carrera),
		Semestre:    r.Semestre,
		Area:        value(r.Area),
		Tecnologias: normalize.List(r.Tecnologias),
		Estado:      models.NormalizeEstado(r.Estado),
	}
}

// Parse runs the parser selected by mode.
func Parse(mode Mode, r io.Reader) ([]Record, error) {
	switch mode {
	case ModeNaive:
		return ParseNaive(r)
	case ModeStructured:
		return ParseStructured(r)
	default:
		return nil, fmt.Errorf("unknown import mode %q", mode)
	}
}

// Practicantes converts every record.
func Practicantes(records []Record) []models.Practicante {
	out := make([]models.Practicante, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Practicante())
	}
	return out
}
