package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"practicehub/internal/normalize"
	"practicehub/models"
)

// headerAliases maps accepted header spellings onto field names.
var headerAliases = map[string]string{
	"nombre":      "nombre",
	"apellido":    "apellido",
	"email":       "email",
	"telefono":    "telefono",
	"tlefono":     "telefono",
	"carrera":     "carrera",
	"semestre":    "semestre",
	"area":        "area",
	"tecnologias": "tecnologias",
	"estado":      "estado",
}

// ParseStructured reads a CSV keyed by its header row. Every data row is
// kept whatever its field count; a column the row does not reach, or the
// header does not name, leaves the field nil.
func ParseStructured(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	index := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if field, ok := headerAliases[key]; ok {
			if _, seen := index[field]; !seen {
				index[field] = i
			}
		}
	}

	records := []Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		if blank(row) {
			continue
		}
		records = append(records, structuredRecord(row, index))
	}
	return records, nil
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func structuredRecord(row []string, index map[string]int) Record {
	field := func(name string) *string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return nil
		}
		v := strings.TrimSpace(row[i])
		return &v
	}

	rec := Record{
		Nombre:      field("nombre"),
		Apellido:    field("apellido"),
		Email:       field("email"),
		Telefono:    field("telefono"),
		Carrera:     field("carrera"),
		Area:        field("area"),
		Tecnologias: []string{},
		Estado:      models.EstadoDisponible,
	}
	if s := field("semestre"); s != nil && *s != "" {
		if n, err := strconv.Atoi(*s); err == nil {
			rec.Semestre = &n
		}
	}
	if t := field("tecnologias"); t != nil {
		rec.Tecnologias = normalize.Strings(*t, normalize.Comma)
	}
	if e := field("estado"); e != nil {
		rec.Estado = models.NormalizeEstado(*e)
	}
	return rec
}
