package importer

import (
	"fmt"
	"io"
	"strings"

	"practicehub/internal/normalize"
	"practicehub/models"
)

const naiveColumns = 6

// ParseNaive reads a fixed-order CSV: nombre, carrera, email, area,
// tecnologias (separated by ';'), estado. The first line is a header.
// Fields are split on every comma with no quoting support, and lines with
// fewer than six fields are dropped without notice.
func ParseNaive(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}

	records := []Record{}
	for _, line := range lines {
		cols := strings.Split(strings.TrimRight(line, "\r"), ",")
		if len(cols) < naiveColumns {
			continue
		}
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		estado := cols[5]
		if estado == "" {
			estado = models.EstadoDisponible
		}
		records = append(records, Record{
			Nombre:      &cols[0],
			Carrera:     &cols[1],
			Email:       &cols[2],
			Area:        &cols[3],
			Tecnologias: normalize.Strings(cols[4], normalize.Semicolon),
			Estado:      models.NormalizeEstado(estado),
		})
	}
	return records, nil
}
