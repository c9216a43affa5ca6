package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practicehub/internal/normalize"
	"practicehub/models"
)

func sample() []models.Practicante {
	apellido := "Gómez"
	return []models.Practicante{
		{ID: "1", Nombre: "Ana", Apellido: &apellido, Carrera: "Sistemas", Area: "Frontend", Tecnologias: normalize.List{"React", "Go"}},
		{ID: "2", Nombre: "<script>alert(1)</script>", Carrera: "Diseño & Arte", Area: "UX", Estado: models.EstadoAsignado},
	}
}

func TestWriteHTMLEscapesValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(context.Background(), &buf, sample()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Listado de Practicantes</title>")
	assert.Contains(t, out, "<h2>Ana Gómez</h2>")
	assert.Contains(t, out, "<p>React, Go</p>")
	assert.Contains(t, out, "Diseño &amp; Arte")
	assert.NotContains(t, out, "<script>")
	assert.Equal(t, 2, strings.Count(out, "<section>"))
}

func TestWriteHTMLWithNoInterns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(context.Background(), &buf, nil))
	assert.NotContains(t, buf.String(), "<section>")
	assert.True(t, strings.HasSuffix(buf.String(), "</body></html>"))
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sample()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), DocumentTitle)
}

func TestWritePDFSpansPages(t *testing.T) {
	interns := make([]models.Practicante, 0, 120)
	for i := 0; i < 120; i++ {
		interns = append(interns, models.Practicante{
			ID:          models.ID(fmt.Sprint(i)),
			Nombre:      fmt.Sprintf("Practicante %d con un nombre bastante largo para la columna", i),
			Tecnologias: normalize.List{"React", "Node.js", "PostgreSQL", "Docker", "Kubernetes"},
		})
	}
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, interns))
	assert.Greater(t, bytes.Count(buf.Bytes(), []byte("/Type /Page\n")), 1)
}
