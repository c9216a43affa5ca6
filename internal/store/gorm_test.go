package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"practicehub/internal/normalize"
	"practicehub/models"
)

func TestInternRowConversion(t *testing.T) {
	apellido := "Gomez"
	p := &models.Practicante{
		Nombre:      "Ana",
		Apellido:    &apellido,
		Area:        "Frontend",
		Tecnologias: normalize.List{"React", ""},
		Estado:      "Assigned",
	}

	row := internRowFrom(p)
	assert.Equal(t, normalize.List{"React"}, row.Tecnologias)
	assert.Equal(t, models.EstadoAsignado, *row.Estado)

	row.ID = "12"
	row.Carrera = nil
	back := row.model()
	assert.Equal(t, models.ID("12"), back.ID)
	assert.Equal(t, "", back.Carrera)
	assert.Equal(t, "Ana Gomez", back.DisplayName())
	assert.Equal(t, []string{}, back.Proyectos.Strings())
}

func TestImportRowLeavesMissingColumnsNull(t *testing.T) {
	row := importRowFrom(&models.Practicante{Nombre: "Bruno", Area: "QA"})
	assert.Nil(t, row.Carrera)
	assert.Nil(t, row.Email)
	assert.Equal(t, "QA", *row.Area)

	full := internRowFrom(&models.Practicante{Nombre: "Bruno"})
	assert.Equal(t, "", *full.Carrera)
}

func TestProjectRowConversion(t *testing.T) {
	row := projectRowFrom(&models.Proyecto{Nombre: "Portal", Practicantes: normalize.List{" 1 ", "ana"}})
	assert.Equal(t, normalize.List{"1", "ana"}, row.Practicantes)
	assert.Equal(t, "", row.model().Cliente)
}

func TestOpenPostgresRequiresDSN(t *testing.T) {
	_, err := OpenPostgres("", nil)
	assert.Error(t, err)
}
