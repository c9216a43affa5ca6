package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practicehub/errs"
	"practicehub/internal/normalize"
	"practicehub/models"
)

func TestMemoryInternLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := NewMemoryStore()

	created, err := s.Interns.Create(ctx, &models.Practicante{Nombre: "Zoe", Estado: "assigned"})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoAsignado, created.Estado)

	_, err = s.Interns.Create(ctx, &models.Practicante{Nombre: "ana"})
	require.NoError(t, err)

	rows, err := s.Interns.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ana", rows[0].Nombre)

	limited, err := s.Interns.List(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	updated, err := s.Interns.Update(ctx, created.ID, &models.Practicante{Nombre: "Zoe", Area: "UX"})
	require.NoError(t, err)
	assert.Equal(t, "UX", updated.Area)
	assert.Equal(t, models.EstadoDisponible, updated.Estado)

	require.NoError(t, s.Interns.Delete(ctx, created.ID))
	_, err = s.Interns.Get(ctx, created.ID)
	assert.True(t, errs.IsNotFound(err))
	assert.True(t, errs.IsNotFound(s.Interns.Delete(ctx, created.ID)))
}

func TestMemoryCreateManyAndSetInterns(t *testing.T) {
	ctx := context.Background()
	s, _ := NewMemoryStore()

	n, err := s.Interns.CreateMany(ctx, []models.Practicante{{Nombre: "A"}, {Nombre: "B"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p, err := s.Projects.Create(ctx, &models.Proyecto{Nombre: "Portal", Practicantes: normalize.List{"1"}})
	require.NoError(t, err)

	require.NoError(t, s.Projects.SetInterns(ctx, p.ID, []string{"1", "2"}))
	got, err := s.Projects.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, normalize.List{"1", "2"}, got.Practicantes)

	assert.True(t, errs.IsNotFound(s.Projects.SetInterns(ctx, "404", nil)))
}

func TestMemoryHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := NewMemoryStore()
	_, err := s.Interns.List(ctx, ListOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
