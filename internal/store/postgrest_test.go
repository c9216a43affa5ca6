package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practicehub/errs"
	"practicehub/internal/normalize"
	"practicehub/models"
)

func newRestStore(t *testing.T, h http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client, err := NewRestClient(srv.URL, "service-key")
	require.NoError(t, err)
	return NewRestStore(client)
}

func TestRestListInternsNormalizesListColumns(t *testing.T) {
	s := newRestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/practicantes", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Contains(t, r.URL.Query().Get("order"), "nombre.asc")
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": 1, "nombre": "Ana", "tecnologias": "[\"React\",\"Go\"]", "soft_skills": "Liderazgo, Comunicación", "proyectos": null, "estado": "asignado"},
			{"id": "2", "nombre": "Luis", "tecnologias": ["SQL"], "estado": null}
		]`)
	})

	rows, err := s.Interns.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.ID("1"), rows[0].ID)
	assert.Equal(t, normalize.List{"React", "Go"}, rows[0].Tecnologias)
	assert.Equal(t, normalize.List{"Liderazgo", "Comunicación"}, rows[0].SoftSkills)
	assert.Empty(t, rows[0].Proyectos)
	assert.Equal(t, models.ID("2"), rows[1].ID)
}

func TestRestListUsesReducedColumnsAndLimit(t *testing.T) {
	s := newRestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id,nombre,apellido,area,estado", r.URL.Query().Get("select"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		io.WriteString(w, `[]`)
	})

	rows, err := s.Interns.List(context.Background(), ListOptions{
		Columns: FallbackInternColumns,
		Limit:   FallbackInternLimit,
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRestUpstreamErrorMapsToBadGateway(t *testing.T) {
	s := newRestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"code":"XX000","message":"boom"}`)
	})

	_, err := s.Projects.List(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUpstream)
	assert.Equal(t, http.StatusBadGateway, errs.StatusCode(err))
}

func TestRestGetMissingRowIsNotFound(t *testing.T) {
	s := newRestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.99", r.URL.Query().Get("id"))
		io.WriteString(w, `[]`)
	})

	_, err := s.Interns.Get(context.Background(), "99")
	assert.True(t, errs.IsNotFound(err))
}

func TestRestCreateInternSendsArrayColumns(t *testing.T) {
	s := newRestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Prefer"), "return=representation")
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"Go", "SQL"}, body["tecnologias"])
		assert.Equal(t, "disponible", body["estado"])
		_, hasID := body["id"]
		assert.False(t, hasID)
		body["id"] = 5
		json.NewEncoder(w).Encode([]any{body})
	})

	created, err := s.Interns.Create(context.Background(), &models.Practicante{
		Nombre:      "Ana",
		Tecnologias: normalize.List{"Go", " ", "SQL"},
		Estado:      "whatever",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID("5"), created.ID)
}

func TestRestCreateManyWritesMissingColumnsAsNull(t *testing.T) {
	s := newRestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 2)
		assert.Equal(t, "Sistemas", body[0]["carrera"])
		assert.Nil(t, body[1]["carrera"])
		assert.Contains(t, body[1], "carrera")
		assert.Nil(t, body[1]["email"])
		assert.Equal(t, "Bruno", body[1]["nombre"])
		json.NewEncoder(w).Encode(body)
	})

	n, err := s.Interns.CreateMany(context.Background(), []models.Practicante{
		{Nombre: "Ana", Carrera: "Sistemas"},
		{Nombre: "Bruno"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRestSetInternsReplacesList(t *testing.T) {
	s := newRestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.3", r.URL.Query().Get("id"))
		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"1", "7"}, body["practicantes"])
		io.WriteString(w, `[{"id":3,"nombre":"Portal","practicantes":["1","7"]}]`)
	})

	require.NoError(t, s.Projects.SetInterns(context.Background(), "3", []string{"1", "7"}))
}

func TestRestDeleteMissingRowIsNotFound(t *testing.T) {
	s := newRestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		io.WriteString(w, `[]`)
	})

	err := s.Projects.Delete(context.Background(), "8")
	assert.True(t, errs.IsNotFound(err))
}

func TestNewRestClientRequiresCredentials(t *testing.T) {
	_, err := NewRestClient("", "key")
	assert.Error(t, err)
}
