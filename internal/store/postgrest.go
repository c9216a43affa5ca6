package store

import (
	"context"
	"fmt"
	"strings"

	postgrest "github.com/supabase-community/postgrest-go"

	"practicehub/errs"
	"practicehub/models"
)

// Querier is the part of the Supabase client the REST backend needs. Both
// *supabase.Client and *postgrest.Client satisfy it.
type Querier interface {
	From(table string) *postgrest.QueryBuilder
}

// NewRestClient builds a bare PostgREST client for baseURL (the project URL
// without /rest/v1) authenticated with key.
func NewRestClient(baseURL, key string) (*postgrest.Client, error) {
	if baseURL == "" || key == "" {
		return nil, fmt.Errorf("supabase url and key must be set")
	}
	client := postgrest.NewClient(strings.TrimRight(baseURL, "/")+"/rest/v1", "", map[string]string{
		"apikey":        key,
		"Authorization": fmt.Sprintf("Bearer %s", key),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to initialize postgrest client: %w", client.ClientError)
	}
	return client, nil
}

// NewRestStore returns both repositories backed by the hosted REST API.
func NewRestStore(q Querier) *Store {
	return &Store{
		Interns:  &RestInterns{q: q},
		Projects: &RestProjects{q: q},
	}
}

func selectColumns(cols []string) string {
	if len(cols) == 0 {
		return "*"
	}
	return strings.Join(cols, ",")
}

func listQuery(q Querier, table string, opts ListOptions) *postgrest.FilterBuilder {
	fb := q.From(table).
		Select(selectColumns(opts.Columns), "", false).
		Order(opts.orderColumn(), &postgrest.OrderOpts{Ascending: !opts.Descending})
	if opts.Limit > 0 {
		fb = fb.Limit(opts.Limit, "")
	}
	return fb
}

// RestInterns is the practicantes repository over PostgREST.
type RestInterns struct {
	q Querier
}

func (r *RestInterns) List(ctx context.Context, opts ListOptions) ([]models.Practicante, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Practicante
	if _, err := listQuery(r.q, InternsTable, opts).ExecuteTo(&rows); err != nil {
		return nil, errs.NewUpstreamError("could not list practicantes", err)
	}
	if rows == nil {
		rows = []models.Practicante{}
	}
	return rows, nil
}

func (r *RestInterns) Get(ctx context.Context, id models.ID) (*models.Practicante, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Practicante
	_, err := r.q.From(InternsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errs.NewUpstreamError("could not fetch practicante", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewNotFoundError(fmt.Sprintf("practicante %s not found", id))
	}
	return &rows[0], nil
}

func (r *RestInterns) Create(ctx context.Context, p *models.Practicante) (*models.Practicante, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Practicante
	_, err := r.q.From(InternsTable).
		Insert(internPayload(p), false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errs.NewUpstreamError("could not create practicante", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewInternalError("practicante insert returned no rows", nil)
	}
	return &rows[0], nil
}

// CreateMany inserts every row in one request and reports how many the
// server accepted.
func (r *RestInterns) CreateMany(ctx context.Context, ps []models.Practicante) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	payload := make([]map[string]interface{}, 0, len(ps))
	for i := range ps {
		payload = append(payload, importPayload(&ps[i]))
	}
	var rows []models.Practicante
	_, err := r.q.From(InternsTable).
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, errs.NewUpstreamError("could not import practicantes", err)
	}
	return len(rows), nil
}

func (r *RestInterns) Update(ctx context.Context, id models.ID, p *models.Practicante) (*models.Practicante, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Practicante
	_, err := r.q.From(InternsTable).
		Update(internPayload(p), "representation", "").
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, errs.NewUpstreamError("could not update practicante", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewNotFoundError(fmt.Sprintf("practicante %s not found", id))
	}
	return &rows[0], nil
}

// Delete asks for the deleted row back so a missing id is reported as not
// found instead of silently succeeding.
func (r *RestInterns) Delete(ctx context.Context, id models.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var rows []models.Practicante
	_, err := r.q.From(InternsTable).
		Delete("representation", "").
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return errs.NewUpstreamError("could not delete practicante", err)
	}
	if len(rows) == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("practicante %s not found", id))
	}
	return nil
}

// RestProjects is the proyectos repository over PostgREST.
type RestProjects struct {
	q Querier
}

func (r *RestProjects) List(ctx context.Context, opts ListOptions) ([]models.Proyecto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Proyecto
	if _, err := listQuery(r.q, ProjectsTable, opts).ExecuteTo(&rows); err != nil {
		return nil, errs.NewUpstreamError("could not list proyectos", err)
	}
	if rows == nil {
		rows = []models.Proyecto{}
	}
	return rows, nil
}

func (r *RestProjects) Get(ctx context.Context, id models.ID) (*models.Proyecto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Proyecto
	_, err := r.q.From(ProjectsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errs.NewUpstreamError("could not fetch proyecto", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	return &rows[0], nil
}

func (r *RestProjects) Create(ctx context.Context, p *models.Proyecto) (*models.Proyecto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Proyecto
	_, err := r.q.From(ProjectsTable).
		Insert(projectPayload(p), false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errs.NewUpstreamError("could not create proyecto", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewInternalError("proyecto insert returned no rows", nil)
	}
	return &rows[0], nil
}

func (r *RestProjects) Update(ctx context.Context, id models.ID, p *models.Proyecto) (*models.Proyecto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Proyecto
	_, err := r.q.From(ProjectsTable).
		Update(projectPayload(p), "representation", "").
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, errs.NewUpstreamError("could not update proyecto", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	return &rows[0], nil
}

func (r *RestProjects) SetInterns(ctx context.Context, id models.ID, refs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var rows []models.Proyecto
	_, err := r.q.From(ProjectsTable).
		Update(map[string]interface{}{"practicantes": refs}, "representation", "").
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return errs.NewUpstreamError("could not update proyecto practicantes", err)
	}
	if len(rows) == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	return nil
}

func (r *RestProjects) Delete(ctx context.Context, id models.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var rows []models.Proyecto
	_, err := r.q.From(ProjectsTable).
		Delete("representation", "").
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return errs.NewUpstreamError("could not delete proyecto", err)
	}
	if len(rows) == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	return nil
}
