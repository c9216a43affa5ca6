package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"practicehub/errs"
	"practicehub/internal/normalize"
	"practicehub/models"
)

// Memory is a process-local backend used for development and tests. Ids
// are assigned from a counter starting at 1.
type Memory struct {
	mu       sync.RWMutex
	interns  map[models.ID]models.Practicante
	projects map[models.ID]models.Proyecto
	nextID   int
}

// NewMemoryStore returns both repositories over one shared Memory.
func NewMemoryStore() (*Store, *Memory) {
	m := &Memory{
		interns:  make(map[models.ID]models.Practicante),
		projects: make(map[models.ID]models.Proyecto),
	}
	return &Store{Interns: memInterns{m}, Projects: memProjects{m}}, m
}

func (m *Memory) newID() models.ID {
	m.nextID++
	return models.ID(strconv.Itoa(m.nextID))
}

func cloneIntern(p models.Practicante) models.Practicante {
	p.Tecnologias = normalize.List(normalize.Strings([]string(p.Tecnologias), normalize.Comma))
	p.SoftSkills = normalize.List(normalize.Strings([]string(p.SoftSkills), normalize.Comma))
	p.Proyectos = normalize.List(normalize.Strings([]string(p.Proyectos), normalize.Comma))
	p.Estado = models.NormalizeEstado(p.Estado)
	return p
}

func cloneProject(p models.Proyecto) models.Proyecto {
	p.Practicantes = normalize.List(normalize.Strings([]string(p.Practicantes), normalize.Comma))
	return p
}

func sortByName[T any](rows []T, name func(T) string, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := strings.ToLower(name(rows[i])), strings.ToLower(name(rows[j]))
		if desc {
			return a > b
		}
		return a < b
	})
}

type memInterns struct{ m *Memory }

func (r memInterns) List(ctx context.Context, opts ListOptions) ([]models.Practicante, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	rows := make([]models.Practicante, 0, len(r.m.interns))
	for _, p := range r.m.interns {
		rows = append(rows, cloneIntern(p))
	}
	sortByName(rows, func(p models.Practicante) string { return p.Nombre }, opts.Descending)
	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}
	return rows, nil
}

func (r memInterns) Get(ctx context.Context, id models.ID) (*models.Practicante, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	p, ok := r.m.interns[id]
	if !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("practicante %s not found", id))
	}
	p = cloneIntern(p)
	return &p, nil
}

func (r memInterns) Create(ctx context.Context, p *models.Practicante) (*models.Practicante, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row := cloneIntern(*p)
	row.ID = r.m.newID()
	r.m.interns[row.ID] = row
	return &row, nil
}

func (r memInterns) CreateMany(ctx context.Context, ps []models.Practicante) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range ps {
		row := cloneIntern(p)
		row.ID = r.m.newID()
		r.m.interns[row.ID] = row
	}
	return len(ps), nil
}

func (r memInterns) Update(ctx context.Context, id models.ID, p *models.Practicante) (*models.Practicante, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.interns[id]; !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("practicante %s not found", id))
	}
	row := cloneIntern(*p)
	row.ID = id
	r.m.interns[id] = row
	return &row, nil
}

func (r memInterns) Delete(ctx context.Context, id models.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.interns[id]; !ok {
		return errs.NewNotFoundError(fmt.Sprintf("practicante %s not found", id))
	}
	delete(r.m.interns, id)
	return nil
}

type memProjects struct{ m *Memory }

func (r memProjects) List(ctx context.Context, opts ListOptions) ([]models.Proyecto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	rows := make([]models.Proyecto, 0, len(r.m.projects))
	for _, p := range r.m.projects {
		rows = append(rows, cloneProject(p))
	}
	sortByName(rows, func(p models.Proyecto) string { return p.Nombre }, opts.Descending)
	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}
	return rows, nil
}

func (r memProjects) Get(ctx context.Context, id models.ID) (*models.Proyecto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	p, ok := r.m.projects[id]
	if !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	p = cloneProject(p)
	return &p, nil
}

func (r memProjects) Create(ctx context.Context, p *models.Proyecto) (*models.Proyecto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row := cloneProject(*p)
	row.ID = r.m.newID()
	r.m.projects[row.ID] = row
	return &row, nil
}

func (r memProjects) Update(ctx context.Context, id models.ID, p *models.Proyecto) (*models.Proyecto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.projects[id]; !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	row := cloneProject(*p)
	row.ID = id
	r.m.projects[id] = row
	return &row, nil
}

func (r memProjects) SetInterns(ctx context.Context, id models.ID, refs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.projects[id]
	if !ok {
		return errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	p.Practicantes = append(normalize.List(nil), refs...)
	r.m.projects[id] = p
	return nil
}

func (r memProjects) Delete(ctx context.Context, id models.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.projects[id]; !ok {
		return errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	delete(r.m.projects, id)
	return nil
}
