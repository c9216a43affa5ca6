package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"practicehub/errs"
	"practicehub/internal/normalize"
	"practicehub/models"
)

// OpenPostgres connects to the database behind the hosted API directly.
// SQL logging goes through log at warn level.
func OpenPostgres(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set for the postgres backend")
	}
	gormLogger := logger.New(log, logger.Config{
		SlowThreshold:             5 * time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewGormStore returns both repositories over a shared *gorm.DB.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Interns:  &GormInterns{db: db},
		Projects: &GormProjects{db: db},
	}
}

// internRow maps the practicantes table. Text columns may be NULL in older
// rows, hence the pointers.
type internRow struct {
	ID            string         `gorm:"column:id;primaryKey"`
	Nombre        string         `gorm:"column:nombre"`
	Apellido      *string        `gorm:"column:apellido"`
	Carrera       *string        `gorm:"column:carrera"`
	Email         *string        `gorm:"column:email"`
	Telefono      *string        `gorm:"column:telefono"`
	Semestre      *int           `gorm:"column:semestre"`
	Area          *string        `gorm:"column:area"`
	Tecnologias   normalize.List `gorm:"column:tecnologias"`
	SoftSkills    normalize.List `gorm:"column:soft_skills"`
	Proyectos     normalize.List `gorm:"column:proyectos"`
	Descripcion   *string        `gorm:"column:descripcion"`
	PortafolioURL *string        `gorm:"column:portafolio_url"`
	Estado        *string        `gorm:"column:estado"`
}

func (internRow) TableName() string { return InternsTable }

type projectRow struct {
	ID           string         `gorm:"column:id;primaryKey"`
	Nombre       string         `gorm:"column:nombre"`
	Descripcion  *string        `gorm:"column:descripcion"`
	Cliente      *string        `gorm:"column:cliente"`
	Lider        *string        `gorm:"column:lider"`
	Estado       *string        `gorm:"column:estado"`
	Practicantes normalize.List `gorm:"column:practicantes"`
}

func (projectRow) TableName() string { return ProjectsTable }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string { return &s }

func (r internRow) model() models.Practicante {
	return models.Practicante{
		ID:            models.ID(r.ID),
		Nombre:        r.Nombre,
		Apellido:      r.Apellido,
		Carrera:       deref(r.Carrera),
		Email:         deref(r.Email),
		Telefono:      deref(r.Telefono),
		Semestre:      r.Semestre,
		Area:          deref(r.Area),
		Tecnologias:   normalize.List(r.Tecnologias.Strings()),
		SoftSkills:    normalize.List(r.SoftSkills.Strings()),
		Proyectos:     normalize.List(r.Proyectos.Strings()),
		Descripcion:   deref(r.Descripcion),
		PortafolioURL: deref(r.PortafolioURL),
		Estado:        models.NormalizeEstado(deref(r.Estado)),
	}
}

func internRowFrom(p *models.Practicante) internRow {
	return internRow{
		Nombre:        p.Nombre,
		Apellido:      p.Apellido,
		Carrera:       ptr(p.Carrera),
		Email:         ptr(p.Email),
		Telefono:      ptr(p.Telefono),
		Semestre:      p.Semestre,
		Area:          ptr(p.Area),
		Tecnologias:   normalize.List(normalize.Strings([]string(p.Tecnologias), normalize.Comma)),
		SoftSkills:    normalize.List(normalize.Strings([]string(p.SoftSkills), normalize.Comma)),
		Proyectos:     normalize.List(normalize.Strings([]string(p.Proyectos), normalize.Comma)),
		Descripcion:   ptr(p.Descripcion),
		PortafolioURL: ptr(p.PortafolioURL),
		Estado:        ptr(models.NormalizeEstado(p.Estado)),
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// importRowFrom leaves empty optional text columns NULL.
func importRowFrom(p *models.Practicante) internRow {
	row := internRowFrom(p)
	row.Carrera = nullIfEmpty(p.Carrera)
	row.Email = nullIfEmpty(p.Email)
	row.Telefono = nullIfEmpty(p.Telefono)
	row.Area = nullIfEmpty(p.Area)
	row.Descripcion = nullIfEmpty(p.Descripcion)
	row.PortafolioURL = nullIfEmpty(p.PortafolioURL)
	return row
}

func (r projectRow) model() models.Proyecto {
	return models.Proyecto{
		ID:           models.ID(r.ID),
		Nombre:       r.Nombre,
		Descripcion:  deref(r.Descripcion),
		Cliente:      deref(r.Cliente),
		Lider:        deref(r.Lider),
		Estado:       deref(r.Estado),
		Practicantes: normalize.List(r.Practicantes.Strings()),
	}
}

func projectRowFrom(p *models.Proyecto) projectRow {
	return projectRow{
		Nombre:       p.Nombre,
		Descripcion:  ptr(p.Descripcion),
		Cliente:      ptr(p.Cliente),
		Lider:        ptr(p.Lider),
		Estado:       ptr(p.Estado),
		Practicantes: normalize.List(normalize.Strings([]string(p.Practicantes), normalize.Comma)),
	}
}

func applyList(tx *gorm.DB, opts ListOptions) *gorm.DB {
	if len(opts.Columns) > 0 {
		tx = tx.Select(opts.Columns)
	}
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: opts.orderColumn()}, Desc: opts.Descending})
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}
	return tx
}

func dbError(msg string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errs.NewUpstreamError(msg, err)
}

// GormInterns is the practicantes repository over a direct connection.
type GormInterns struct {
	db *gorm.DB
}

func (r *GormInterns) List(ctx context.Context, opts ListOptions) ([]models.Practicante, error) {
	var rows []internRow
	if err := applyList(r.db.WithContext(ctx), opts).Find(&rows).Error; err != nil {
		return nil, dbError("could not list practicantes", err)
	}
	out := make([]models.Practicante, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (r *GormInterns) Get(ctx context.Context, id models.ID) (*models.Practicante, error) {
	var row internRow
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError(fmt.Sprintf("practicante %s not found", id))
	}
	if err != nil {
		return nil, dbError("could not fetch practicante", err)
	}
	p := row.model()
	return &p, nil
}

func (r *GormInterns) Create(ctx context.Context, p *models.Practicante) (*models.Practicante, error) {
	row := internRowFrom(p)
	if err := r.db.WithContext(ctx).Clauses(clause.Returning{}).Omit("id").Create(&row).Error; err != nil {
		return nil, dbError("could not create practicante", err)
	}
	out := row.model()
	return &out, nil
}

func (r *GormInterns) CreateMany(ctx context.Context, ps []models.Practicante) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}
	rows := make([]internRow, 0, len(ps))
	for i := range ps {
		rows = append(rows, importRowFrom(&ps[i]))
	}
	res := r.db.WithContext(ctx).Omit("id").Create(&rows)
	if res.Error != nil {
		return 0, dbError("could not import practicantes", res.Error)
	}
	return int(res.RowsAffected), nil
}

func (r *GormInterns) Update(ctx context.Context, id models.ID, p *models.Practicante) (*models.Practicante, error) {
	row := internRowFrom(p)
	res := r.db.WithContext(ctx).Model(&internRow{}).
		Where("id = ?", id.String()).
		Select("*").Omit("id").
		Updates(&row)
	if res.Error != nil {
		return nil, dbError("could not update practicante", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NewNotFoundError(fmt.Sprintf("practicante %s not found", id))
	}
	return r.Get(ctx, id)
}

func (r *GormInterns) Delete(ctx context.Context, id models.ID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&internRow{})
	if res.Error != nil {
		return dbError("could not delete practicante", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("practicante %s not found", id))
	}
	return nil
}

// GormProjects is the proyectos repository over a direct connection.
type GormProjects struct {
	db *gorm.DB
}

func (r *GormProjects) List(ctx context.Context, opts ListOptions) ([]models.Proyecto, error) {
	var rows []projectRow
	if err := applyList(r.db.WithContext(ctx), opts).Find(&rows).Error; err != nil {
		return nil, dbError("could not list proyectos", err)
	}
	out := make([]models.Proyecto, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (r *GormProjects) Get(ctx context.Context, id models.ID) (*models.Proyecto, error) {
	var row projectRow
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	if err != nil {
		return nil, dbError("could not fetch proyecto", err)
	}
	p := row.model()
	return &p, nil
}

func (r *GormProjects) Create(ctx context.Context, p *models.Proyecto) (*models.Proyecto, error) {
	row := projectRowFrom(p)
	if err := r.db.WithContext(ctx).Clauses(clause.Returning{}).Omit("id").Create(&row).Error; err != nil {
		return nil, dbError("could not create proyecto", err)
	}
	out := row.model()
	return &out, nil
}

func (r *GormProjects) Update(ctx context.Context, id models.ID, p *models.Proyecto) (*models.Proyecto, error) {
	row := projectRowFrom(p)
	res := r.db.WithContext(ctx).Model(&projectRow{}).
		Where("id = ?", id.String()).
		Select("*").Omit("id").
		Updates(&row)
	if res.Error != nil {
		return nil, dbError("could not update proyecto", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	return r.Get(ctx, id)
}

func (r *GormProjects) SetInterns(ctx context.Context, id models.ID, refs []string) error {
	res := r.db.WithContext(ctx).Model(&projectRow{}).
		Where("id = ?", id.String()).
		Update("practicantes", normalize.List(refs))
	if res.Error != nil {
		return dbError("could not update proyecto practicantes", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	return nil
}

func (r *GormProjects) Delete(ctx context.Context, id models.ID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&projectRow{})
	if res.Error != nil {
		return dbError("could not delete proyecto", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("proyecto %s not found", id))
	}
	return nil
}
