package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"practicehub/errs"
	"practicehub/internal/assignment"
	"practicehub/internal/filter"
	"practicehub/internal/normalize"
	"practicehub/internal/store"
	"practicehub/models"
	"practicehub/utils"
)

// PracticantePayload is the create and update body for an intern. Update
// overwrites every field listed here.
type PracticantePayload struct {
	Nombre        string         `json:"nombre" validate:"required"`
	Apellido      *string        `json:"apellido,omitempty"`
	Carrera       string         `json:"carrera"`
	Email         string         `json:"email" validate:"omitempty,email"`
	Telefono      string         `json:"telefono"`
	Semestre      *int           `json:"semestre,omitempty" validate:"omitempty,gte=1,lte=20"`
	Area          string         `json:"area"`
	Tecnologias   normalize.List `json:"tecnologias" swaggertype:"array,string"`
	SoftSkills    normalize.List `json:"soft_skills" swaggertype:"array,string"`
	Proyectos     normalize.List `json:"proyectos" swaggertype:"array,string"`
	Descripcion   string         `json:"descripcion"`
	PortafolioURL string         `json:"portafolio_url" validate:"omitempty,url"`
	Estado        string         `json:"estado" validate:"omitempty,oneof=disponible asignado"`
}

func (p PracticantePayload) model() *models.Practicante {
	apellido := p.Apellido
	if apellido != nil {
		trimmed := utils.SanitizeInput(*apellido)
		apellido = &trimmed
	}
	return &models.Practicante{
		Nombre:        utils.SanitizeInput(p.Nombre),
		Apellido:      apellido,
		Carrera:       utils.SanitizeInput(p.Carrera),
		Email:         utils.SanitizeInput(p.Email),
		Telefono:      utils.SanitizeInput(p.Telefono),
		Semestre:      p.Semestre,
		Area:          utils.SanitizeInput(p.Area),
		Tecnologias:   p.Tecnologias,
		SoftSkills:    p.SoftSkills,
		Proyectos:     p.Proyectos,
		Descripcion:   utils.SanitizeInput(p.Descripcion),
		PortafolioURL: utils.SanitizeInput(p.PortafolioURL),
		Estado:        models.NormalizeEstado(p.Estado),
	}
}

func viewOf(p models.Practicante, assigned filter.AssignedFunc) PracticanteView {
	estado := models.EstadoDisponible
	if assigned(p) {
		estado = models.EstadoAsignado
	}
	return PracticanteView{Practicante: p, Disponibilidad: estado}
}

func parseCriteria(c *fiber.Ctx) (filter.Criteria, error) {
	var crit filter.Criteria
	if err := c.QueryParser(&crit); err != nil {
		return crit, errs.NewBadRequestErrorWithDetails("Invalid query", err.Error())
	}
	if err := validate.Struct(crit); err != nil {
		return crit, errs.NewBadRequestError("availability must be disponible or asignado")
	}
	return crit, nil
}

// loadInterns reads both tables. When the full intern read fails it falls
// back to the reduced column set and reports degraded.
func (h *ApplicationHandler) loadInterns(ctx context.Context) (*assignment.Snapshot, bool, error) {
	snap, _ := assignment.LoadSnapshot(ctx, h.Interns, h.Projects)
	if snap.InternsErr == nil {
		return snap, false, nil
	}
	h.Logger.WithError(snap.InternsErr).Warn("Full practicantes fetch failed; retrying with reduced columns")
	rows, err := h.Interns.List(ctx, store.ListOptions{
		Columns: store.FallbackInternColumns,
		Limit:   store.FallbackInternLimit,
	})
	if err != nil {
		h.Logger.WithError(err).Error("Reduced practicantes fetch failed")
		return nil, false, snap.InternsErr
	}
	snap.Interns = rows
	return snap, true, nil
}

// ListPracticantes godoc
// @Summary List interns
// @Description Lists interns ordered by name. Filters combine; availability treats an intern as assigned when a project references it or its stored estado says so.
// @Tags practicantes
// @Produce json
// @Param search query string false "Substring of name, career or email"
// @Param area query string false "Area"
// @Param availability query string false "disponible or asignado"
// @Param technology query string false "Substring of any technology"
// @Success 200 {object} PracticanteListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /practicantes [get]
func (h *ApplicationHandler) ListPracticantes(c *fiber.Ctx) error {
	crit, err := parseCriteria(c)
	if err != nil {
		return err
	}
	snap, degraded, err := h.loadInterns(c.UserContext())
	if err != nil {
		return err
	}
	report := h.Matcher.Report(snap)
	assigned := filter.Either(report.IsAssigned)

	rows := crit.Apply(snap.Interns, assigned)
	items := make([]PracticanteView, 0, len(rows))
	for _, p := range rows {
		items = append(items, viewOf(p, assigned))
	}
	return utils.RespondWithWarnings(c, fiber.StatusOK, "Practicantes retrieved successfully", PracticanteListData{
		Items:    items,
		Total:    len(items),
		Degraded: degraded,
	}, snap.Warnings)
}

// GetPracticante godoc
// @Summary Get an intern
// @Description Returns one intern with the projects whose references resolve to it.
// @Tags practicantes
// @Produce json
// @Param id path string true "Intern ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /practicantes/{id} [get]
func (h *ApplicationHandler) GetPracticante(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	p, err := h.Interns.Get(ctx, id)
	if err != nil {
		return err
	}

	var warnings []string
	projects, err := h.Projects.List(ctx, store.ListOptions{})
	if err != nil {
		h.Logger.WithError(err).WithField("practicante_id", id).Warn("Could not load proyectos for practicante detail")
		warnings = append(warnings, errs.PublicMessage(err))
		projects = []models.Proyecto{}
	}
	in := h.Matcher.ProjectsOf(*p, projects)
	assigned := filter.Either(func(models.Practicante) bool { return len(in) > 0 })

	return utils.RespondWithWarnings(c, fiber.StatusOK, "Practicante retrieved successfully", PracticanteDetail{
		PracticanteView:    viewOf(*p, assigned),
		ProyectosAsignados: in,
	}, warnings)
}

// CreatePracticante godoc
// @Summary Create an intern
// @Tags practicantes
// @Accept json
// @Produce json
// @Param practicante body PracticantePayload true "Intern to create"
// @Success 201 {object} PracticanteSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /practicantes [post]
func (h *ApplicationHandler) CreatePracticante(c *fiber.Ctx) error {
	payload := new(PracticantePayload)
	if err := parseBody(c, payload); err != nil {
		return err
	}
	created, err := h.Interns.Create(c.UserContext(), payload.model())
	if err != nil {
		return err
	}
	h.Logger.WithField("practicante_id", created.ID).Info("Practicante created")
	return utils.RespondWithJSON(c, fiber.StatusCreated, "Practicante created successfully", created)
}

// UpdatePracticante godoc
// @Summary Replace an intern
// @Description Overwrites every field of the intern with the request body.
// @Tags practicantes
// @Accept json
// @Produce json
// @Param id path string true "Intern ID"
// @Param practicante body PracticantePayload true "New intern data"
// @Success 200 {object} PracticanteSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /practicantes/{id} [put]
func (h *ApplicationHandler) UpdatePracticante(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	payload := new(PracticantePayload)
	if err := parseBody(c, payload); err != nil {
		return err
	}
	updated, err := h.Interns.Update(c.UserContext(), id, payload.model())
	if err != nil {
		return err
	}
	h.Logger.WithField("practicante_id", id).Info("Practicante updated")
	return utils.RespondWithJSON(c, fiber.StatusOK, "Practicante updated successfully", updated)
}

// DeletePracticante godoc
// @Summary Delete an intern
// @Description Deletion must be confirmed with confirm=true.
// @Tags practicantes
// @Produce json
// @Param id path string true "Intern ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /practicantes/{id} [delete]
func (h *ApplicationHandler) DeletePracticante(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if !c.QueryBool("confirm") {
		return errs.NewBadRequestError("Deletion must be confirmed with ?confirm=true")
	}
	if err := h.Interns.Delete(c.UserContext(), id); err != nil {
		return err
	}
	h.Logger.WithField("practicante_id", id).Info("Practicante deleted")
	return utils.RespondWithJSON(c, fiber.StatusOK, "Practicante deleted successfully", fiber.Map{"id": id})
}
