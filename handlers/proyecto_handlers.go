package handlers

import (
	"github.com/gofiber/fiber/v2"

	"practicehub/errs"
	"practicehub/internal/normalize"
	"practicehub/internal/store"
	"practicehub/models"
	"practicehub/utils"
)

// ProyectoPayload is the create and update body for a project.
// Practicantes holds intern ids.
type ProyectoPayload struct {
	Nombre       string         `json:"nombre" validate:"required"`
	Descripcion  string         `json:"descripcion"`
	Cliente      string         `json:"cliente"`
	Lider        string         `json:"lider"`
	Estado       string         `json:"estado"`
	Practicantes normalize.List `json:"practicantes" swaggertype:"array,string"`
}

func (p ProyectoPayload) model() *models.Proyecto {
	estado := utils.SanitizeInput(p.Estado)
	if estado == "" {
		estado = models.ProyectoActivo
	}
	return &models.Proyecto{
		Nombre:       utils.SanitizeInput(p.Nombre),
		Descripcion:  utils.SanitizeInput(p.Descripcion),
		Cliente:      utils.SanitizeInput(p.Cliente),
		Lider:        utils.SanitizeInput(p.Lider),
		Estado:       estado,
		Practicantes: normalize.List(normalize.Strings([]string(p.Practicantes), normalize.Comma)),
	}
}

// ListProyectos godoc
// @Summary List projects
// @Tags proyectos
// @Produce json
// @Success 200 {object} ProyectoListResponse
// @Failure 502 {object} ErrorResponse
// @Router /proyectos [get]
func (h *ApplicationHandler) ListProyectos(c *fiber.Ctx) error {
	projects, err := h.Projects.List(c.UserContext(), store.ListOptions{})
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Proyectos retrieved successfully", projects)
}

// GetProyecto godoc
// @Summary Get a project
// @Description Returns one project with the interns its references resolve to.
// @Tags proyectos
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /proyectos/{id} [get]
func (h *ApplicationHandler) GetProyecto(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	project, err := h.Projects.Get(ctx, id)
	if err != nil {
		return err
	}

	var warnings []string
	interns, err := h.Interns.List(ctx, store.ListOptions{})
	if err != nil {
		h.Logger.WithError(err).WithField("proyecto_id", id).Warn("Could not load practicantes for proyecto detail")
		warnings = append(warnings, errs.PublicMessage(err))
		interns = []models.Practicante{}
	}
	return utils.RespondWithWarnings(c, fiber.StatusOK, "Proyecto retrieved successfully", ProyectoDetail{
		Proyecto:              *project,
		PracticantesAsignados: h.Matcher.InternsIn(*project, interns),
	}, warnings)
}

// CreateProyecto godoc
// @Summary Create a project
// @Tags proyectos
// @Accept json
// @Produce json
// @Param proyecto body ProyectoPayload true "Project to create"
// @Success 201 {object} ProyectoSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /proyectos [post]
func (h *ApplicationHandler) CreateProyecto(c *fiber.Ctx) error {
	payload := new(ProyectoPayload)
	if err := parseBody(c, payload); err != nil {
		return err
	}
	created, err := h.Projects.Create(c.UserContext(), payload.model())
	if err != nil {
		return err
	}
	h.Logger.WithField("proyecto_id", created.ID).Info("Proyecto created")
	return utils.RespondWithJSON(c, fiber.StatusCreated, "Proyecto created successfully", created)
}

// UpdateProyecto godoc
// @Summary Replace a project
// @Description Overwrites every field, including the practicantes reference list.
// @Tags proyectos
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param proyecto body ProyectoPayload true "New project data"
// @Success 200 {object} ProyectoSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /proyectos/{id} [put]
func (h *ApplicationHandler) UpdateProyecto(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	payload := new(ProyectoPayload)
	if err := parseBody(c, payload); err != nil {
		return err
	}
	updated, err := h.Projects.Update(c.UserContext(), id, payload.model())
	if err != nil {
		return err
	}
	h.Logger.WithField("proyecto_id", id).Info("Proyecto updated")
	return utils.RespondWithJSON(c, fiber.StatusOK, "Proyecto updated successfully", updated)
}

// DeleteProyecto godoc
// @Summary Delete a project
// @Tags proyectos
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /proyectos/{id} [delete]
func (h *ApplicationHandler) DeleteProyecto(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Projects.Delete(c.UserContext(), id); err != nil {
		return err
	}
	h.Logger.WithField("proyecto_id", id).Info("Proyecto deleted")
	return utils.RespondWithJSON(c, fiber.StatusOK, "Proyecto deleted successfully", fiber.Map{"id": id})
}
