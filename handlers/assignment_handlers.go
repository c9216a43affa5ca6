package handlers

import (
	"github.com/gofiber/fiber/v2"

	"practicehub/internal/assignment"
	"practicehub/internal/filter"
	"practicehub/models"
	"practicehub/utils"
)

// AssignRequest is the body of an assignment.
type AssignRequest struct {
	ProyectoID    models.ID `json:"proyecto_id" validate:"required" swaggertype:"string"`
	PracticanteID models.ID `json:"practicante_id" validate:"required" swaggertype:"string"`
}

// ListAssignable godoc
// @Summary Interns available for assignment
// @Description Lists interns no project references, optionally narrowed by name search and area, together with every project. When the full intern read fails the reduced fallback is used and degraded is set.
// @Tags asignaciones
// @Produce json
// @Param search query string false "Substring of the display name"
// @Param area query string false "Area"
// @Success 200 {object} MessageResponse
// @Failure 502 {object} ErrorResponse
// @Router /asignaciones [get]
func (h *ApplicationHandler) ListAssignable(c *fiber.Ctx) error {
	crit := filter.Criteria{Search: c.Query("search"), Area: c.Query("area"), NameOnly: true}
	snap, degraded, err := h.loadInterns(c.UserContext())
	if err != nil {
		return err
	}
	if snap.ProjectsErr != nil {
		h.Logger.WithError(snap.ProjectsErr).Warn("Assignment board built without proyectos")
	}
	report := h.Matcher.Report(snap)
	return utils.RespondWithWarnings(c, fiber.StatusOK, "Assignment board retrieved successfully", AssignmentBoard{
		Disponibles: crit.Apply(report.Available, nil),
		Proyectos:   snap.Projects,
		Degraded:    degraded,
	}, report.Warnings)
}

// AssignPracticante godoc
// @Summary Assign an intern to a project
// @Description Appends the intern id to the project's reference list unless it is already there. The whole list is written back; concurrent assignments to one project are last-write-wins.
// @Tags asignaciones
// @Accept json
// @Produce json
// @Param asignacion body AssignRequest true "Project and intern"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /asignaciones [post]
func (h *ApplicationHandler) AssignPracticante(c *fiber.Ctx) error {
	req := new(AssignRequest)
	if err := parseBody(c, req); err != nil {
		return err
	}
	ctx := c.UserContext()
	if _, err := h.Interns.Get(ctx, req.PracticanteID); err != nil {
		return err
	}
	added, err := assignment.Assign(ctx, h.Projects, req.ProyectoID, req.PracticanteID)
	if err != nil {
		h.Logger.WithError(err).WithFields(map[string]interface{}{
			"proyecto_id":    req.ProyectoID,
			"practicante_id": req.PracticanteID,
		}).Error("Assignment failed")
		return err
	}
	project, err := h.Projects.Get(ctx, req.ProyectoID)
	if err != nil {
		return err
	}

	message := "Practicante assigned successfully"
	if !added {
		message = "Practicante was already assigned to this proyecto"
	}
	h.Logger.WithFields(map[string]interface{}{
		"proyecto_id":    req.ProyectoID,
		"practicante_id": req.PracticanteID,
		"added":          added,
	}).Info("Assignment processed")
	return utils.RespondWithJSON(c, fiber.StatusOK, message, AssignmentResult{Added: added, Proyecto: *project})
}
