package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"practicehub/errs"
	"practicehub/internal/assignment"
	"practicehub/internal/export"
	"practicehub/internal/filter"
	"practicehub/models"
)

// exportRows applies the listing filters for an export. Exports do not
// degrade: a failed intern read fails the export.
func (h *ApplicationHandler) exportRows(c *fiber.Ctx) ([]models.Practicante, error) {
	crit, err := parseCriteria(c)
	if err != nil {
		return nil, err
	}
	snap, err := assignment.LoadSnapshot(c.UserContext(), h.Interns, h.Projects)
	if snap.InternsErr != nil {
		return nil, snap.InternsErr
	}
	if err != nil {
		h.Logger.WithError(err).Warn("Export filtered without proyectos")
	}
	report := h.Matcher.Report(snap)
	assigned := filter.Either(report.IsAssigned)
	rows := crit.Apply(snap.Interns, assigned)
	for i := range rows {
		rows[i].Estado = viewOf(rows[i], assigned).Disponibilidad
	}
	return rows, nil
}

// ExportHTML godoc
// @Summary Export interns as HTML
// @Description One section per intern with name, career, area and technologies. Accepts the listing filters.
// @Tags export
// @Produce html
// @Param search query string false "Substring of name, career or email"
// @Param area query string false "Area"
// @Param availability query string false "disponible or asignado"
// @Param technology query string false "Substring of any technology"
// @Success 200 {string} string "HTML document"
// @Failure 502 {object} ErrorResponse
// @Router /export/practicantes.html [get]
func (h *ApplicationHandler) ExportHTML(c *fiber.Ctx) error {
	rows, err := h.exportRows(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WriteHTML(c.UserContext(), &buf, rows); err != nil {
		return errs.NewInternalError("could not render html export", err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// ExportPDF godoc
// @Summary Export interns as PDF
// @Description A table titled "Listado de Practicantes" with Nombre, Carrera, Área, Estado and Tecnologías. Accepts the listing filters.
// @Tags export
// @Produce application/pdf
// @Param search query string false "Substring of name, career or email"
// @Param area query string false "Area"
// @Param availability query string false "disponible or asignado"
// @Param technology query string false "Substring of any technology"
// @Success 200 {file} file "PDF document"
// @Failure 502 {object} ErrorResponse
// @Router /export/practicantes.pdf [get]
func (h *ApplicationHandler) ExportPDF(c *fiber.Ctx) error {
	rows, err := h.exportRows(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, rows); err != nil {
		return errs.NewInternalError("could not render pdf export", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="practicantes.pdf"`)
	return c.Send(buf.Bytes())
}
