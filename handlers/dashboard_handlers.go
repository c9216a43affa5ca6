package handlers

import (
	"github.com/gofiber/fiber/v2"

	"practicehub/internal/assignment"
	"practicehub/utils"
)

// GetDashboard godoc
// @Summary Dashboard statistics
// @Description Totals, availability percentage, per-area counts and the assigned/available split. A table that fails to load is reported in warnings and treated as empty, so two failed reads give a zero-count report.
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *ApplicationHandler) GetDashboard(c *fiber.Ctx) error {
	snap, err := assignment.LoadSnapshot(c.UserContext(), h.Interns, h.Projects)
	if err != nil {
		h.Logger.WithError(err).Warn("Dashboard computed from partial data")
	}
	report := h.Matcher.Report(snap)
	return utils.RespondWithWarnings(c, fiber.StatusOK, "Dashboard computed successfully", report, report.Warnings)
}
