package handlers

import (
	"github.com/gofiber/fiber/v2"

	"practicehub/middleware"
)

// RegisterRoutes mounts the auth and /api/v1 routes. When h.Auth is nil
// the API is served without a session check.
func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	var guards []fiber.Handler
	if h.Auth != nil {
		authGroup := app.Group("/auth")
		authGroup.Post("/signin", h.SignIn)
		authGroup.Post("/signup", h.SignUp)
		authGroup.Post("/signout", h.SignOut)
		authGroup.Get("/session", h.GetSession)
		guards = append(guards, middleware.RequireSession(h.Auth))
	}

	apiV1 := app.Group("/api/v1", guards...)

	apiV1.Get("/dashboard", h.GetDashboard)

	apiV1.Get("/practicantes", h.ListPracticantes)
	apiV1.Post("/practicantes", h.CreatePracticante)
	apiV1.Post("/practicantes/import", h.ImportPracticantes)
	apiV1.Get("/practicantes/:id", h.GetPracticante)
	apiV1.Put("/practicantes/:id", h.UpdatePracticante)
	apiV1.Delete("/practicantes/:id", h.DeletePracticante)

	apiV1.Get("/proyectos", h.ListProyectos)
	apiV1.Post("/proyectos", h.CreateProyecto)
	apiV1.Get("/proyectos/:id", h.GetProyecto)
	apiV1.Put("/proyectos/:id", h.UpdateProyecto)
	apiV1.Delete("/proyectos/:id", h.DeleteProyecto)

	apiV1.Get("/asignaciones", h.ListAssignable)
	apiV1.Post("/asignaciones", h.AssignPracticante)

	apiV1.Get("/export/practicantes.html", h.ExportHTML)
	apiV1.Get("/export/practicantes.pdf", h.ExportPDF)
}
