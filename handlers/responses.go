package handlers

import (
	"practicehub/internal/assignment"
	"practicehub/models"
)

// ErrorResponse defines a common structure for error responses.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MessageResponse is a success envelope without data.
type MessageResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PracticanteView is an intern row plus its effective availability.
type PracticanteView struct {
	models.Practicante
	Disponibilidad string `json:"disponibilidad"`
}

// PracticanteListData is the body of the intern listing.
type PracticanteListData struct {
	Items    []PracticanteView `json:"items"`
	Total    int               `json:"total"`
	Degraded bool              `json:"degraded"`
}

// PracticanteListResponse defines the response when listing interns.
type PracticanteListResponse struct {
	Status   string              `json:"status"`
	Message  string              `json:"message"`
	Data     PracticanteListData `json:"data"`
	Warnings []string            `json:"warnings,omitempty"`
}

// PracticanteDetail is one intern with the projects it resolves into.
type PracticanteDetail struct {
	PracticanteView
	ProyectosAsignados []models.Proyecto `json:"proyectos_asignados"`
}

// PracticanteSuccessResponse defines the response for a single intern.
type PracticanteSuccessResponse struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Data    models.Practicante `json:"data"`
}

// ProyectoDetail is one project with the interns it resolves into.
type ProyectoDetail struct {
	models.Proyecto
	PracticantesAsignados []models.Practicante `json:"practicantes_asignados"`
}

// ProyectoSuccessResponse defines the response for a single project.
type ProyectoSuccessResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    models.Proyecto `json:"data"`
}

// ProyectoListResponse defines the response when listing projects.
type ProyectoListResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    []models.Proyecto `json:"data"`
}

// AssignmentBoard lists the interns still available and the projects they
// can join.
type AssignmentBoard struct {
	Disponibles []models.Practicante `json:"disponibles"`
	Proyectos   []models.Proyecto    `json:"proyectos"`
	Degraded    bool                 `json:"degraded"`
}

// AssignmentResult is returned after an assignment attempt.
type AssignmentResult struct {
	Added    bool            `json:"added"`
	Proyecto models.Proyecto `json:"proyecto"`
}

// DashboardResponse wraps the resolver report.
type DashboardResponse struct {
	Status   string            `json:"status"`
	Message  string            `json:"message"`
	Data     assignment.Report `json:"data"`
	Warnings []string          `json:"warnings,omitempty"`
}

// ImportResult reports a CSV import.
type ImportResult struct {
	Mode     string `json:"mode"`
	Parsed   int    `json:"parsed"`
	Inserted int    `json:"inserted"`
}

// SessionData describes the signed-in user.
type SessionData struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at"`
}
