package handlers

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"practicehub/errs"
	"practicehub/internal/assignment"
	"practicehub/internal/auth"
	"practicehub/internal/store"
	"practicehub/models"
	"practicehub/utils"
)

var validate = validator.New()

// Options tune handler behavior from configuration.
type Options struct {
	ImportMaxBytes int64
	SecureCookies  bool
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Logger   *logrus.Logger
	Interns  store.InternRepository
	Projects store.ProjectRepository
	Matcher  assignment.Matcher
	// Auth is nil when authentication is disabled.
	Auth    *auth.Service
	Options Options
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(logger *logrus.Logger, st *store.Store, matcher assignment.Matcher, authSvc *auth.Service, opts Options) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:   logger,
		Interns:  st.Interns,
		Projects: st.Projects,
		Matcher:  matcher,
		Auth:     authSvc,
		Options:  opts,
	}
}

func paramID(c *fiber.Ctx) (models.ID, error) {
	id := models.ID(strings.TrimSpace(c.Params("id")))
	if id.IsZero() {
		return "", errs.NewBadRequestError("missing id")
	}
	return id, nil
}

// parseBody decodes and validates a JSON request body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errs.NewBadRequestErrorWithDetails("Cannot parse JSON", err.Error())
	}
	if err := validate.Struct(out); err != nil {
		return errs.NewBadRequestErrorWithDetails("Validation failed", strings.Join(utils.FormatValidationErrors(err), ", "))
	}
	return nil
}

func durationMillis(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
