package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"practicehub/errs"
	"practicehub/internal/auth"
	"practicehub/internal/session"
	"practicehub/middleware"
	"practicehub/utils"
)

func sessionData(sess *session.Session, withID bool) SessionData {
	data := SessionData{
		UserID:    sess.UserID,
		Email:     sess.Email,
		ExpiresAt: sess.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if withID {
		data.SessionID = sess.ID
	}
	return data
}

func (h *ApplicationHandler) setSessionCookie(c *fiber.Ctx, sess *session.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.Options.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SignIn godoc
// @Summary Sign in
// @Description Validates the credentials, signs in against the identity service and opens a session. The session id is set as an HTTP-only cookie and returned for Bearer use.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body auth.Credentials true "Email and password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/signin [post]
func (h *ApplicationHandler) SignIn(c *fiber.Ctx) error {
	creds := new(auth.Credentials)
	if err := c.BodyParser(creds); err != nil {
		return errs.NewBadRequestErrorWithDetails("Cannot parse JSON", err.Error())
	}
	sess, err := h.Auth.SignIn(c.UserContext(), *creds)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, sess)
	return utils.RespondWithJSON(c, fiber.StatusOK, "Signed in successfully", sessionData(sess, true))
}

// SignUp godoc
// @Summary Sign up
// @Description Registers an account. When the identity service requires email confirmation no session is opened.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body auth.Credentials true "Email and password"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *ApplicationHandler) SignUp(c *fiber.Ctx) error {
	creds := new(auth.Credentials)
	if err := c.BodyParser(creds); err != nil {
		return errs.NewBadRequestErrorWithDetails("Cannot parse JSON", err.Error())
	}
	sess, ident, err := h.Auth.SignUp(c.UserContext(), *creds)
	if err != nil {
		return err
	}
	if sess == nil {
		return utils.RespondWithJSON(c, fiber.StatusCreated, "Account created; confirm your email before signing in", fiber.Map{
			"user_id": ident.UserID,
			"email":   ident.Email,
		})
	}
	h.setSessionCookie(c, sess)
	return utils.RespondWithJSON(c, fiber.StatusCreated, "Account created and signed in", sessionData(sess, true))
}

// SignOut godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/signout [post]
func (h *ApplicationHandler) SignOut(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return errs.NewUnauthorizedError("not signed in")
	}
	if err := h.Auth.SignOut(c.UserContext(), sid); err != nil {
		return err
	}
	c.ClearCookie(middleware.SessionCookie)
	return utils.RespondWithJSON(c, fiber.StatusOK, "Signed out successfully", nil)
}

// GetSession godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/session [get]
func (h *ApplicationHandler) GetSession(c *fiber.Ctx) error {
	sess, err := h.Auth.Current(middleware.SessionID(c))
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Session active", sessionData(sess, false))
}
