package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"practicehub/errs"
	"practicehub/internal/session"
)

// SessionCookie carries the session id in the browser.
const SessionCookie = "practicehub_session"

// SessionKey is the Locals key holding the *session.Session.
const SessionKey = "session"

// SessionResolver turns a session id into a live session.
type SessionResolver interface {
	Current(sid string) (*session.Session, error)
}

// SessionID reads the session id from the cookie or a Bearer header.
func SessionID(c *fiber.Ctx) string {
	if sid := c.Cookies(SessionCookie); sid != "" {
		return sid
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// CurrentSession returns the session stored by RequireSession, or nil.
func CurrentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(SessionKey).(*session.Session)
	return sess
}

// RequireSession rejects requests without a live session.
func RequireSession(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := SessionID(c)
		if sid == "" {
			return errs.NewUnauthorizedError("not signed in")
		}
		sess, err := resolver.Current(sid)
		if err != nil {
			return err
		}
		c.Locals(SessionKey, sess)
		return c.Next()
	}
}
