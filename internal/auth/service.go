package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"practicehub/errs"
	"practicehub/internal/session"
	"practicehub/utils"
)

var validate = validator.New()

// Validate checks credentials before anything is sent upstream.
func Validate(creds Credentials) error {
	if err := validate.Struct(creds); err != nil {
		return errs.NewBadRequestErrorWithDetails("invalid credentials", strings.Join(utils.FormatValidationErrors(err), "; "))
	}
	return nil
}

// Service ties the identity provider to the local session store.
type Service struct {
	Provider IdentityProvider
	Sessions *session.Store
	Logger   *logrus.Logger
}

func normalizeCredentials(creds Credentials) Credentials {
	creds.Email = strings.ToLower(utils.SanitizeInput(creds.Email))
	return creds
}

// SignIn authenticates upstream and opens a session.
func (s *Service) SignIn(ctx context.Context, creds Credentials) (*session.Session, error) {
	creds = normalizeCredentials(creds)
	if err := Validate(creds); err != nil {
		return nil, err
	}
	ident, err := s.Provider.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.Sessions.Create(*ident)
}

// SignUp registers upstream. When the account is usable right away a
// session is opened; otherwise the returned session is nil and the user
// must confirm the email first.
func (s *Service) SignUp(ctx context.Context, creds Credentials) (*session.Session, *session.Identity, error) {
	creds = normalizeCredentials(creds)
	if err := Validate(creds); err != nil {
		return nil, nil, err
	}
	ident, err := s.Provider.SignUp(ctx, creds)
	if err != nil {
		return nil, nil, err
	}
	if ident.AccessToken == "" {
		return nil, ident, nil
	}
	sess, err := s.Sessions.Create(*ident)
	if err != nil {
		return nil, nil, err
	}
	return sess, ident, nil
}

// SignOut deletes the local session, then revokes the upstream token. An
// upstream failure is logged and does not resurrect the session.
func (s *Service) SignOut(ctx context.Context, sid string) error {
	sess, err := s.Current(sid)
	if err != nil {
		return err
	}
	token, tokenErr := s.Sessions.AccessToken(sess)
	if err := s.Sessions.Delete(sid); err != nil && !errors.Is(err, session.ErrNotFound) {
		return errs.NewInternalError("could not delete session", err)
	}
	if tokenErr != nil {
		s.Logger.WithError(tokenErr).Warn("Could not unseal access token; skipping upstream sign out")
		return nil
	}
	if err := s.Provider.SignOut(ctx, token); err != nil {
		s.Logger.WithError(err).WithField("user_id", sess.UserID).Warn("Upstream sign out failed")
	}
	return nil
}

// Current resolves a session id to a live session or an unauthorized error.
func (s *Service) Current(sid string) (*session.Session, error) {
	sess, err := s.Sessions.Get(sid)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return nil, errs.NewUnauthorizedError("not signed in")
	case errors.Is(err, session.ErrExpired):
		return nil, errs.NewUnauthorizedError("session expired")
	case err != nil:
		return nil, errs.NewInternalError("could not load session", err)
	}
	return sess, nil
}
