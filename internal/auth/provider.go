// Package auth wraps the hosted identity service. It validates credentials
// locally, forwards them upstream, and turns a successful sign-in into a
// local session.
package auth

import (
	"context"
	"regexp"

	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"practicehub/errs"
	"practicehub/internal/session"
)

// Credentials is the sign-in and sign-up body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// IdentityProvider is the upstream identity service.
type IdentityProvider interface {
	SignIn(ctx context.Context, creds Credentials) (*session.Identity, error)
	// SignUp returns an identity without an access token when the account
	// still has to be confirmed by email.
	SignUp(ctx context.Context, creds Credentials) (*session.Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// GoTrue is the IdentityProvider backed by the Supabase auth API.
type GoTrue struct {
	client gotrue.Client
}

func NewGoTrue(client gotrue.Client) *GoTrue {
	return &GoTrue{client: client}
}

var clientStatus = regexp.MustCompile(`status code 4\d\d`)

// classify separates rejected credentials from an unreachable service.
func classify(message string, err error) error {
	if clientStatus.MatchString(err.Error()) {
		return errs.NewUnauthorizedError(message)
	}
	return errs.NewUpstreamError("auth service request failed", err)
}

func (g *GoTrue) SignIn(ctx context.Context, creds Credentials) (*session.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := g.client.SignInWithEmailPassword(creds.Email, creds.Password)
	if err != nil {
		return nil, classify("invalid email or password", err)
	}
	return &session.Identity{
		UserID:      resp.User.ID.String(),
		Email:       resp.User.Email,
		AccessToken: resp.AccessToken,
	}, nil
}

func (g *GoTrue) SignUp(ctx context.Context, creds Credentials) (*session.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := g.client.Signup(types.SignupRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return nil, classify("sign up rejected", err)
	}
	if resp.AccessToken != "" {
		return &session.Identity{
			UserID:      resp.Session.User.ID.String(),
			Email:       resp.Session.User.Email,
			AccessToken: resp.AccessToken,
		}, nil
	}
	return &session.Identity{UserID: resp.User.ID.String(), Email: resp.User.Email}, nil
}

// SignOut revokes accessToken upstream.
func (g *GoTrue) SignOut(ctx context.Context, accessToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.client.WithToken(accessToken).Logout(); err != nil {
		return errs.NewUpstreamError("could not revoke session", err)
	}
	return nil
}
