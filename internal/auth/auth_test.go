package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gotrue "github.com/supabase-community/gotrue-go"

	"practicehub/errs"
	"practicehub/internal/session"
)

const userID = "5f0c1d7e-6a0a-4b8e-9b8f-2a7c1e3d4f5a"

func newGoTrue(t *testing.T, h http.HandlerFunc) *GoTrue {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGoTrue(gotrue.New("test", "anon-key").WithCustomGoTrueURL(srv.URL))
}

func TestGoTrueSignIn(t *testing.T) {
	g := newGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		io.WriteString(w, `{"access_token":"jwt","token_type":"bearer","user":{"id":"`+userID+`","email":"ana@example.com"}}`)
	})

	ident, err := g.SignIn(context.Background(), Credentials{Email: "ana@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, userID, ident.UserID)
	assert.Equal(t, "jwt", ident.AccessToken)
}

func TestGoTrueSignInRejected(t *testing.T) {
	g := newGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"invalid_grant"}`)
	})

	_, err := g.SignIn(context.Background(), Credentials{Email: "ana@example.com", Password: "bad"})
	assert.True(t, errs.IsUnauthorized(err))
}

func TestGoTrueSignUpPendingConfirmation(t *testing.T) {
	g := newGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/signup", r.URL.Path)
		io.WriteString(w, `{"id":"`+userID+`","email":"ana@example.com"}`)
	})

	ident, err := g.SignUp(context.Background(), Credentials{Email: "ana@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, userID, ident.UserID)
	assert.Empty(t, ident.AccessToken)
}

func TestGoTrueSignOutSendsToken(t *testing.T) {
	g := newGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, g.SignOut(context.Background(), "jwt"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Credentials{Email: "ana@example.com", Password: "x"}))

	err := Validate(Credentials{Email: "not-an-email", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, errs.StatusCode(err))

	err = Validate(Credentials{Email: "ana@example.com"})
	assert.Equal(t, http.StatusBadRequest, errs.StatusCode(err))
}

type fakeProvider struct {
	calls     int
	signedOut []string
	err       error
	noToken   bool
}

func (f *fakeProvider) SignIn(_ context.Context, c Credentials) (*session.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &session.Identity{UserID: "u-1", Email: c.Email, AccessToken: "jwt"}, nil
}

func (f *fakeProvider) SignUp(_ context.Context, c Credentials) (*session.Identity, error) {
	f.calls++
	if f.noToken {
		return &session.Identity{UserID: "u-2", Email: c.Email}, nil
	}
	return &session.Identity{UserID: "u-2", Email: c.Email, AccessToken: "jwt"}, nil
}

func (f *fakeProvider) SignOut(_ context.Context, token string) error {
	f.signedOut = append(f.signedOut, token)
	return f.err
}

func newService(t *testing.T, p IdentityProvider) *Service {
	t.Helper()
	sessions, err := session.Open(filepath.Join(t.TempDir(), "sessions.db"), "a-test-secret-of-some-length", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Service{Provider: p, Sessions: sessions, Logger: logger}
}

func TestServiceSignInValidatesBeforeUpstream(t *testing.T) {
	p := &fakeProvider{}
	svc := newService(t, p)

	_, err := svc.SignIn(context.Background(), Credentials{Email: "bad", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, errs.StatusCode(err))
	assert.Equal(t, 0, p.calls)
}

func TestServiceSignInAndOut(t *testing.T) {
	p := &fakeProvider{}
	svc := newService(t, p)

	sess, err := svc.SignIn(context.Background(), Credentials{Email: " Ana@Example.com ", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", sess.Email)

	current, err := svc.Current(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "u-1", current.UserID)

	require.NoError(t, svc.SignOut(context.Background(), sess.ID))
	assert.Equal(t, []string{"jwt"}, p.signedOut)

	_, err = svc.Current(sess.ID)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestServiceSignOutSurvivesUpstreamFailure(t *testing.T) {
	p := &fakeProvider{}
	svc := newService(t, p)
	sess, err := svc.SignIn(context.Background(), Credentials{Email: "ana@example.com", Password: "x"})
	require.NoError(t, err)

	p.err = errors.New("auth down")
	require.NoError(t, svc.SignOut(context.Background(), sess.ID))
	_, err = svc.Current(sess.ID)
	assert.Error(t, err)
}

func TestServiceSignUpPendingConfirmation(t *testing.T) {
	svc := newService(t, &fakeProvider{noToken: true})
	sess, ident, err := svc.SignUp(context.Background(), Credentials{Email: "eva@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, "u-2", ident.UserID)
}
