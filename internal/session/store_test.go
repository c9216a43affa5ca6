package session

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "sessions.db"), "a-test-secret-of-some-length", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

type recorder struct {
	mu     sync.Mutex
	events []EventType
}

func (r *recorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev.Type)
}

func TestCreateGetDelete(t *testing.T) {
	s := openTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.record)

	sess, err := s.Create(Identity{UserID: "u-1", Email: "ana@example.com", AccessToken: "jwt-token"})
	require.NoError(t, err)
	assert.Len(t, sess.ID, 64)
	assert.NotContains(t, sess.SealedToken, "jwt-token")

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)

	token, err := s.AccessToken(got)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	require.NoError(t, s.Delete(sess.ID))
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(sess.ID), ErrNotFound)

	assert.Equal(t, []EventType{EventSignedIn, EventSignedOut}, rec.events)
}

func TestExpiredSessionIsRemoved(t *testing.T) {
	s := openTestStore(t)
	rec := &recorder{}
	s.Subscribe(rec.record)

	sess, err := s.Create(Identity{UserID: "u-1", AccessToken: "t"})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrExpired)
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []EventType{EventSignedIn, EventExpired}, rec.events)
}

func TestPurgeExpired(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.Create(Identity{UserID: "u", AccessToken: "t"})
		require.NoError(t, err)
	}

	n, err := s.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err = s.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUnsubscribe(t *testing.T) {
	s := openTestStore(t)
	rec := &recorder{}
	unsubscribe := s.Subscribe(rec.record)
	unsubscribe()

	_, err := s.Create(Identity{UserID: "u", AccessToken: "t"})
	require.NoError(t, err)
	assert.Empty(t, rec.events)
}

func TestTokenSealedWithOtherSecretCannotBeOpened(t *testing.T) {
	sealed, err := seal(deriveKey("first-secret-value"), "token")
	require.NoError(t, err)

	_, err = open(deriveKey("second-secret-value"), sealed)
	assert.Error(t, err)

	plain, err := open(deriveKey("first-secret-value"), sealed)
	require.NoError(t, err)
	assert.Equal(t, "token", plain)
}

func TestOpenValidatesArguments(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "s.db"), "", time.Hour)
	assert.Error(t, err)
	_, err = Open(filepath.Join(dir, "s.db"), "secret", 0)
	assert.Error(t, err)
}

func TestGetEmptyID(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get("")
	assert.ErrorIs(t, err, ErrNotFound)
}
