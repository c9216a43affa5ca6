// Package session keeps signed-in users in a local bbolt file. The upstream
// access token is stored sealed with AES-GCM; the session id handed to the
// browser is random and carries no data.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

var sessionsBucket = []byte("Sessions")

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// EventType names a session change.
type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
	EventExpired   EventType = "expired"
)

// Event is published to subscribers after a session change is committed.
type Event struct {
	Type      EventType
	SessionID string
	UserID    string
	Email     string
	At        time.Time
}

// Identity is what the auth provider hands over on sign-in.
type Identity struct {
	UserID      string
	Email       string
	AccessToken string
}

// Session is one stored sign-in.
type Session struct {
	ID          string    `json:"-"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	SealedToken string    `json:"token"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Store persists sessions and fans out change events.
type Store struct {
	db  *bbolt.DB
	key []byte
	ttl time.Duration
	now func() time.Time

	mu     sync.RWMutex
	subs   map[int]func(Event)
	nextID int
}

// Open creates or opens the session file at path.
func Open(path, secret string, ttl time.Duration) (*Store, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret must be set")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{
		db:   db,
		key:  deriveKey(secret),
		ttl:  ttl,
		now:  time.Now,
		subs: make(map[int]func(Event)),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Subscribe registers fn for every session event. The returned func
// removes it.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) publish(ev Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create stores a new session for id and publishes signed_in.
func (s *Store) Create(id Identity) (*Session, error) {
	sid, err := newID()
	if err != nil {
		return nil, err
	}
	token, err := seal(s.key, id.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("sealing access token: %w", err)
	}
	now := s.now()
	sess := &Session{
		ID:          sid,
		UserID:      id.UserID,
		Email:       id.Email,
		SealedToken: token,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(sid), data)
	})
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: EventSignedIn, SessionID: sid, UserID: sess.UserID, Email: sess.Email, At: now})
	return sess, nil
}

// Get loads a live session. An expired one is removed, published as
// expired and reported as ErrExpired.
func (s *Store) Get(sid string) (*Session, error) {
	if sid == "" {
		return nil, ErrNotFound
	}
	var sess Session
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(sessionsBucket).Get([]byte(sid))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &sess)
	})
	if err != nil {
		return nil, err
	}
	sess.ID = sid
	if now := s.now(); !now.Before(sess.ExpiresAt) {
		if removed, _ := s.remove(sid); removed != nil {
			s.publish(Event{Type: EventExpired, SessionID: sid, UserID: sess.UserID, Email: sess.Email, At: now})
		}
		return nil, ErrExpired
	}
	return &sess, nil
}

// AccessToken unseals the upstream token of sess.
func (s *Store) AccessToken(sess *Session) (string, error) {
	return open(s.key, sess.SealedToken)
}

func (s *Store) remove(sid string) (*Session, error) {
	var sess *Session
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		v := b.Get([]byte(sid))
		if v == nil {
			return nil
		}
		sess = &Session{}
		if err := json.Unmarshal(v, sess); err != nil {
			return err
		}
		return b.Delete([]byte(sid))
	})
	return sess, err
}

// Delete removes the session and publishes signed_out. Deleting an
// unknown id returns ErrNotFound.
func (s *Store) Delete(sid string) error {
	sess, err := s.remove(sid)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNotFound
	}
	s.publish(Event{Type: EventSignedOut, SessionID: sid, UserID: sess.UserID, Email: sess.Email, At: s.now()})
	return nil
}

// PurgeExpired removes every expired session and returns how many went.
func (s *Store) PurgeExpired() (int, error) {
	now := s.now()
	var expired []Event
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		var keys [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var sess Session
			if err := json.Unmarshal(v, &sess); err != nil || !now.Before(sess.ExpiresAt) {
				keys = append(keys, append([]byte(nil), k...))
				expired = append(expired, Event{Type: EventExpired, SessionID: string(k), UserID: sess.UserID, Email: sess.Email, At: now})
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	for _, ev := range expired {
		s.publish(ev)
	}
	return len(expired), nil
}
