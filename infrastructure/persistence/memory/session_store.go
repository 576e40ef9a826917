package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"cookbook-backend/pkg/auth"
)

type sessionRecord struct {
	session auth.Session
	flash   map[auth.Flow]auth.Flash
}

// SessionStore is an in-memory implementation of auth.SessionStore. Sessions
// live for the lifetime of the process; restarting the server signs
// everyone out.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRecord
}

// NewSessionStore creates an empty in-memory session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionRecord),
	}
}

var _ auth.SessionStore = (*SessionStore)(nil)

// Create starts a new session for the given user ID (empty for anonymous)
func (s *SessionStore) Create(ctx context.Context, userID string) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := auth.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	s.sessions[sess.ID] = &sessionRecord{
		session: sess,
		flash:   make(map[auth.Flow]auth.Flash),
	}
	return &sess, nil
}

// Get retrieves a session by ID; nil when unknown
func (s *SessionStore) Get(ctx context.Context, id string) (*auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	sess := rec.session
	return &sess, nil
}

// Delete removes a session
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// SetFlash marks the flow's flag as Failed on the given session
func (s *SessionStore) SetFlash(ctx context.Context, id string, flow auth.Flow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[id]
	if !ok {
		return nil
	}
	rec.flash[flow] = auth.FlashFailed
	return nil
}

// ConsumeFlash reads the flow's flag and clears it in one step
func (s *SessionStore) ConsumeFlash(ctx context.Context, id string, flow auth.Flow) (auth.Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[id]
	if !ok {
		return auth.FlashUnset, nil
	}
	flash := rec.flash[flow]
	rec.flash[flow] = auth.FlashUnset
	return flash, nil
}
