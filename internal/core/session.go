package core

// session.go owns the per-user roster state.
//
// A Session is created empty, receives every manual entry and import of one
// browser (or CLI run), and is discarded when it is ended explicitly or has
// been idle longer than the store's TTL. Nothing outlives the process.

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the store is at capacity.
	ErrTooManySessions = errors.New("too many active sessions")
)

// Session is one user's working roster.
type Session struct {
	ID        string
	Roster    *Roster
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// NewSession returns a standalone session with a fresh ID and an empty roster.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Roster:    NewRoster(),
		CreatedAt: now,
		lastSeen:  now,
	}
}

// LastSeen returns the time of the last Touch.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(t time.Time) {
	s.mu.Lock()
	s.lastSeen = t
	s.mu.Unlock()
}

// SessionStore keeps live sessions in memory.
type SessionStore struct {
	ttl         time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates a store. ttl <= 0 disables expiry and
// maxSessions <= 0 removes the cap.
func NewSessionStore(ttl time.Duration, maxSessions int) *SessionStore {
	return &SessionStore{
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// Create starts a new session with an empty roster.
//
// At capacity it first drops expired sessions, then the longest idle session
// whose roster is still empty. ErrTooManySessions is returned only when every
// live session holds records.
func (st *SessionStore) Create() (*Session, error) {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.maxSessions > 0 && len(st.sessions) >= st.maxSessions {
		if !st.makeRoomLocked(now) {
			return nil, ErrTooManySessions
		}
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Roster:    NewRoster(),
		CreatedAt: now,
		lastSeen:  now,
	}
	st.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns a live session and marks it as used.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := st.now()
	if st.expired(sess, now) {
		st.End(id)
		return nil, ErrSessionNotFound
	}
	sess.touch(now)
	return sess, nil
}

// End discards a session and its roster. Ending an unknown ID is a no-op.
func (st *SessionStore) End(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Sweep discards every session idle for longer than the TTL and returns how
// many were removed.
func (st *SessionStore) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, sess := range st.sessions {
		if st.expired(sess, now) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// MaxSessions returns the configured capacity (0 = unlimited).
func (st *SessionStore) MaxSessions() int {
	return st.maxSessions
}

// makeRoomLocked frees one slot if it can. st.mu must be held.
func (st *SessionStore) makeRoomLocked(now time.Time) bool {
	freed := false
	for id, sess := range st.sessions {
		if st.expired(sess, now) {
			delete(st.sessions, id)
			freed = true
		}
	}
	if freed {
		return true
	}

	var victim *Session
	var victimSeen time.Time
	for _, sess := range st.sessions {
		if sess.Roster.Len() > 0 {
			continue
		}
		if seen := sess.LastSeen(); victim == nil || seen.Before(victimSeen) {
			victim, victimSeen = sess, seen
		}
	}
	if victim == nil {
		return false
	}
	delete(st.sessions, victim.ID)
	return true
}

func (st *SessionStore) expired(sess *Session, now time.Time) bool {
	return st.ttl > 0 && now.Sub(sess.LastSeen()) > st.ttl
}
