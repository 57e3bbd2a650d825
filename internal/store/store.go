// Package store keeps the server's protocol state in memory: the
// signature registry, pending verifiers, and active sessions. Nothing
// survives a process restart.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zkauthd/zkauthd/pkg/rpc/authv1"
	"github.com/zkauthd/zkauthd/pkg/zkp"
)

// ErrUsernameTaken is returned by PutSignature when the username is
// already registered.
var ErrUsernameTaken = errors.New("username already registered")

// pendingVerifier pairs a verifier with its creation time for TTL
// sweeping.
type pendingVerifier struct {
	verifier  *zkp.Verifier
	createdAt time.Time
}

// Store holds the three protocol maps. Each map has its own
// readers-writer lock; reads take the shared lock, writes the
// exclusive one, and no lock is held while another is taken.
type Store struct {
	sigMu      sync.RWMutex
	signatures map[string]*authv1.Signature

	verMu     sync.RWMutex
	verifiers map[uuid.UUID]pendingVerifier

	sessMu   sync.RWMutex
	sessions map[uuid.UUID]struct{}

	// now is swappable for sweep tests.
	now func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		signatures: make(map[string]*authv1.Signature),
		verifiers:  make(map[uuid.UUID]pendingVerifier),
		sessions:   make(map[uuid.UUID]struct{}),
		now:        time.Now,
	}
}

// PutSignature registers a username with its signature. The check and
// the insert happen under one exclusive lock, so exactly one of two
// concurrent registrations for the same username wins.
func (s *Store) PutSignature(username string, sig *authv1.Signature) error {
	s.sigMu.Lock()
	defer s.sigMu.Unlock()

	if _, ok := s.signatures[username]; ok {
		return ErrUsernameTaken
	}
	s.signatures[username] = sig
	return nil
}

// Signature looks up the registered signature for a username.
func (s *Store) Signature(username string) (*authv1.Signature, bool) {
	s.sigMu.RLock()
	defer s.sigMu.RUnlock()

	sig, ok := s.signatures[username]
	return sig, ok
}

// Users reports the number of registered usernames.
func (s *Store) Users() int {
	s.sigMu.RLock()
	defer s.sigMu.RUnlock()
	return len(s.signatures)
}

// PutVerifier stores a pending verifier under a fresh verifier id.
func (s *Store) PutVerifier(id uuid.UUID, v *zkp.Verifier) {
	s.verMu.Lock()
	defer s.verMu.Unlock()
	s.verifiers[id] = pendingVerifier{verifier: v, createdAt: s.now()}
}

// TakeVerifier atomically removes and returns the verifier for the
// given id. A second take for the same id reports false; verifiers are
// single-use.
func (s *Store) TakeVerifier(id uuid.UUID) (*zkp.Verifier, bool) {
	s.verMu.Lock()
	defer s.verMu.Unlock()

	pv, ok := s.verifiers[id]
	if !ok {
		return nil, false
	}
	delete(s.verifiers, id)
	return pv.verifier, true
}

// PendingVerifiers reports the number of verifiers awaiting a
// response.
func (s *Store) PendingVerifiers() int {
	s.verMu.RLock()
	defer s.verMu.RUnlock()
	return len(s.verifiers)
}

// SweepVerifiers evicts pending verifiers older than ttl, returning
// the number evicted. Orphans accumulate when clients drop the
// connection between Commit and Authenticate.
func (s *Store) SweepVerifiers(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.verMu.Lock()
	defer s.verMu.Unlock()

	evicted := 0
	for id, pv := range s.verifiers {
		if pv.createdAt.Before(cutoff) {
			delete(s.verifiers, id)
			evicted++
		}
	}
	return evicted
}

// AddSession records a freshly minted session id.
func (s *Store) AddSession(id uuid.UUID) {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	s.sessions[id] = struct{}{}
}

// HasSession reports whether the session id is active.
func (s *Store) HasSession(id uuid.UUID) bool {
	s.sessMu.RLock()
	defer s.sessMu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// RemoveSession drops a session id, reporting whether it was active.
func (s *Store) RemoveSession(id uuid.UUID) bool {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// ActiveSessions reports the number of live sessions.
func (s *Store) ActiveSessions() int {
	s.sessMu.RLock()
	defer s.sessMu.RUnlock()
	return len(s.sessions)
}
