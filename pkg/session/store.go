// Package session owns learner session lifecycle. The store is created
// at process start, injected into its consumers, and cleared at
// shutdown; nothing here is ambient global state.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightpath-ai/brightpath/pkg/ledger"
)

// ErrNotFound is returned when a session ID is unknown.
var ErrNotFound = errors.New("session not found")

// Session is one learning session. Its cost ledger lives and dies with it.
type Session struct {
	ID           string
	LearnerID    string
	StartedAt    time.Time
	LastActivity time.Time
	Ledger       *ledger.Ledger
}

// Store tracks active sessions keyed by learner.
type Store struct {
	gapTimeout time.Duration
	newLedger  func() *ledger.Ledger
	logger     *zap.Logger
	now        func() time.Time

	mu        sync.Mutex
	sessions  map[string]*Session
	byLearner map[string]*Session
}

// NewStore creates a Store. newLedger builds the per-session cost ledger.
func NewStore(gapTimeout time.Duration, newLedger func() *ledger.Ledger, logger *zap.Logger) *Store {
	if gapTimeout <= 0 {
		gapTimeout = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		gapTimeout: gapTimeout,
		newLedger:  newLedger,
		logger:     logger,
		now:        time.Now,
		sessions:   make(map[string]*Session),
		byLearner:  make(map[string]*Session),
	}
}

// newSessionID creates an ID like sess_20260831_a3f9c2d1.
func (s *Store) newSessionID() string {
	return fmt.Sprintf("sess_%s_%s", s.now().UTC().Format("20060102"), uuid.NewString()[:8])
}

// Resolve returns the learner's active session, reusing the most recent
// one when its last activity is within the gap timeout, otherwise
// starting a fresh session with a fresh ledger.
func (s *Store) Resolve(learnerID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if sess, ok := s.byLearner[learnerID]; ok && now.Sub(sess.LastActivity) <= s.gapTimeout {
		sess.LastActivity = now
		return sess
	}

	sess := &Session{
		ID:           s.newSessionID(),
		LearnerID:    learnerID,
		StartedAt:    now,
		LastActivity: now,
		Ledger:       s.newLedger(),
	}
	s.sessions[sess.ID] = sess
	s.byLearner[learnerID] = sess

	s.logger.Info("session started",
		zap.String("session_id", sess.ID),
		zap.String("learner_id", learnerID),
	)
	return sess
}

// Get looks up a session by ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// End discards a session and its ledger.
func (s *Store) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	if s.byLearner[sess.LearnerID] == sess {
		delete(s.byLearner, sess.LearnerID)
	}

	stats := sess.Ledger.Stats()
	s.logger.Info("session ended",
		zap.String("session_id", id),
		zap.Float64("total_cost", stats.TotalCost),
		zap.Int("request_count", stats.RequestCount),
	)
	return nil
}

// Reset discards all sessions. Called at shutdown.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*Session)
	s.byLearner = make(map[string]*Session)
}

// Len reports the number of active sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
