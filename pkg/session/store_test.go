package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightpath-ai/brightpath/pkg/ledger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(30*time.Minute, func() *ledger.Ledger {
		return ledger.New(5.00, 50.00, nil, zap.NewNop())
	}, zap.NewNop())
}

func TestResolveCreatesSession(t *testing.T) {
	s := newTestStore(t)

	sess := s.Resolve("learner-1")
	require.NotNil(t, sess)
	assert.Equal(t, "learner-1", sess.LearnerID)
	assert.NotNil(t, sess.Ledger)
	assert.Contains(t, sess.ID, "sess_")
	assert.Equal(t, 1, s.Len())
}

func TestResolveReusesWithinGap(t *testing.T) {
	s := newTestStore(t)

	first := s.Resolve("learner-1")
	second := s.Resolve("learner-1")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, s.Len())
}

func TestResolveNewSessionAfterGap(t *testing.T) {
	s := newTestStore(t)

	current := time.Now()
	s.now = func() time.Time { return current }

	first := s.Resolve("learner-1")
	firstLedger := first.Ledger
	firstLedger.RecordRequest(100, 50, "gpt-4-turbo-preview")

	current = current.Add(31 * time.Minute)
	second := s.Resolve("learner-1")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Zero(t, second.Ledger.Stats().TotalCost, "new session gets a fresh ledger")
}

func TestSessionsPerLearnerAreIndependent(t *testing.T) {
	s := newTestStore(t)

	a := s.Resolve("learner-a")
	b := s.Resolve("learner-b")
	require.NotEqual(t, a.ID, b.ID)

	a.Ledger.RecordRequest(1000, 1000, "gpt-4-turbo-preview")
	assert.Zero(t, b.Ledger.Stats().TotalCost)
}

func TestGetAndEnd(t *testing.T) {
	s := newTestStore(t)
	sess := s.Resolve("learner-1")

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	require.NoError(t, s.End(sess.ID))
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.End(sess.ID), ErrNotFound)

	// Ending the session clears the learner mapping too.
	next := s.Resolve("learner-1")
	assert.NotEqual(t, sess.ID, next.ID)
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	s.Resolve("learner-1")
	s.Resolve("learner-2")
	require.Equal(t, 2, s.Len())

	s.Reset()
	assert.Zero(t, s.Len())
}
