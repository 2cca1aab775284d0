package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openboard/internal/board/models"
)

func TestStateLifecycle(t *testing.T) {
	s := NewState()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Nil(t, s.Board())

	gen := s.BeginFetch()
	assert.Equal(t, PhaseFetching, s.Phase())

	board := Assemble(&models.Snapshot{Item: models.Board{ID: "b1"}})
	require.True(t, s.Complete(gen, board))
	assert.Equal(t, PhaseSuccess, s.Phase())
	assert.Equal(t, board, s.Board())
}

// TestBeginFetchClearsPriorBoard verifies no stale board is visible while a
// new fetch is in flight.
func TestBeginFetchClearsPriorBoard(t *testing.T) {
	s := NewState()
	gen := s.BeginFetch()
	require.True(t, s.Complete(gen, &BoardView{BoardID: "b1"}))
	require.NotNil(t, s.Board())

	s.BeginFetch()
	assert.Equal(t, PhaseFetching, s.Phase())
	assert.Nil(t, s.Board(), "prior board must not render during a fetch")
}

func TestStateFailureClearsBoard(t *testing.T) {
	s := NewState()
	gen := s.BeginFetch()
	require.True(t, s.Complete(gen, &BoardView{BoardID: "b1"}))

	gen = s.BeginFetch()
	require.True(t, s.Fail(gen))
	assert.Equal(t, PhaseFailure, s.Phase())
	assert.Nil(t, s.Board())
}

// TestStaleCompletionDropped verifies a slow response for a superseded fetch
// cannot overwrite the newer one.
func TestStaleCompletionDropped(t *testing.T) {
	s := NewState()

	stale := s.BeginFetch()
	fresh := s.BeginFetch()

	newer := &BoardView{BoardID: "newer"}
	require.True(t, s.Complete(fresh, newer))

	assert.False(t, s.Complete(stale, &BoardView{BoardID: "older"}))
	assert.Equal(t, newer, s.Board())
	assert.Equal(t, PhaseSuccess, s.Phase())

	assert.False(t, s.Fail(stale), "stale failure must not flip a fresh success")
	assert.Equal(t, PhaseSuccess, s.Phase())
}
