package view

import "sync"

// Phase is the lifecycle of a board fetch.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseFetching Phase = "fetching"
	PhaseSuccess  Phase = "success"
	PhaseFailure  Phase = "failure"
)

// State tracks the current fetch lifecycle and the last assembled board.
// Completions carry the generation handed out by BeginFetch; a completion for
// a superseded generation is dropped, so out-of-order responses can never
// overwrite a newer fetch.
type State struct {
	mu         sync.Mutex
	generation uint64
	phase      Phase
	board      *BoardView
}

func NewState() *State {
	return &State{phase: PhaseIdle}
}

// BeginFetch moves to the fetching phase and returns the generation token the
// eventual Complete or Fail must present. Prior board data is cleared so a
// renderer can never show a stale board while a fetch is in flight.
func (s *State) BeginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.phase = PhaseFetching
	s.board = nil
	return s.generation
}

// Complete records a successful fetch. Stale generations are ignored.
func (s *State) Complete(generation uint64, board *BoardView) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	s.phase = PhaseSuccess
	s.board = board
	return true
}

// Fail records a failed fetch. Stale generations are ignored.
func (s *State) Fail(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	s.phase = PhaseFailure
	s.board = nil
	return true
}

// Phase returns the current lifecycle phase.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Board returns the last successfully assembled board, or nil.
func (s *State) Board() *BoardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}
