// Package form holds the new transaction form and the transaction search form.
//
// Both forms own a transient input buffer, validate it on submit and hand the
// result to a service.TransactionStore. While a store call is pending the
// form is disabled and further submits fail with ErrSubmitInProgress.
package form

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrSubmitInProgress is returned when a form is submitted while its previous
// submission has not completed yet
var ErrSubmitInProgress = errors.New("submit already in progress")

// State is the lifecycle state of a form submission
type State int

const (
	// Idle means the form has not been submitted yet
	Idle State = iota
	// Submitting means a store call is pending
	Submitting
	// Submitted means the last store call succeeded
	Submitted
	// Failed means the last store call returned an error
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// submission is the disabled-submit guard shared by both forms
type submission struct {
	busy atomic.Bool

	mu    sync.Mutex
	state State
}

// acquire disables the form; false means a submission is already pending
func (s *submission) acquire() bool {
	return s.busy.CompareAndSwap(false, true)
}

func (s *submission) release() {
	s.busy.Store(false)
}

func (s *submission) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// State returns the current submission state
func (s *submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Disabled reports whether the submit control is disabled
func (s *submission) Disabled() bool {
	return s.busy.Load()
}
