package room

import (
	"sync"
	"time"

	"github.com/9910597111/BlindSketch-Game/internal/dependencies/clock"
)

// Scheduler owns the delayed side effects of a single room's active turn:
// the round timeout, the next-hint reveal, and the post-resolution grace
// continuation. Arming a slot always cancels its predecessor, and CancelTurn
// is the one choke point every turn-ending transition goes through, so a
// stale timer can never fire into a later turn.
//
// Cancellation is synchronous with respect to the handles: a callback that
// already escaped Stop is defused by the coordinator's generation check, not
// by the scheduler.
type Scheduler struct {
	clock clock.Clock

	mu         sync.Mutex
	roundTimer clock.Timer
	hintTimer  clock.Timer
	graceTimer clock.Timer
}

// NewScheduler creates a scheduler backed by the given clock
func NewScheduler(clk clock.Clock) *Scheduler {
	return &Scheduler{clock: clk}
}

// StartRound arms the round timeout, replacing any previous one
func (s *Scheduler) StartRound(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roundTimer != nil {
		s.roundTimer.Stop()
	}
	s.roundTimer = s.clock.AfterFunc(d, fn)
}

// ScheduleHint arms the next hint reveal, replacing any previous one
func (s *Scheduler) ScheduleHint(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hintTimer != nil {
		s.hintTimer.Stop()
	}
	s.hintTimer = s.clock.AfterFunc(d, fn)
}

// ScheduleGrace arms the short post-resolution continuation that advances
// the turn after the reveal has been on screen for a moment
func (s *Scheduler) ScheduleGrace(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graceTimer != nil {
		s.graceTimer.Stop()
	}
	s.graceTimer = s.clock.AfterFunc(d, fn)
}

// CancelTurn cancels the round and hint timers. Every terminating event
// (correct guess, timeout delivery, drawer departure) must pass through here
// before its transition is considered complete.
func (s *Scheduler) CancelTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roundTimer != nil {
		s.roundTimer.Stop()
		s.roundTimer = nil
	}
	if s.hintTimer != nil {
		s.hintTimer.Stop()
		s.hintTimer = nil
	}
}

// CancelAll cancels every pending timer, including the grace continuation.
// Used when a room finishes or is destroyed.
func (s *Scheduler) CancelAll() {
	s.CancelTurn()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graceTimer != nil {
		s.graceTimer.Stop()
		s.graceTimer = nil
	}
}

// HintInterval returns the spacing between hint reveals for a turn:
// the round duration divided into hintCount+1 even segments, so the final
// hint always lands strictly before the timeout.
func HintInterval(roundDuration time.Duration, hintCount int) time.Duration {
	return roundDuration / time.Duration(hintCount+1)
}
