// Package delivery advances message statuses on fixed delays, standing in for
// a real transport acknowledgment. Transitions are cancellable per message
// and all outstanding timers are dropped on Close.
package delivery

import (
	"sync"
	"time"
)

// Step is one scheduled status change for a message.
type Step struct {
	Status string
	After  time.Duration
}

// Applier persists a status change for a message.
type Applier func(messageID, status string)

// Scheduler owns the pending transition timers.
type Scheduler struct {
	mu     sync.Mutex
	apply  Applier
	timers map[string][]*time.Timer
	closed bool
}

// NewScheduler builds a scheduler that applies transitions via apply.
func NewScheduler(apply Applier) *Scheduler {
	return &Scheduler{
		apply:  apply,
		timers: make(map[string][]*time.Timer),
	}
}

// Schedule registers delayed status transitions for a message. Steps fire
// independently, each measured from now.
func (s *Scheduler) Schedule(messageID string, steps []Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, step := range steps {
		status := step.Status
		timer := time.AfterFunc(step.After, func() {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return
			}
			s.apply(messageID, status)
		})
		s.timers[messageID] = append(s.timers[messageID], timer)
	}
}

// Cancel drops any pending transitions for a message, e.g. when the message
// was read before the simulated delivery completed.
func (s *Scheduler) Cancel(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, timer := range s.timers[messageID] {
		timer.Stop()
	}
	delete(s.timers, messageID)
}

// Close cancels every pending transition. The scheduler cannot be reused.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timers := range s.timers {
		for _, timer := range timers {
			timer.Stop()
		}
		delete(s.timers, id)
	}
}
