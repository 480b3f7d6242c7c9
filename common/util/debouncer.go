package util

import (
	"sync"
	"time"
)

// Debouncer runs only the last function given within the quiet period.
type Debouncer struct {
	delay time.Duration
	mux   sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (s *Debouncer) Trigger(fn func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, fn)
}

func (s *Debouncer) Cancel() {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
