package visualize

import (
	"sync"
	"time"
)

// Stopwatch measures elapsed time for log output. It is passed explicitly to
// whoever reports timings.
type Stopwatch struct {
	mu    sync.Mutex
	start time.Time
	lap   time.Time
}

// StartStopwatch starts a stopwatch now.
func StartStopwatch() *Stopwatch {
	now := time.Now()
	return &Stopwatch{start: now, lap: now}
}

// Lap returns the time since the previous lap and starts a new one.
func (s *Stopwatch) Lap() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	d := now.Sub(s.lap)
	s.lap = now
	return d
}

// Elapsed returns the time since the stopwatch started.
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}
