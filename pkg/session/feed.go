package session

import (
	"sync"
	"time"
)

// Transition is one observed job status change.
type Transition struct {
	Platform string    `json:"platform"`
	From     JobStatus `json:"from"`
	To       JobStatus `json:"to"`
	At       time.Time `json:"at"`
}

// Feed is the ordered, replayable stream of status transitions for one
// session. Every subscriber sees the full sequence from the start, in
// order, regardless of when it subscribed; the stream ends when the
// session completes.
type Feed struct {
	mu     sync.Mutex
	cond   *sync.Cond
	log    []Transition
	closed bool
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	f := &Feed{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// publish appends a transition. No-op after close.
func (f *Feed) publish(t Transition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.log = append(f.log, t)
	f.cond.Broadcast()
}

// close ends the stream; subscriber channels drain and close.
func (f *Feed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.cond.Broadcast()
}

// Transitions returns a copy of the full ordered history so far.
func (f *Feed) Transitions() []Transition {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Transition, len(f.log))
	copy(out, f.log)
	return out
}

// Subscribe returns a channel that replays the feed from its start and
// then follows it live. The channel closes once the session has
// completed and all transitions were delivered.
func (f *Feed) Subscribe() <-chan Transition {
	ch := make(chan Transition)
	go func() {
		defer close(ch)
		next := 0
		for {
			f.mu.Lock()
			for next >= len(f.log) && !f.closed {
				f.cond.Wait()
			}
			if next >= len(f.log) && f.closed {
				f.mu.Unlock()
				return
			}
			t := f.log[next]
			next++
			f.mu.Unlock()

			ch <- t
		}
	}()
	return ch
}
