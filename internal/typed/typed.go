// Package typed implements the hero banner's typing effect: a list of
// phrases is typed out one character at a time, held, deleted, and the
// next phrase begins. The cycle never ends on its own.
//
// The state machine is the pure Step function. Animator wraps it with a
// Scheduler and a Sink so it can run against a real clock.
package typed

import (
	"errors"
	"sync"
	"time"
)

// ErrNoPhrases is returned when an animator is built without anything to type.
var ErrNoPhrases = errors.New("typed: phrase list is empty")

// Phase is which way the cursor is moving.
type Phase int

const (
	Typing Phase = iota
	Deleting
)

func (p Phase) String() string {
	if p == Deleting {
		return "deleting"
	}
	return "typing"
}

// State is the animator's position in the cycle. CharIndex counts runes.
type State struct {
	PhraseIndex int
	CharIndex   int
	Phase       Phase
}

// Timing holds the delays between steps.
type Timing struct {
	Start     time.Duration // before the very first step
	Type      time.Duration // per character while typing
	Delete    time.Duration // per character while deleting
	HoldFull  time.Duration // after a phrase is fully typed
	HoldEmpty time.Duration // after a phrase is fully deleted
}

// DefaultTiming matches the cadence of the site's hero banner.
var DefaultTiming = Timing{
	Start:     1500 * time.Millisecond,
	Type:      90 * time.Millisecond,
	Delete:    45 * time.Millisecond,
	HoldFull:  1800 * time.Millisecond,
	HoldEmpty: 400 * time.Millisecond,
}

// Scale returns a copy of t with every delay multiplied by f.
func (t Timing) Scale(f float64) Timing {
	scale := func(d time.Duration) time.Duration { return time.Duration(float64(d) * f) }
	return Timing{
		Start:     scale(t.Start),
		Type:      scale(t.Type),
		Delete:    scale(t.Delete),
		HoldFull:  scale(t.HoldFull),
		HoldEmpty: scale(t.HoldEmpty),
	}
}

// Step advances s by one character and returns the new state, the text to
// display and how long to wait before the next step.
//
// phrases must be non-empty. An out of range PhraseIndex is wrapped and an
// out of range CharIndex is clamped, so any State is a valid input.
func Step(phrases []string, s State, t Timing) (State, string, time.Duration) {
	if len(phrases) == 0 {
		return s, "", 0
	}
	s.PhraseIndex = wrap(s.PhraseIndex, len(phrases))
	current := []rune(phrases[s.PhraseIndex])
	n := len(current)

	var delay time.Duration
	if s.Phase == Deleting {
		s.CharIndex = min(max(s.CharIndex-1, 0), n)
		delay = t.Delete
	} else {
		s.CharIndex = min(max(s.CharIndex+1, 0), n)
		delay = t.Type
	}
	text := string(current[:s.CharIndex])

	switch {
	case s.Phase == Typing && s.CharIndex == n:
		s.Phase = Deleting
		delay = t.HoldFull
	case s.Phase == Deleting && s.CharIndex == 0:
		s.Phase = Typing
		s.PhraseIndex = (s.PhraseIndex + 1) % len(phrases)
		delay = t.HoldEmpty
	}
	return s, text, delay
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Sink receives the text produced by each step.
type Sink interface {
	SetText(text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string)

func (f SinkFunc) SetText(text string) { f(text) }

// attachable is implemented by sinks that can go away underneath the
// animator, such as a closed connection.
type attachable interface {
	Attached() bool
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Clock schedules on the wall clock.
type Clock struct{}

func (Clock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures an Animator.
type Option func(*Animator)

// WithScheduler replaces the wall clock.
func WithScheduler(s Scheduler) Option {
	return func(a *Animator) { a.scheduler = s }
}

// WithTiming replaces DefaultTiming.
func WithTiming(t Timing) Option {
	return func(a *Animator) { a.timing = t }
}

// Animator drives Step on a Scheduler and writes each frame to a Sink.
// Exactly one step is pending at any time until Dispose is called.
type Animator struct {
	phrases   []string
	sink      Sink
	scheduler Scheduler
	timing    Timing

	mu       sync.Mutex
	state    State
	timer    Timer
	started  bool
	disposed bool
}

// New returns an animator that is ready to Start. It fails with
// ErrNoPhrases if phrases is empty.
func New(phrases []string, sink Sink, opts ...Option) (*Animator, error) {
	if len(phrases) == 0 {
		return nil, ErrNoPhrases
	}
	a := &Animator{
		phrases:   append([]string(nil), phrases...),
		sink:      sink,
		scheduler: Clock{},
		timing:    DefaultTiming,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Start schedules the first step after Timing.Start. Calling it again, or
// after Dispose, does nothing.
func (a *Animator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started || a.disposed {
		return
	}
	a.started = true
	a.timer = a.scheduler.AfterFunc(a.timing.Start, a.step)
}

// Dispose cancels the pending step. No text is written after it returns,
// except by a step that was already running.
func (a *Animator) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	a.disposed = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Disposed reports whether the animator has stopped, either through
// Dispose or because its sink detached.
func (a *Animator) Disposed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.disposed
}

// State returns the current position in the cycle.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Animator) step() {
	if s, ok := a.sink.(attachable); ok && !s.Attached() {
		a.Dispose()
		return
	}

	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	next, text, delay := Step(a.phrases, a.state, a.timing)
	a.state = next
	a.mu.Unlock()

	a.sink.SetText(text)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	a.timer = a.scheduler.AfterFunc(delay, a.step)
}
