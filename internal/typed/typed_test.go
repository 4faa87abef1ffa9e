package typed

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualScheduler queues callbacks until the test fires them.
type manualScheduler struct {
	pending []*manualTimer
	delays  []time.Duration
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{d: d, f: f}
	m.pending = append(m.pending, t)
	m.delays = append(m.delays, d)
	return t
}

// fire runs the oldest pending callback. It reports false when nothing
// live is queued.
func (m *manualScheduler) fire() bool {
	for len(m.pending) > 0 {
		t := m.pending[0]
		m.pending = m.pending[1:]
		if t.stopped {
			continue
		}
		t.stopped = true
		t.f()
		return true
	}
	return false
}

type recordingSink struct {
	frames   []string
	detached bool
}

func (r *recordingSink) SetText(text string) { r.frames = append(r.frames, text) }
func (r *recordingSink) Attached() bool      { return !r.detached }

func TestStepScenario(t *testing.T) {
	phrases := []string{"Go", "Zig"}
	want := []struct {
		text  string
		delay time.Duration
		index int
		phase Phase
	}{
		{"G", 90 * time.Millisecond, 0, Typing},
		{"Go", 1800 * time.Millisecond, 0, Deleting},
		{"G", 45 * time.Millisecond, 0, Deleting},
		{"", 400 * time.Millisecond, 1, Typing},
		{"Z", 90 * time.Millisecond, 1, Typing},
		{"Zi", 90 * time.Millisecond, 1, Typing},
		{"Zig", 1800 * time.Millisecond, 1, Deleting},
		{"Zi", 45 * time.Millisecond, 1, Deleting},
		{"Z", 45 * time.Millisecond, 1, Deleting},
		{"", 400 * time.Millisecond, 0, Typing},
		{"G", 90 * time.Millisecond, 0, Typing},
	}

	var s State
	for i, w := range want {
		var text string
		var delay time.Duration
		s, text, delay = Step(phrases, s, DefaultTiming)
		if text != w.text || delay != w.delay {
			t.Fatalf("step %d = (%q, %v), want (%q, %v)", i+1, text, delay, w.text, w.delay)
		}
		if s.PhraseIndex != w.index || s.Phase != w.phase {
			t.Fatalf("step %d state = %+v, want index %d phase %v", i+1, s, w.index, w.phase)
		}
	}
}

func TestStepCharIndexStaysInBounds(t *testing.T) {
	phrases := []string{"Web Developer", "", "héllo wörld", "中文"}
	var s State
	for i := 0; i < 2000; i++ {
		s, _, _ = Step(phrases, s, DefaultTiming)
		n := len([]rune(phrases[s.PhraseIndex]))
		if s.CharIndex < 0 || s.CharIndex > n {
			t.Fatalf("step %d: CharIndex %d outside [0, %d]", i, s.CharIndex, n)
		}
		if s.PhraseIndex < 0 || s.PhraseIndex >= len(phrases) {
			t.Fatalf("step %d: PhraseIndex %d out of range", i, s.PhraseIndex)
		}
	}
}

func TestStepTypesThenDeletes(t *testing.T) {
	phrases := []string{"Creative Coder", "x"}
	p := phrases[0]

	var s State
	var text string
	for i := 0; i < len(p); i++ {
		s, text, _ = Step(phrases, s, DefaultTiming)
	}
	if text != p {
		t.Fatalf("after %d typing steps text = %q, want %q", len(p), text, p)
	}
	if s.Phase != Deleting || s.CharIndex != len(p) {
		t.Fatalf("state after typing = %+v, want deleting at %d", s, len(p))
	}

	for i := 0; i < len(p); i++ {
		s, text, _ = Step(phrases, s, DefaultTiming)
	}
	if text != "" || s.CharIndex != 0 {
		t.Fatalf("after deleting text = %q, CharIndex = %d", text, s.CharIndex)
	}
	if s.Phase != Typing || s.PhraseIndex != 1 {
		t.Fatalf("state after deleting = %+v, want typing phrase 1", s)
	}
}

func TestStepCycleCloses(t *testing.T) {
	phrases := []string{"Web Developer", "UI/UX Enthusiast", "Front-End Engineer"}
	steps := 0
	for _, p := range phrases {
		steps += 2 * len(p)
	}

	var s State
	for i := 0; i < steps; i++ {
		s, _, _ = Step(phrases, s, DefaultTiming)
	}
	if s != (State{}) {
		t.Fatalf("after one full cycle state = %+v, want zero state", s)
	}
}

func TestStepSinglePhrase(t *testing.T) {
	phrases := []string{"Go"}
	var s State
	var got []string
	for i := 0; i < 8; i++ {
		var text string
		s, text, _ = Step(phrases, s, DefaultTiming)
		got = append(got, text)
		if s.PhraseIndex != 0 {
			t.Fatalf("step %d: PhraseIndex = %d, want 0", i, s.PhraseIndex)
		}
	}
	want := []string{"G", "Go", "G", "", "G", "Go", "G", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames = %q, want %q", got, want)
		}
	}
}

func TestStepRunes(t *testing.T) {
	phrases := []string{"né"}
	s, text, _ := Step(phrases, State{CharIndex: 1}, DefaultTiming)
	if text != "né" || s.Phase != Deleting {
		t.Fatalf("got %q in %v, want \"né\" deleting", text, s.Phase)
	}
}

func TestStepEmptyPhraseInList(t *testing.T) {
	phrases := []string{"", "a"}
	s, text, delay := Step(phrases, State{}, DefaultTiming)
	if text != "" || s.Phase != Deleting || delay != DefaultTiming.HoldFull {
		t.Fatalf("typing empty phrase = (%+v, %q, %v)", s, text, delay)
	}
	s, _, delay = Step(phrases, s, DefaultTiming)
	if s.Phase != Typing || s.PhraseIndex != 1 || delay != DefaultTiming.HoldEmpty {
		t.Fatalf("deleting empty phrase = (%+v, %v)", s, delay)
	}
}

func TestTimingScale(t *testing.T) {
	got := DefaultTiming.Scale(0.5)
	if got.Type != 45*time.Millisecond || got.HoldFull != 900*time.Millisecond {
		t.Fatalf("Scale(0.5) = %+v", got)
	}
}

func TestNewRejectsEmptyPhrases(t *testing.T) {
	sink := &recordingSink{}
	sched := &manualScheduler{}
	a, err := New(nil, sink, WithScheduler(sched))
	if !errors.Is(err, ErrNoPhrases) {
		t.Fatalf("New(nil) err = %v, want ErrNoPhrases", err)
	}
	if a != nil {
		t.Fatal("New(nil) returned an animator")
	}
	if len(sched.pending) != 0 || len(sink.frames) != 0 {
		t.Fatal("empty phrase list scheduled or wrote something")
	}
}

func TestAnimatorRunsOnScheduler(t *testing.T) {
	sink := &recordingSink{}
	sched := &manualScheduler{}
	a, err := New([]string{"Go", "Zig"}, sink, WithScheduler(sched))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(sched.pending) != 0 {
		t.Fatal("New scheduled a step before Start")
	}

	a.Start()
	a.Start()
	if len(sched.pending) != 1 {
		t.Fatalf("pending after Start = %d, want 1", len(sched.pending))
	}
	if sched.delays[0] != DefaultTiming.Start {
		t.Fatalf("first delay = %v, want %v", sched.delays[0], DefaultTiming.Start)
	}

	for i := 0; i < 5; i++ {
		if !sched.fire() {
			t.Fatalf("nothing pending at step %d", i)
		}
		if len(sched.pending) != 1 {
			t.Fatalf("pending after step %d = %d, want exactly 1", i, len(sched.pending))
		}
	}

	want := []string{"G", "Go", "G", "", "Z"}
	for i := range want {
		if sink.frames[i] != want[i] {
			t.Fatalf("frames = %q, want %q", sink.frames, want)
		}
	}
	wantDelays := []time.Duration{1500, 90, 1800, 45, 400, 90}
	for i, d := range wantDelays {
		if sched.delays[i] != d*time.Millisecond {
			t.Fatalf("delays = %v", sched.delays)
		}
	}
	if st := a.State(); st.PhraseIndex != 1 || st.CharIndex != 1 {
		t.Fatalf("State() = %+v", st)
	}
}

func TestAnimatorDispose(t *testing.T) {
	sink := &recordingSink{}
	sched := &manualScheduler{}
	a, err := New([]string{"Go"}, sink, WithScheduler(sched))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Start()
	sched.fire()

	a.Dispose()
	a.Dispose()
	if !a.Disposed() {
		t.Fatal("Disposed() = false after Dispose")
	}
	if sched.fire() {
		t.Fatal("a step ran after Dispose")
	}
	if len(sink.frames) != 1 {
		t.Fatalf("frames after Dispose = %q", sink.frames)
	}

	a.Start()
	if sched.fire() {
		t.Fatal("Start after Dispose scheduled a step")
	}
}

func TestAnimatorStopsWhenSinkDetaches(t *testing.T) {
	sink := &recordingSink{}
	sched := &manualScheduler{}
	a, err := New([]string{"Go"}, sink, WithScheduler(sched))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Start()
	sched.fire()
	sink.detached = true
	sched.fire()

	if len(sink.frames) != 1 {
		t.Fatalf("frames = %q, want one", sink.frames)
	}
	if !a.Disposed() {
		t.Fatal("animator still running with a detached sink")
	}
	if len(sched.pending) != 0 {
		t.Fatal("detached animator rescheduled")
	}
}

func TestAnimatorOnClock(t *testing.T) {
	var mu sync.Mutex
	var frames []string
	done := make(chan struct{})
	sink := SinkFunc(func(text string) {
		mu.Lock()
		defer mu.Unlock()
		frames = append(frames, text)
		if len(frames) == 4 {
			close(done)
		}
	})

	a, err := New([]string{"Go"}, sink, WithTiming(DefaultTiming.Scale(0.001)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Start()
	defer a.Dispose()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for frames")
	}
	a.Dispose()

	mu.Lock()
	defer mu.Unlock()
	want := []string{"G", "Go", "G", ""}
	for i := range want {
		if frames[i] != want[i] {
			t.Fatalf("frames = %q, want prefix %q", frames, want)
		}
	}
}
