// Package coalesce collapses bursts of change notifications into at most one
// action per interval, firing on both the leading and the trailing edge.
package coalesce

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
	"git.home.luguber.info/inful/docsidebar/internal/metrics"
	"git.home.luguber.info/inful/docsidebar/internal/watch"
)

// DefaultExtension is the path suffix a notification needs to reach the throttle.
const DefaultExtension = ".md"

type state int

const (
	stateIdle state = iota
	statePending
)

// Coalescer is a two-state machine, Idle or Pending, around a single timer.
//
// A trigger fires the action immediately when at least interval has passed
// since the last run (always true when cold). Otherwise it replaces any
// pending schedule with one that fires at lastRun+interval, so a burst ends
// with exactly one trailing run.
//
// At most one action is in flight. A trigger that arrives while the action
// runs is remembered and rescheduled once the action returns.
type Coalescer struct {
	action   func()
	interval time.Duration
	ext      string
	clock    clockwork.Clock
	recorder metrics.Recorder

	mu         sync.Mutex
	state      state
	pendingAt  time.Time
	lastRun    time.Time
	timer      clockwork.Timer
	generation uint64
	running    bool
	rerun      bool
	stopped    bool
}

// Option customizes a Coalescer.
type Option func(*Coalescer)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clockwork.Clock) Option { return func(co *Coalescer) { co.clock = c } }

// WithRecorder reports fires, deferrals and ignored notifications.
func WithRecorder(r metrics.Recorder) Option { return func(co *Coalescer) { co.recorder = r } }

// WithExtension changes the path suffix that lets a notification through.
func WithExtension(ext string) Option { return func(co *Coalescer) { co.ext = ext } }

// New returns an idle Coalescer that runs action at most once per interval.
func New(action func(), interval time.Duration, opts ...Option) *Coalescer {
	c := &Coalescer{
		action:   action,
		interval: interval,
		ext:      DefaultExtension,
		clock:    clockwork.NewRealClock(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify implements watch.Handler. Only notifications for paths ending in
// the configured extension reach the throttle.
func (c *Coalescer) Notify(kind watch.EventKind, path string) {
	if !strings.HasSuffix(path, c.ext) {
		c.recorder.IncCoalescerIgnored()
		return
	}
	slog.Debug("Document change queued", logfields.EventKind(kind.String()), logfields.Path(path))
	c.Trigger()
}

// Trigger requests a run of the action, subject to throttling.
func (c *Coalescer) Trigger() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if c.running {
		c.rerun = true
		c.mu.Unlock()
		c.recorder.IncCoalescerDeferred()
		return
	}
	fireNow := c.scheduleLocked()
	c.mu.Unlock()
	if fireNow {
		c.run(metrics.EdgeLeading)
		return
	}
	c.recorder.IncCoalescerDeferred()
}

// scheduleLocked either claims the run slot for an immediate fire (returning
// true) or arms the trailing timer at lastRun+interval.
func (c *Coalescer) scheduleLocked() bool {
	now := c.clock.Now()
	elapsed := now.Sub(c.lastRun)
	c.cancelLocked()

	if c.lastRun.IsZero() || elapsed >= c.interval {
		c.lastRun = now
		c.running = true
		return true
	}

	wait := c.interval - elapsed
	gen := c.generation
	c.state = statePending
	c.pendingAt = now.Add(wait)
	c.timer = c.clock.AfterFunc(wait, func() { c.onTimer(gen) })
	return false
}

// Pending reports whether a trailing run is scheduled and when it is due.
// A trigger held back by an in-flight run is not scheduled until that run returns.
func (c *Coalescer) Pending() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != statePending {
		return time.Time{}, false
	}
	return c.pendingAt, true
}

// Stop cancels any pending run. Later triggers are ignored.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.cancelLocked()
}

func (c *Coalescer) onTimer(gen uint64) {
	c.mu.Lock()
	// A timer that was replaced or stopped after it had already fired must not run.
	if c.stopped || c.state != statePending || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.state = stateIdle
	c.timer = nil
	if c.running {
		c.rerun = true
		c.mu.Unlock()
		return
	}
	c.lastRun = c.clock.Now()
	c.running = true
	c.mu.Unlock()
	c.run(metrics.EdgeTrailing)
}

// run executes the action while holding the run slot, then replays a
// trigger that arrived in the meantime.
func (c *Coalescer) run(edge metrics.EdgeLabel) {
	for {
		c.fire(edge)

		c.mu.Lock()
		c.running = false
		if c.stopped || !c.rerun {
			c.mu.Unlock()
			return
		}
		c.rerun = false
		fireNow := c.scheduleLocked()
		c.mu.Unlock()
		if !fireNow {
			return
		}
		edge = metrics.EdgeTrailing
	}
}

// cancelLocked drops the pending schedule, if any, and returns to Idle.
func (c *Coalescer) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	c.state = stateIdle
	c.pendingAt = time.Time{}
}

func (c *Coalescer) fire(edge metrics.EdgeLabel) {
	slog.Debug("Reload triggered", logfields.Edge(string(edge)))
	c.recorder.IncCoalescerFire(edge)
	c.action()
}
