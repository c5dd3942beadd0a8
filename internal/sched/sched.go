// Package sched keeps track of the timers an effect has scheduled on the
// Bubble Tea event loop so they can be cancelled as a group.
//
// Timers are ordinary tea.Tick commands. When one elapses, its Msg travels
// through the program's Update like any other message and the owning
// component hands it to Accept. A message is accepted at most once, and only
// while its token is still pending: anything cancelled, closed or addressed
// to another registry is dropped.
package sched

import (
	"sort"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Internal ID management, so a timer is only accepted by the registry that
// scheduled it.
var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Token identifies one scheduled timer within a registry.
type Token uint64

// Msg is delivered to Update when a timer elapses.
type Msg struct {
	Owner int
	Token Token
}

type entry struct {
	due     time.Time
	payload any
}

// Registry is the per-instance set of pending timers.
type Registry struct {
	id      int
	next    Token
	pending map[Token]entry
	closed  bool
	now     func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces the wall clock used to stamp deadlines.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:      nextID(),
		pending: make(map[Token]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID returns the owner id stamped on every Msg of this registry.
func (r *Registry) ID() int {
	return r.id
}

// After schedules payload to be delivered after d. It returns nil when the
// registry is closed.
func (r *Registry) After(d time.Duration, payload any) tea.Cmd {
	if r.closed {
		return nil
	}
	if d < 0 {
		d = 0
	}
	r.next++
	tok := r.next
	r.pending[tok] = entry{due: r.now().Add(d), payload: payload}

	id := r.id
	return tea.Tick(d, func(time.Time) tea.Msg {
		return Msg{Owner: id, Token: tok}
	})
}

// Accept reports whether msg is a live timer of this registry and returns
// its payload. The timer is consumed.
func (r *Registry) Accept(msg tea.Msg) (any, bool) {
	m, ok := msg.(Msg)
	if !ok || m.Owner != r.id || r.closed {
		return nil, false
	}
	e, ok := r.pending[m.Token]
	if !ok {
		return nil, false
	}
	delete(r.pending, m.Token)
	return e.payload, true
}

// Owns reports whether msg was scheduled by this registry, live or not.
func (r *Registry) Owns(msg tea.Msg) bool {
	m, ok := msg.(Msg)
	return ok && m.Owner == r.id
}

// Cancel drops a single pending timer.
func (r *Registry) Cancel(tok Token) {
	delete(r.pending, tok)
}

// CancelFunc drops every pending timer whose payload matches and returns
// how many were dropped.
func (r *Registry) CancelFunc(match func(payload any) bool) int {
	n := 0
	for tok, e := range r.pending {
		if match(e.payload) {
			delete(r.pending, tok)
			n++
		}
	}
	return n
}

// CancelAll drops every pending timer.
func (r *Registry) CancelAll() int {
	n := len(r.pending)
	clear(r.pending)
	return n
}

// Close cancels everything and refuses further scheduling.
func (r *Registry) Close() {
	r.CancelAll()
	r.closed = true
}

// Closed reports whether Close has been called.
func (r *Registry) Closed() bool {
	return r.closed
}

// Len returns the number of pending timers.
func (r *Registry) Len() int {
	return len(r.pending)
}

// Next returns the earliest pending deadline.
func (r *Registry) Next() (time.Time, bool) {
	var (
		best  time.Time
		found bool
	)
	for _, e := range r.pending {
		if !found || e.due.Before(best) {
			best = e.due
			found = true
		}
	}
	return best, found
}

// Due returns the messages of the pending timers whose deadline is at or
// before t, earliest first. The timers stay pending until accepted.
func (r *Registry) Due(t time.Time) []Msg {
	type due struct {
		at  time.Time
		tok Token
	}
	var ds []due
	for tok, e := range r.pending {
		if !e.due.After(t) {
			ds = append(ds, due{at: e.due, tok: tok})
		}
	}
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].at.Equal(ds[j].at) {
			return ds[i].tok < ds[j].tok
		}
		return ds[i].at.Before(ds[j].at)
	})

	msgs := make([]Msg, len(ds))
	for i, d := range ds {
		msgs[i] = Msg{Owner: r.id, Token: d.tok}
	}
	return msgs
}
