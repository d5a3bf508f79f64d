package board

import (
	"fmt"
	"time"

	"kanbo/internal/store"
)

// Notifier delivers transient user-visible notices. Notices never halt
// the interaction flow; implementations decide how (and whether) to show
// them.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(string)

func (f NotifierFunc) Notify(message string) { f(message) }

// ConfirmFunc answers a yes/no question on behalf of the user. A nil
// ConfirmFunc declines everything, which keeps destructive paths safe in
// non-interactive use.
type ConfirmFunc func(message string) bool

// Saver persists the whole tree after a mutation. store.Store satisfies
// this; tests swap in an in-memory implementation.
type Saver interface {
	Save(db *store.DB) error
}

// Engine owns the board tree and implements every mutation over it.
// All operations run synchronously; the engine is single-threaded by
// contract (one user interaction at a time drives it).
type Engine struct {
	db    *store.DB
	ids   store.Store
	saver Saver

	confirm   ConfirmFunc
	notifier  Notifier
	available bool

	now func() time.Time
}

type Options struct {
	Confirm ConfirmFunc
	Notify  Notifier
	// Now overrides the clock (tests).
	Now func() time.Time
}

// Open probes the storage medium once, loads persisted state, and
// returns a ready engine. Storage problems degrade to an empty in-memory
// store plus a single notice; Open itself never fails.
func Open(s store.Store, opts Options) *Engine {
	e := New(store.NewDB(), s, opts)
	e.available = s.Probe()
	if !e.available {
		e.notifyf("Local storage is unavailable; changes will be kept in memory only. Export your boards to save them.")
		return e
	}
	db, err := s.Load()
	if err != nil {
		e.available = false
		e.notifyf("Local storage is unavailable; changes will be kept in memory only. Export your boards to save them.")
		return e
	}
	e.db = db
	return e
}

// New wraps an existing tree without touching storage. The saver may be
// nil, in which case the engine runs purely in memory.
func New(db *store.DB, saver Saver, opts Options) *Engine {
	if db == nil {
		db = store.NewDB()
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Engine{
		db:        db,
		saver:     saver,
		confirm:   opts.Confirm,
		notifier:  opts.Notify,
		available: saver != nil,
		now:       now,
	}
}

// DB exposes the underlying tree for read paths (rendering, export).
func (e *Engine) DB() *store.DB { return e.db }

// Available reports whether the startup storage probe succeeded.
func (e *Engine) Available() bool { return e.available }

// Reset drops all in-memory state and persists the empty tree.
func (e *Engine) Reset() {
	e.db = store.NewDB()
	e.persist()
}

// SetConfirm swaps the confirmation capability (interactive front ends
// wire a prompt here).
func (e *Engine) SetConfirm(fn ConfirmFunc) { e.confirm = fn }

// SetNotifier swaps the notice sink.
func (e *Engine) SetNotifier(n Notifier) { e.notifier = n }

// Confirm asks the injected capability; without one, the answer is no.
func (e *Engine) Confirm(message string) bool {
	if e.confirm == nil {
		return false
	}
	return e.confirm(message)
}

func (e *Engine) notifyf(format string, args ...any) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(fmt.Sprintf(format, args...))
}

// Persist writes the whole tree through the saver. Every mutation calls
// this as its final step; the periodic autosave tick calls it directly.
// Persistence failure never rolls back or blocks the in-memory mutation:
// the session state is the source of truth, storage is best-effort
// durability.
func (e *Engine) Persist() {
	if e.saver == nil {
		return
	}
	if !e.available {
		// Degraded mode: the one-time startup notice already fired.
		return
	}
	if err := e.saver.Save(e.db); err != nil {
		e.notifyf("Saving failed (%v). Export your boards to avoid losing work.", err)
	}
}

func (e *Engine) persist() { e.Persist() }
