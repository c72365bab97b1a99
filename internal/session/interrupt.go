package session

import (
	"os"
	"sync/atomic"
)

// Interrupt bridges an asynchronous cancellation signal into the session
// loop. The signal path only calls Raise, which does no blocking work: it
// either sets the requested flag or, when a request is already outstanding
// (or the session is blocked on human input), terminates the process
// immediately. The loop consumes the flag at its idle points.
type Interrupt struct {
	requested atomic.Bool
	engaged   atomic.Bool
	exit      func(code int)
}

// NewInterrupt builds a bridge. exit defaults to os.Exit; tests inject a
// stub.
func NewInterrupt(exit func(code int)) *Interrupt {
	if exit == nil {
		exit = os.Exit
	}
	return &Interrupt{exit: exit}
}

// Raise records a cancellation request. Safe to call from a signal-handling
// goroutine. A second request before the first is consumed, or any request
// while the session is already taking human input, escalates to abrupt
// process termination with status 130.
func (i *Interrupt) Raise() {
	if i.engaged.Load() || i.requested.Swap(true) {
		i.exit(130)
	}
}

// Consume reports and clears an outstanding request.
func (i *Interrupt) Consume() bool {
	return i.requested.Swap(false)
}

// SetEngaged marks the span during which the session is blocked reading
// human input, so a Ctrl+C there exits instead of queueing a second request.
func (i *Interrupt) SetEngaged(v bool) {
	i.engaged.Store(v)
}
