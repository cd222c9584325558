package controller

import (
	"context"
	"sync"
	"time"

	"tuninggarage/internal/api"
)

const defaultActionTTL = 2500 * time.Millisecond

// base carries what every controller needs: a lifetime context cancelled on
// Close, a mutex over the state, a monotonic sequence counter so late
// responses from superseded requests are discarded, and a transient action
// message that expires on its own.
type base struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	seq       uint64
	action    string
	actionGen uint64
	actionTTL time.Duration
}

func newBase() base {
	ctx, cancel := context.WithCancel(context.Background())
	return base{ctx: ctx, cancel: cancel, actionTTL: defaultActionTTL}
}

// Close cancels any in-flight request issued by this controller.
func (b *base) Close() {
	b.cancel()
}

// begin registers a new request. Caller must hold mu.
func (b *base) begin() uint64 {
	b.seq++
	return b.seq
}

// current reports whether seq is still the latest issued request.
// Caller must hold mu.
func (b *base) current(seq uint64) bool {
	return seq == b.seq
}

// setAction publishes a one-shot notification that clears itself after the
// TTL unless a newer one replaced it. Caller must hold mu.
func (b *base) setAction(msg string) {
	b.actionGen++
	gen := b.actionGen
	b.action = msg
	time.AfterFunc(b.actionTTL, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.actionGen == gen {
			b.action = ""
		}
	})
}

// ActionMessage returns the pending one-shot notification, or "".
func (b *base) ActionMessage() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.action
}

// failureMessage maps an API error to user-facing text: envelope failures
// carry the backend's own message, everything else is a connection error.
func failureMessage(err error) string {
	if api.IsDomain(err) {
		return err.Error()
	}
	return "Error de conexión: " + err.Error()
}

// finishLoad maps a completed load onto the next state. A failed refresh
// keeps previously shown content; the error only replaces the screen when
// nothing was shown yet.
func finishLoad[T any](prev State[T], payload T, empty bool, emptyMsg string, err error) State[T] {
	if err != nil {
		if prev.Phase == PhaseSuccess {
			return prev
		}
		return Errored[T](failureMessage(err))
	}
	if empty {
		return Empty[T](emptyMsg)
	}
	return Success(payload)
}

// beginLoad moves to Loading unless content is already on screen, in which
// case the refresh happens behind the existing payload.
func beginLoad[T any](prev State[T]) State[T] {
	if prev.Phase == PhaseSuccess {
		return prev
	}
	return Loading[T]()
}
