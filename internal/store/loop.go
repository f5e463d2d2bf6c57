package store

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"go-file-manager/internal/model"
)

// Loop owns a Store and runs every operation on it from a single goroutine,
// one at a time, in submission order.
type Loop struct {
	store *Store
	ops   chan func(*Store)
	done  chan struct{}
}

func NewLoop(store *Store) *Loop {
	return &Loop{
		store: store,
		ops:   make(chan func(*Store), 64),
		done:  make(chan struct{}),
	}
}

// Run drains operations until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return
		case op := <-l.ops:
			l.apply(op)
		}
	}
}

func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Do submits fn and waits for it to finish. Once accepted, fn runs even if
// ctx is cancelled while waiting.
func (l *Loop) Do(ctx context.Context, fn func(*Store)) error {
	finished := make(chan struct{})
	var opErr error

	wrapped := func(s *Store) {
		defer close(finished)
		defer func() {
			if recovered := recover(); recovered != nil {
				opErr = fmt.Errorf("store operation panicked: %v", recovered)
				slog.Error("store operation panicked", "error", opErr, "stack", string(debug.Stack()))
			}
		}()
		fn(s)
	}

	if l.stopped() {
		return model.ErrLoopStopped
	}

	select {
	case l.ops <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return model.ErrLoopStopped
	}

	select {
	case <-finished:
		return opErr
	case <-l.done:
		select {
		case <-finished:
			return opErr
		default:
			return model.ErrLoopStopped
		}
	}
}

// Post queues fn without waiting for it. It reports false when the loop has
// already stopped.
func (l *Loop) Post(fn func(*Store)) bool {
	if l.stopped() {
		return false
	}

	select {
	case l.ops <- fn:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) stopped() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

func (l *Loop) apply(op func(*Store)) {
	defer func() {
		if recovered := recover(); recovered != nil {
			slog.Error("store operation panicked", "error", fmt.Sprintf("%v", recovered), "stack", string(debug.Stack()))
		}
	}()

	op(l.store)
}
