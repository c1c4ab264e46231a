package bridge

import (
	"context"
	"fmt"
	"sync"
)

// Task is a unit of network-bound work executed on the bridge.
type Task func(ctx context.Context) error

// Bridge executes asynchronous units of work on behalf of synchronous
// callers. It owns a single shared base context, created lazily on first
// use and torn down only by Close. Every network-bound operation in the
// module reaches the provider through Run.
type Bridge struct {
	mu      sync.Mutex
	baseCtx context.Context
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

// New returns an unstarted Bridge. The shared context is created on the
// first call to Run.
func New() *Bridge {
	return &Bridge{}
}

// Run executes the task to completion and blocks the calling goroutine
// until it resolves. The task runs on a bridge goroutine whose context is
// bound both to the caller's ctx and to the bridge lifetime. A panic
// inside the task is recovered and returned as ErrTaskPanic instead of
// crossing the synchronous boundary.
func (b *Bridge) Run(ctx context.Context, task Task) error {
	runCtx, cancel, err := b.admit(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer b.wg.Done()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%w: %v", ErrTaskPanic, r)
			}
		}()
		done <- task(runCtx)
	}()

	return <-done
}

// admit registers the caller with the bridge and derives the task context.
// The returned context is cancelled when either the caller's ctx or the
// bridge's shared context ends.
func (b *Bridge) admit(ctx context.Context) (context.Context, context.CancelFunc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, ErrBridgeClosed
	}
	if b.baseCtx == nil {
		b.baseCtx, b.cancel = context.WithCancel(context.Background())
	}

	runCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(b.baseCtx, cancel)
	b.wg.Add(1)

	return runCtx, func() {
		stop()
		cancel()
	}, nil
}

// Close cancels the shared context and waits for in-flight tasks to
// drain. Subsequent calls to Run return ErrBridgeClosed. Close is
// normally invoked once, at engine/session teardown.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	if b.cancel != nil {
		b.cancel()
	}
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}
