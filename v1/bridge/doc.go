// Package bridge isolates the coupling between the host engine's
// synchronous call contract and the asynchronous provider operations.
//
// The host engine invokes every operation on its own thread and expects a
// result before returning. Provider requests are network-bound and run
// with contexts, cancellation, and timeouts. The Bridge is the single
// point where the two worlds meet:
//
//	b := bridge.New()
//	err := b.Run(ctx, func(ctx context.Context) error {
//	    // network-bound work
//	    return nil
//	})
//
// Run blocks until the task resolves. The task executes under a context
// bound both to the caller's ctx and to the bridge's shared lifetime
// context, which is created lazily on first use and cancelled only by
// Close at session teardown.
//
// A panic inside a task is recovered and surfaced as ErrTaskPanic: a
// misbehaving task must never crash the host engine.
package bridge
