package repositories

import (
	"context"
	"sync"
)

type commitHooksKey struct{}

type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

// WithCommitHooks returns a context collecting AfterCommit callbacks and a
// function that runs them in registration order. Callbacks of a
// transaction that rolls back are simply never run.
func WithCommitHooks(ctx context.Context) (context.Context, func()) {
	hooks := &commitHooks{}
	run := func() {
		hooks.mu.Lock()
		fns := hooks.fns
		hooks.fns = nil
		hooks.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
	return context.WithValue(ctx, commitHooksKey{}, hooks), run
}

// AfterCommit defers fn until the request transaction commits.
// Without a transaction in ctx, fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	hooks, ok := ctx.Value(commitHooksKey{}).(*commitHooks)
	if !ok {
		fn()
		return
	}
	hooks.mu.Lock()
	hooks.fns = append(hooks.fns, fn)
	hooks.mu.Unlock()
}
