package awsmock

import "context"

// Promise is the result of an SDK call started with Go.
type Promise[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs call on its own goroutine and returns a promise of its result.
func Go[T any](ctx context.Context, call func(context.Context) (T, error)) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}

	go func() {
		defer close(p.done)

		p.value, p.err = call(ctx)
	}()

	return p
}

func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the call returns or ctx ends.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then runs fn with the result once the call returns.
func (p *Promise[T]) Then(fn func(T, error)) {
	go func() {
		<-p.done
		fn(p.value, p.err)
	}()
}
