package intercept

import (
	"context"
	"sync"
)

// Promise settles once with the Response of an intercepted call.
type Promise struct {
	once sync.Once
	done chan struct{}
	resp *Response
}

func newPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

func (p *Promise) settle(resp *Response) {
	p.once.Do(func() {
		p.resp = resp
		close(p.done)
	})
}

// Done is closed when the promise settles.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the promise settles or ctx ends.
func (p *Promise) Await(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.resp.Data, p.resp.Error
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Response returns the settled response, or nil while pending.
func (p *Promise) Response() *Response {
	select {
	case <-p.done:
		return p.resp
	default:
		return nil
	}
}
