package registry

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

const spyMethod = "Invoke"

// Callback completes an override asynchronously.
type Callback func(err error, data any)

// OverrideFunc stands in for one SDK operation. A non-nil return value completes
// the call with that value as data. A nil return leaves completion to done.
type OverrideFunc func(ctx context.Context, params any, done Callback) any

// Entry is the live override for a Key.
type Entry struct {
	key      Key
	registry *Registry

	mu      sync.Mutex
	fn      OverrideFunc
	spy     *mock.Mock
	revoked bool
}

func newEntry(reg *Registry, key Key, fn OverrideFunc) *Entry {
	spy := &mock.Mock{}
	spy.On(spyMethod, mock.Anything).Return()

	return &Entry{
		key:      key,
		registry: reg,
		fn:       fn,
		spy:      spy,
	}
}

// Key returns the normalized key of the entry.
func (e *Entry) Key() Key {
	return e.key
}

// Calls replaces the override function.
func (e *Entry) Calls(fn OverrideFunc) *Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.fn = fn

	return e
}

// Returns makes the entry complete every call with data and no error.
func (e *Entry) Returns(data any) *Entry {
	return e.Calls(respond(nil, data))
}

// ReturnsError makes the entry fail every call with err.
func (e *Entry) ReturnsError(err error) *Entry {
	return e.Calls(respond(err, nil))
}

// Invoke records the call and runs the bound override. An entry without an
// override completes immediately with no data and no error.
func (e *Entry) Invoke(ctx context.Context, params any, done Callback) any {
	e.mu.Lock()
	e.spy.MethodCalled(spyMethod, params)
	fn := e.fn
	e.mu.Unlock()

	if fn == nil {
		done(nil, nil)
		return nil
	}

	return fn(ctx, params, done)
}

// CallCount returns how many times the entry has been invoked.
func (e *Entry) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.spy.Calls)
}

func (e *Entry) Called() bool {
	return e.CallCount() > 0
}

func (e *Entry) CalledOnce() bool {
	return e.CallCount() == 1
}

// LastParams returns the params of the most recent call, or nil when the entry
// was never invoked.
func (e *Entry) LastParams() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.spy.Calls) == 0 {
		return nil
	}

	return e.spy.Calls[len(e.spy.Calls)-1].Arguments.Get(0)
}

// AssertCalled asserts that the entry was invoked with params.
func (e *Entry) AssertCalled(t mock.TestingT, params any) bool {
	return e.spy.AssertCalled(t, spyMethod, params)
}

// AssertNumberOfCalls asserts that the entry was invoked exactly n times.
func (e *Entry) AssertNumberOfCalls(t mock.TestingT, n int) bool {
	return e.spy.AssertNumberOfCalls(t, spyMethod, n)
}

// Revoke removes the entry from its registry. It does nothing when the entry
// has already been replaced or removed.
func (e *Entry) Revoke() {
	e.registry.revokeEntry(e)
}

func (e *Entry) Revoked() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.revoked
}

func (e *Entry) markRevoked() {
	e.mu.Lock()
	e.revoked = true
	e.mu.Unlock()
}

func respond(err error, data any) OverrideFunc {
	return func(_ context.Context, _ any, done Callback) any {
		done(err, data)
		return nil
	}
}
