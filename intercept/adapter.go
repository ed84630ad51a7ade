package intercept

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/openkcm/sdkmock/internal/constants"
	"github.com/openkcm/sdkmock/internal/errs"
	"github.com/openkcm/sdkmock/internal/log"
	"github.com/openkcm/sdkmock/registry"
)

// Callback receives the outcome of a callback-style call.
type Callback = registry.Callback

// Option configures an Adapter.
type Option func(*Adapter)

func WithMetrics(m *Metrics) Option {
	return func(a *Adapter) {
		a.metrics = m
	}
}

// Adapter routes intercepted calls to the overrides held by a registry. It
// installs itself when an override is registered and uninstalls on ResetAll.
type Adapter struct {
	registry  *registry.Registry
	installed atomic.Bool
	metrics   *Metrics
}

func New(reg *registry.Registry, opts ...Option) *Adapter {
	a := &Adapter{registry: reg}

	for _, opt := range opts {
		opt(a)
	}

	reg.Subscribe(registry.Hooks{
		OnRegister: func(registry.Key) { a.Install() },
		OnReset:    a.Uninstall,
	})

	return a
}

func (a *Adapter) Registry() *registry.Registry {
	return a.registry
}

// Install routes calls through the registry. Installing twice is a no-op.
func (a *Adapter) Install() {
	a.installed.Store(true)
}

// Uninstall restores the original call path. It is safe when not installed.
func (a *Adapter) Uninstall() {
	a.installed.Store(false)
}

func (a *Adapter) Installed() bool {
	return a.installed.Load()
}

// Intercept resolves the override for req and runs it. complete is called
// exactly once when the override finishes, possibly on another goroutine. An
// operation without an override fails synchronously with an
// UnmockedOperationError and complete is never called.
func (a *Adapter) Intercept(ctx context.Context, req *Request, complete func(*Response)) error {
	if !a.Installed() {
		return ErrNotInstalled
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	ctx = log.InjectCall(ctx, req.Service, req.Operation, req.ID)

	c := newCall(req, func(resp *Response) {
		outcome := constants.OutcomeSuccess
		if resp.Error != nil {
			outcome = constants.OutcomeOverrideError
		}

		a.metrics.observe(req, outcome)
		complete(resp)
	})

	entry, ok := a.registry.Lookup(req.Service, req.Operation)
	if !ok {
		err := c.transition(ctx, eventNotFound)
		if err != nil {
			return errs.Wrap(ErrInvalidCallState, err)
		}

		a.metrics.observe(req, constants.OutcomeUnmocked)
		log.Warn(ctx, "no mock registered for operation")

		return &UnmockedOperationError{Service: req.Service, Operation: req.Operation}
	}

	for _, event := range []callEvent{eventFound, eventRun} {
		err := c.transition(ctx, event)
		if err != nil {
			return errs.Wrap(ErrInvalidCallState, err)
		}
	}

	log.Debug(ctx, "intercepted operation")

	data := entry.Invoke(ctx, req.Params, func(err error, data any) {
		c.finish(ctx, eventCallback, err, data)
	})
	if data != nil {
		c.finish(ctx, eventReturn, nil, data)
	}

	return nil
}

// Send is the callback-style observer of Intercept.
func (a *Adapter) Send(ctx context.Context, req *Request, cb Callback) error {
	return a.Intercept(ctx, req, func(resp *Response) {
		cb(resp.Error, resp.Data)
	})
}

// Promise is the promise-style observer of Intercept. Synchronous failures
// produce an already rejected promise.
func (a *Adapter) Promise(ctx context.Context, req *Request) *Promise {
	p := newPromise()

	err := a.Intercept(ctx, req, p.settle)
	if err != nil {
		p.settle(&Response{Request: req, Error: err})
	}

	return p
}
