package registry

import (
	"slices"
	"strings"
	"sync"
)

// Hooks observe the registry lifecycle. They run after the registry lock is
// released.
type Hooks struct {
	OnRegister func(Key)
	OnReset    func()
}

// Option configures a Registry.
type Option func(*Registry)

// WithHooks subscribes hooks at construction time.
func WithHooks(h Hooks) Option {
	return func(r *Registry) {
		r.hooks = append(r.hooks, h)
	}
}

// Registry maps keys to at most one live Entry.
type Registry struct {
	mu      sync.RWMutex
	entries map[Key]*Entry
	hooks   []Hooks
}

var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

func New(opts ...Option) *Registry {
	r := &Registry{entries: make(map[Key]*Entry)}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Subscribe adds lifecycle hooks.
func (r *Registry) Subscribe(h Hooks) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hooks = append(r.hooks, h)
}

// Register binds fn to (service, method). An existing entry for the same key is
// revoked and replaced, so the returned entry always starts with no calls.
func (r *Registry) Register(service, method string, fn OverrideFunc) *Entry {
	key := NewKey(service, method)
	entry := newEntry(r, key, fn)

	r.mu.Lock()
	prev := r.entries[key]
	r.entries[key] = entry
	hooks := slices.Clone(r.hooks)
	r.mu.Unlock()

	if prev != nil {
		prev.markRevoked()
	}

	for _, h := range hooks {
		if h.OnRegister != nil {
			h.OnRegister(key)
		}
	}

	return entry
}

// Lookup returns the live entry for (service, method).
func (r *Registry) Lookup(service, method string) (*Entry, bool) {
	return r.Get(NewKey(service, method))
}

// Get is Lookup for an already normalized key.
func (r *Registry) Get(key Key) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[key]

	return entry, ok
}

// Revoke removes the entry for (service, method) if there is one.
func (r *Registry) Revoke(service, method string) {
	key := NewKey(service, method)

	r.mu.Lock()
	entry, ok := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()

	if ok {
		entry.markRevoked()
	}
}

// ResetAll drops every entry and notifies OnReset hooks.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[Key]*Entry)
	hooks := slices.Clone(r.hooks)
	r.mu.Unlock()

	for _, entry := range entries {
		entry.markRevoked()
	}

	for _, h := range hooks {
		if h.OnReset != nil {
			h.OnReset()
		}
	}
}

// Keys returns the registered keys sorted by their string form.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	keys := make([]Key, 0, len(r.entries))

	for key := range r.entries {
		keys = append(keys, key)
	}
	r.mu.RUnlock()

	slices.SortFunc(keys, func(a, b Key) int {
		return strings.Compare(a.String(), b.String())
	})

	return keys
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

func (r *Registry) revokeEntry(e *Entry) {
	r.mu.Lock()
	if r.entries[e.key] == e {
		delete(r.entries, e.key)
	}
	r.mu.Unlock()

	e.markRevoked()
}
