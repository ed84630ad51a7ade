package awsmock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/openkcm/sdkmock/intercept"
	"github.com/openkcm/sdkmock/registry"
)

// Mocker pairs a registry with the adapter that serves it.
type Mocker struct {
	Registry *registry.Registry
	Adapter  *intercept.Adapter
}

// New creates a Mocker around reg. A nil reg gets a fresh registry.
func New(reg *registry.Registry, opts ...intercept.Option) *Mocker {
	if reg == nil {
		reg = registry.New()
	}

	return &Mocker{
		Registry: reg,
		Adapter:  intercept.New(reg, opts...),
	}
}

var defaultMocker = New(registry.Default())

// Default returns the Mocker behind the package level functions.
func Default() *Mocker {
	return defaultMocker
}

// Mock registers fn for (service, method) and returns the live entry. A nil fn
// completes with no output until the entry is configured with Returns.
func (m *Mocker) Mock(service, method string, fn registry.OverrideFunc) *registry.Entry {
	return m.Registry.Register(service, method, fn)
}

func (m *Mocker) Lookup(service, method string) (*registry.Entry, bool) {
	return m.Registry.Lookup(service, method)
}

// ResetAll drops every override and uninstalls the adapter.
func (m *Mocker) ResetAll() {
	m.Registry.ResetAll()
}

func (m *Mocker) Config(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
	return NewConfig(ctx, m.Adapter, optFns...)
}

func Mock(service, method string, fn registry.OverrideFunc) *registry.Entry {
	return defaultMocker.Mock(service, method, fn)
}

func Lookup(service, method string) (*registry.Entry, bool) {
	return defaultMocker.Lookup(service, method)
}

func ResetAll() {
	defaultMocker.ResetAll()
}

func Config(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
	return defaultMocker.Config(ctx, optFns...)
}
