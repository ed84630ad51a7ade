package fixtures

import (
	"github.com/openkcm/sdkmock/registry"
	"github.com/openkcm/sdkmock/utils/ptr"
)

// OutputOf returns a constructor for a fresh *T.
func OutputOf[T any]() ptr.InitializerFunc[any] {
	return func() any {
		return ptr.Initializer[T]()
	}
}

// Catalog maps operations to constructors of their output type.
type Catalog struct {
	outputs map[registry.Key]ptr.InitializerFunc[any]
}

func NewCatalog() *Catalog {
	return &Catalog{outputs: make(map[registry.Key]ptr.InitializerFunc[any])}
}

// Add binds the output constructor of (service, operation). A later call for
// the same key replaces the constructor.
func (c *Catalog) Add(service, operation string, ctor ptr.InitializerFunc[any]) *Catalog {
	c.outputs[registry.NewKey(service, operation)] = ctor
	return c
}

// Has reports whether an output type is known for (service, operation).
func (c *Catalog) Has(service, operation string) bool {
	if c == nil {
		return false
	}

	_, ok := c.outputs[registry.NewKey(service, operation)]

	return ok
}

func (c *Catalog) newOutput(key registry.Key) (any, bool) {
	if c == nil {
		return nil, false
	}

	ctor, ok := c.outputs[key]
	if !ok {
		return nil, false
	}

	return ctor(), true
}
