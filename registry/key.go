package registry

import "strings"

// Key identifies one operation of one service. Use NewKey to build it.
type Key struct {
	Service string
	Method  string
}

// NewKey normalizes service and method to lower case.
func NewKey(service, method string) Key {
	return Key{
		Service: strings.ToLower(service),
		Method:  strings.ToLower(method),
	}
}

func (k Key) String() string {
	return k.Service + "_" + k.Method
}
