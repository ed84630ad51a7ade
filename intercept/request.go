package intercept

import "github.com/google/uuid"

// Transport describes where the intercepted call would have gone.
type Transport struct {
	SDK    string
	Region string
}

// Request is the in-flight call as seen by the adapter.
type Request struct {
	ID        string
	Service   string
	Operation string
	Params    any
	Transport Transport
}

func NewRequest(service, operation string, params any) *Request {
	return &Request{
		ID:        uuid.NewString(),
		Service:   service,
		Operation: operation,
		Params:    params,
	}
}

// Response is the normalized completion of a Request. Retries and redirects
// never happen, so their counters are always zero.
type Response struct {
	Request       *Request
	Data          any
	Error         error
	RetryCount    int
	RedirectCount int
}
