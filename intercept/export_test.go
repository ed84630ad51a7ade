package intercept

import "context"

// CallStateAfter drives a fresh call through events and returns the final
// state, for state machine tests.
func CallStateAfter(ctx context.Context, events ...string) (string, []error) {
	c := newCall(NewRequest("S3", "getObject", nil), func(*Response) {})

	errs := make([]error, 0, len(events))
	for _, e := range events {
		errs = append(errs, c.transition(ctx, callEvent(e)))
	}

	return string(c.state()), errs
}
