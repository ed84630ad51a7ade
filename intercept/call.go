package intercept

import (
	"context"
	"log/slog"

	"github.com/looplab/fsm"

	"github.com/openkcm/sdkmock/internal/log"
)

type callState string

const (
	stateInvoked   callState = "invoked"
	stateFound     callState = "found"
	stateFailed    callState = "failed"
	stateRunning   callState = "running"
	stateCompleted callState = "completed"
)

type callEvent string

const (
	eventFound    callEvent = "lookup_found"
	eventNotFound callEvent = "lookup_not_found"
	eventRun      callEvent = "run"
	eventReturn   callEvent = "sync_return"
	eventCallback callEvent = "explicit_callback"
)

func convertEvent(event callEvent, src []callState, dst callState) fsm.EventDesc {
	states := make([]string, len(src))
	for i, s := range src {
		states[i] = string(s)
	}

	return fsm.EventDesc{Name: string(event), Src: states, Dst: string(dst)}
}

// call tracks one interception. Only the first completion event reaches the
// observer.
type call struct {
	req      *Request
	machine  *fsm.FSM
	observer func(*Response)
}

func newCall(req *Request, observer func(*Response)) *call {
	machine := fsm.NewFSM(
		string(stateInvoked),
		fsm.Events{
			convertEvent(eventFound, []callState{stateInvoked}, stateFound),
			convertEvent(eventNotFound, []callState{stateInvoked}, stateFailed),
			convertEvent(eventRun, []callState{stateFound}, stateRunning),
			convertEvent(eventReturn, []callState{stateRunning}, stateCompleted),
			convertEvent(eventCallback, []callState{stateRunning}, stateCompleted),
		},
		fsm.Callbacks{},
	)

	return &call{req: req, machine: machine, observer: observer}
}

// transition ignores cancellation of ctx. A call that started must still
// complete after its caller's context is done.
func (c *call) transition(ctx context.Context, event callEvent) error {
	return c.machine.Event(context.WithoutCancel(ctx), string(event))
}

func (c *call) state() callState {
	return callState(c.machine.Current())
}

// finish completes the call. It reports false when the call was already
// completed.
func (c *call) finish(ctx context.Context, event callEvent, err error, data any) bool {
	if transitionErr := c.transition(ctx, event); transitionErr != nil {
		log.Debug(ctx, "dropping completion of a finished call",
			slog.String("event", string(event)),
			log.ErrorAttr(transitionErr),
		)

		return false
	}

	c.observer(&Response{
		Request: c.req,
		Data:    data,
		Error:   err,
	})

	return true
}
