package constants

// Outcome labels how an intercepted call ended.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeOverrideError Outcome = "override_error"
	OutcomeUnmocked      Outcome = "unmocked"
)

func (o Outcome) String() string {
	return string(o)
}
