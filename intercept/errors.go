package intercept

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmockedOperation is matched by every UnmockedOperationError.
	ErrUnmockedOperation = errors.New("no mock registered for operation")

	// ErrNotInstalled is returned by Intercept while the adapter is uninstalled.
	ErrNotInstalled = errors.New("interception adapter is not installed")

	ErrInvalidCallState = errors.New("invalid call state transition")
)

// UnmockedOperationError names the operation that was called without a mock.
type UnmockedOperationError struct {
	Service   string
	Operation string
}

func (e *UnmockedOperationError) Error() string {
	return fmt.Sprintf("%v: %s.%s", ErrUnmockedOperation, e.Service, e.Operation)
}

func (e *UnmockedOperationError) Is(target error) bool {
	return target == ErrUnmockedOperation
}
