package errs

import "fmt"

// Wrap chains ext under base so both match with errors.Is. A nil ext yields base.
func Wrap(base, ext error) error {
	if ext == nil {
		return base
	}

	return fmt.Errorf("%w: %w", base, ext)
}

// Wrapf annotates base with a formatted detail message.
func Wrapf(base error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}
