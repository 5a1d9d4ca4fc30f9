package highlight

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrRegexCompilation is matched by every *RegexError.
	ErrRegexCompilation = errors.New("invalid regular expression")

	// ErrCancelled is returned when the context is done mid-scan.
	ErrCancelled = errors.New("highlight extraction cancelled")
)

// RegexError reports a pattern that failed to compile.
type RegexError struct {
	Pattern string
	Err     error
}

// Error implements error.
func (e *RegexError) Error() string {
	return fmt.Sprintf("invalid regular expression %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the compiler error.
func (e *RegexError) Unwrap() error {
	return e.Err
}

// Is makes every RegexError match ErrRegexCompilation.
func (e *RegexError) Is(target error) bool {
	return target == ErrRegexCompilation
}

// checkCancelled returns an error wrapping both ErrCancelled and the
// context's error once ctx is done.
func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	default:
		return nil
	}
}
