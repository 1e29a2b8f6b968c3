package urinfo

import (
	"errors"
	"fmt"
)

// Sentinel errors for resolution. Callers should only rely on ErrUnresolvable; the
// more specific errors exist for logging.
var (
	// ErrUnresolvable is wrapped by every resolution failure.
	ErrUnresolvable = errors.New("uri could not be resolved")

	// ErrTransport is returned for connection errors, DNS failures and timeouts.
	ErrTransport = errors.New("transport error")

	// ErrNoResponse is returned when the upstream answered without a usable response.
	ErrNoResponse = errors.New("no usable response")
)

func failure(step string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnresolvable, step, cause)
}
