package forecast

import (
	"errors"
	"fmt"
)

// ErrNonFinite reports NaN or Inf escaping a rollout step. It signals a
// broken model state, not bad input.
var ErrNonFinite = errors.New("non-finite value in forecast rollout")

// ErrSeasonalUnavailable reports that the seasonal capability could not
// be fitted. Callers degrade to the sequence model alone.
var ErrSeasonalUnavailable = errors.New("seasonal model unavailable")

// InsufficientDataError reports a history shorter than the trainable
// minimum. Recoverable by supplying more days.
type InsufficientDataError struct {
	Required int
	Supplied int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient history: need %d daily points, got %d", e.Required, e.Supplied)
}

// IsInsufficientData reports whether err wraps an InsufficientDataError.
func IsInsufficientData(err error) bool {
	var ide *InsufficientDataError
	return errors.As(err, &ide)
}
