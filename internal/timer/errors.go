package timer

import "fmt"

// ValidationError reports a rejected settings change. The timer state is left untouched.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}
