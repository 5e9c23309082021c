package worker

import "fmt"

// PanicError wraps a non-error panic value recovered at the pool boundary,
// so a WorkItem's Outcome always carries a proper error regardless of what
// the panicking goroutine passed to panic().
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker: recovered panic: %v", e.Value)
}
