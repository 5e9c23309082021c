package machine

import "fmt"

// Barrier wraps body in the fault barrier a node declared with
// HandleExceptions(onException) requires: if body panics, the panic is
// recovered and converted into a Failure Transition routed to onException
// via Instance.Exception, instead of propagating out of Run.
//
// This is the Go shape of the original implementation's handle_exceptions
// decorator (state_machine/decorator/handle_exceptions.py), which wraps the
// node's body in a try/except and returns machine.exception(exit_to=...)
// on any caught exception. A node declared NoExceptions should be registered
// in the dispatch map without Barrier, so a panic in its body propagates out
// of Run uncaught, per SPEC_FULL.md §4.6.
func Barrier[S any](onException string, body Func[S]) Func[S] {
	return func(m *Instance[S]) (t Transition) {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				t = m.Exception(onException, err)
			}
		}()
		return body(m)
	}
}
