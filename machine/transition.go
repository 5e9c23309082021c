package machine

// Transition is the value every node returns: the Result of the node's own
// work, paired with the node that execution should move to next.
//
// An Exit is the special case that marks machine termination; it names no
// next node. Use Exit to build one explicitly, or call the instance's
// ExitSuccess helper from a terminal node body. A Transition built by
// NewTransition is never an Exit, even when next is empty.
type Transition struct {
	result Result
	next   string
	exit   bool
}

// NewTransition builds a Transition pointing at next. Machine internals use
// this; node bodies should prefer the instance helpers (Success, Failure,
// Exception) documented in instance.go, which also validate that next names
// a real node.
func NewTransition(result Result, next string) Transition {
	return Transition{result: result, next: next}
}

// Exit builds the terminal Transition: it carries result but names no next
// node, and it is only legal as the return value of a node whose metadata
// declares it terminal (len(Exits()) == 0).
func Exit(result Result) Transition {
	return Transition{result: result, exit: true}
}

// Result returns the Result this Transition carries.
func (t Transition) Result() Result {
	return t.result
}

// Next returns the name of the node execution should continue at. It is the
// empty string for an Exit transition.
func (t Transition) Next() string {
	return t.next
}

// IsExit reports whether this Transition terminates the machine.
func (t Transition) IsExit() bool {
	return t.exit
}
