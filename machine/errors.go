package machine

import "fmt"

// Control-plane errors abort machine registration or execution; they are
// never reported as Failure Results and never flow down a declared edge.
// The taxonomy follows the original implementation's exception hierarchy
// (see DESIGN.md for the names it leaves out) so that every invariant in
// SPEC_FULL.md §3 has exactly one error type it fails with.
type (
	// MissingOverviewError is raised when a node or machine has no overview
	// text registered.
	MissingOverviewError struct{ Subject string }

	// ReservedNameError is raised when a node's name collides with a name
	// reserved by the machine base (see ReservedNames), or with a node
	// already registered on the same Definition.
	ReservedNameError struct{ Name string }

	// NoEntryNodeError is raised when a machine has zero entry nodes.
	NoEntryNodeError struct{ Machine string }

	// MultipleEntryNodeError is raised when a machine has more than one
	// entry node.
	MultipleEntryNodeError struct {
		Machine string
		Names   []string
	}

	// NoTerminalNodeError is raised when a machine has zero terminal nodes.
	NoTerminalNodeError struct{ Machine string }

	// UndefinedNodeError is raised when a node's exits reference a name with
	// no corresponding registered node.
	UndefinedNodeError struct {
		Machine string
		From    string
		To      string
	}

	// UnreachableNodeError is raised when a non-entry node is not named in
	// any other node's exits.
	UnreachableNodeError struct {
		Machine string
		Node    string
	}

	// NotTerminalNodeError is raised either at validation time, when a node
	// marked terminal declares a non-empty exit set, or at execution time,
	// when a non-terminal node returns Exit.
	NotTerminalNodeError struct {
		Machine string
		Node    string
	}

	// NoExceptionHandlingError is raised when a node declares neither
	// HandleExceptions nor NoExceptions.
	NoExceptionHandlingError struct {
		Machine string
		Node    string
	}

	// IllegalTransitionError is raised, at validation time, when an
	// exception handler's target is not in the node's unhappy_paths, or, at
	// execution time, when: a transition targets a node outside the current
	// node's exits; a Success travels an unhappy edge; or a Failure travels
	// a happy edge.
	IllegalTransitionError struct {
		Machine string
		From    string
		To      string
		Reason  string
	}
)

func (e *MissingOverviewError) Error() string {
	return fmt.Sprintf("missing overview: %s", e.Subject)
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("%q is a reserved or already registered name and cannot be used as a node name", e.Name)
}

func (e *NoEntryNodeError) Error() string {
	return fmt.Sprintf("no entry node defined for %s", e.Machine)
}

func (e *MultipleEntryNodeError) Error() string {
	return fmt.Sprintf("more than one entry node defined for %s: %v", e.Machine, e.Names)
}

func (e *NoTerminalNodeError) Error() string {
	return fmt.Sprintf("no terminal node defined for %s", e.Machine)
}

func (e *UndefinedNodeError) Error() string {
	return fmt.Sprintf("%s.%s references undefined node %q", e.Machine, e.From, e.To)
}

func (e *UnreachableNodeError) Error() string {
	return fmt.Sprintf("unreachable node: %s.%s", e.Machine, e.Node)
}

func (e *NotTerminalNodeError) Error() string {
	return fmt.Sprintf("%s.%s is not terminal", e.Machine, e.Node)
}

func (e *NoExceptionHandlingError) Error() string {
	return fmt.Sprintf("%s.%s has neither HandleExceptions nor NoExceptions", e.Machine, e.Node)
}

func (e *IllegalTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("%s.%s: illegal transition: %s", e.Machine, e.From, e.Reason)
	}
	return fmt.Sprintf("%s: %s -> %s illegal: %s", e.Machine, e.From, e.To, e.Reason)
}
