package machine

import "time"

// Run executes the machine from its entry node until a node returns Exit,
// and returns the ordered Result log — one entry per node executed, with the
// Exit's own Result as the final entry.
//
// The algorithm is ported from the original implementation's
// AbstractMachine.execute (state_machine/abstract_machine.py): start at the
// entry node; call it; if it returns Exit, require the node declared no
// exits and stop; otherwise require the Transition's target is one of the
// current node's declared exits, and that Success only ever travels a happy
// edge while Failure only ever travels an unhappy edge.
//
// These edge-legality checks run in addition to — not instead of — the
// static Validate check that already ran at Definition construction time, so
// that a node computing its target dynamically at runtime still cannot
// escape its declared graph (SPEC_FULL.md §4.4). Per DESIGN.md's resolution
// of Open Question 2, they are always on; there is no release-mode switch to
// disable them.
//
// A panic escaping a node body wrapped with HandleExceptions is converted,
// by the wrapper machine.Barrier installs, into a Failure Transition routed
// to the declared on_exception node; it never reaches Run. A panic escaping
// a NoExceptions node propagates out of Run uncaught, exactly as the
// original implementation lets such exceptions propagate out of execute().
func Run[S any](m *Instance[S]) []Result {
	entry := m.def.EntryNode()
	m.currentNode = entry.Name

	machineStart := time.Now()
	m.logger.Info(m.def.Name() + " started")

	for {
		current, ok := m.def.Node(m.currentNode)
		if !ok {
			panic("machine: " + m.def.Name() + " has no node named " + m.currentNode)
		}

		nodeStart := time.Now()
		m.logger.Debug(m.def.QualifiedName(current.Name) + " started")
		transition := m.dispatch[current.Name](m)
		m.logger.Debug(m.def.QualifiedName(current.Name) + " completed runtime=" + time.Since(nodeStart).String())

		if transition.IsExit() {
			if len(current.Exits()) > 0 {
				panic(&NotTerminalNodeError{Machine: m.def.Name(), Node: current.Name})
			}
			m.results = append(m.results, transition.Result())
			break
		}

		next := transition.Next()
		checkEdgeLegality(m.def, current, next, transition.Result())

		m.results = append(m.results, transition.Result())
		m.currentNode = next
	}

	m.logger.Info(m.def.Name() + " completed runtime=" + time.Since(machineStart).String())

	return m.results
}

// checkEdgeLegality enforces the runtime edge checks of SPEC_FULL.md §4.4:
// the node a Transition names must be one of from's declared exits, and a
// Failure must travel an unhappy edge while a Success must travel a happy
// one.
func checkEdgeLegality(def *Definition, from NodeMetadata, to string, result Result) {
	if !contains(from.Exits(), to) {
		panic(&IllegalTransitionError{
			Machine: def.Name(),
			From:    from.Name,
			To:      to,
			Reason:  "not a declared exit of " + from.Name,
		})
	}
	if result.IsFailure() && !contains(from.UnhappyPaths, to) {
		panic(&IllegalTransitionError{
			Machine: def.Name(),
			From:    from.Name,
			To:      to,
			Reason:  "failure result sent down a happy path",
		})
	}
	if result.IsSuccess() && !contains(from.HappyPaths, to) {
		panic(&IllegalTransitionError{
			Machine: def.Name(),
			From:    from.Name,
			To:      to,
			Reason:  "success result sent down an unhappy path",
		})
	}
}
