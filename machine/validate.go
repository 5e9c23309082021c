package machine

// Validate checks that a Definition's declared graph is internally
// consistent. It is pure: it consults only def's own metadata, never an
// instance's state or logger.
//
// The checks are ported directly from the original implementation's
// AbstractMachine.validate (state_machine/abstract_machine.py), in the same
// order, so that the error raised for a given malformed graph matches what
// the original implementation would raise for the equivalent design.
func Validate(def *Definition) error {
	// Invariant 2/3: exactly one entry node, at least one terminal node.
	if len(def.entryNodes) == 0 {
		return &NoEntryNodeError{Machine: def.name}
	}
	if len(def.entryNodes) > 1 {
		return &MultipleEntryNodeError{Machine: def.name, Names: def.entryNodes}
	}
	if len(def.terminalNodes) == 0 {
		return &NoTerminalNodeError{Machine: def.name}
	}

	// Invariant 4: every exit name must resolve to a registered node.
	// Collect, along the way, the set of all names referenced as someone's
	// exit — used by invariant 5 below.
	referenced := make(map[string]bool)
	for _, node := range def.nodes {
		for _, to := range node.Exits() {
			if _, ok := def.nodes[to]; !ok {
				return &UndefinedNodeError{Machine: def.name, From: node.Name, To: to}
			}
			referenced[to] = true
		}
	}

	// Invariant 7/8: every node declares an exception policy, and a
	// handler's target must be an unhappy exit.
	for _, node := range def.nodes {
		if !node.exceptionPolicy {
			return &NoExceptionHandlingError{Machine: def.name, Node: node.Name}
		}
		if node.HandlesExcept && !contains(node.UnhappyPaths, node.OnException) {
			return &IllegalTransitionError{
				Machine: def.name,
				From:    node.Name,
				To:      node.OnException,
				Reason:  "exception handler target is not in unhappy_paths",
			}
		}
	}

	// Invariant 5/6: every non-entry node is reachable, and terminal nodes
	// declare no exits.
	for _, node := range def.nodes {
		if !node.IsEntry && !referenced[node.Name] {
			return &UnreachableNodeError{Machine: def.name, Node: node.Name}
		}
		if node.IsTerminal && len(node.Exits()) > 0 {
			return &NotTerminalNodeError{Machine: def.name, Node: node.Name}
		}
	}

	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
