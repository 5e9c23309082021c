package machine

// Builder records a node's design contract at machine-type registration
// time, in the style the original implementation extracted from a
// structured docstring (SPEC_FULL.md §6) — except here the "docstring" is a
// chain of method calls evaluated once, during a Definition's init.
//
// Typical use, inside a Definition's node list:
//
//	Node("copy_to_staging").
//	    Overview("Copy the source file to the staging folder.").
//	    Happy("encrypt_file").
//	    Unhappy("remove_copied_file")
type Builder struct {
	meta NodeMetadata
}

// Node starts building the metadata for the node named name.
func Node(name string) *Builder {
	return &Builder{meta: NodeMetadata{Name: name}}
}

// Overview records the node's required, non-empty free-text description.
func (b *Builder) Overview(text string) *Builder {
	b.meta.Overview = text
	return b
}

// Entry marks this node as a legal starting node for the machine.
func (b *Builder) Entry() *Builder {
	b.meta.IsEntry = true
	return b
}

// Terminal marks this node as one that must return Exit and must declare no
// exits.
func (b *Builder) Terminal() *Builder {
	b.meta.IsTerminal = true
	return b
}

// Happy appends successor names reachable from this node on a Success
// Result.
func (b *Builder) Happy(names ...string) *Builder {
	b.meta.HappyPaths = append(b.meta.HappyPaths, names...)
	return b
}

// Unhappy appends successor names reachable from this node on a Failure
// Result.
func (b *Builder) Unhappy(names ...string) *Builder {
	b.meta.UnhappyPaths = append(b.meta.UnhappyPaths, names...)
	return b
}

// InvokesMachine documents, for humans only, that this node delegates to a
// named sub-machine. The core never interprets this value.
func (b *Builder) InvokesMachine(name string) *Builder {
	b.meta.InvokesMachine = name
	return b
}

// HandleExceptions records that a panic escaping this node's body should be
// converted into a Failure routed to onException, which must appear in the
// node's UnhappyPaths (checked by Validate).
func (b *Builder) HandleExceptions(onException string) *Builder {
	b.meta.exceptionPolicy = true
	b.meta.HandlesExcept = true
	b.meta.OnException = onException
	return b
}

// NoExceptions records that this node is not expected to panic; if it does,
// the panic propagates out of Run uncaught.
func (b *Builder) NoExceptions() *Builder {
	b.meta.exceptionPolicy = true
	b.meta.HandlesExcept = false
	return b
}

// Build finalizes the metadata. Called by NewDefinition; node bodies
// never call this directly.
func (b *Builder) Build() (NodeMetadata, error) {
	if ReservedNames[b.meta.Name] {
		return NodeMetadata{}, &ReservedNameError{Name: b.meta.Name}
	}
	if b.meta.Overview == "" {
		return NodeMetadata{}, &MissingOverviewError{Subject: b.meta.Name}
	}
	if !b.meta.exceptionPolicy {
		return NodeMetadata{}, &NoExceptionHandlingError{Node: b.meta.Name}
	}
	return b.meta, nil
}
