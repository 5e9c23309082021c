package machine

import "sort"

// Definition is the machine-type-level metadata: the collected contract of
// every node plus the machine's own overview. It is built once, at package
// init time, by NewDefinition, and is shared — read-only — by every
// Instance of that machine type.
//
// This is the Go analogue of the original implementation's class-level
// __nodes__ / __entry_nodes__ / __terminal_nodes__ / __overview__
// attributes, assembled from docstrings at class-definition time.
type Definition struct {
	name          string
	overview      string
	todo          string
	nodes         map[string]NodeMetadata
	entryNodes    []string
	terminalNodes []string
}

// NewDefinition builds and validates a machine definition. name identifies
// the machine type for qualified Result names and error messages; overview
// is the machine's required, non-empty description; builders is the
// complete set of node contracts the machine implementation provides.
//
// NewDefinition runs Validate before returning, so a Definition value is
// only ever observed in a well-formed state — mirroring the original
// implementation's @machine decorator, which calls cls.validate()
// unconditionally at class-definition time.
func NewDefinition(name, overview string, builders ...*Builder) (*Definition, error) {
	if overview == "" {
		return nil, &MissingOverviewError{Subject: name}
	}

	def := &Definition{
		name:     name,
		overview: overview,
		nodes:    make(map[string]NodeMetadata, len(builders)),
	}

	for _, b := range builders {
		meta, err := b.Build()
		if err != nil {
			return nil, err
		}
		if _, exists := def.nodes[meta.Name]; exists {
			return nil, &ReservedNameError{Name: meta.Name}
		}
		def.nodes[meta.Name] = meta
		if meta.IsEntry {
			def.entryNodes = append(def.entryNodes, meta.Name)
		}
		if meta.IsTerminal {
			def.terminalNodes = append(def.terminalNodes, meta.Name)
		}
	}

	sort.Strings(def.entryNodes)
	sort.Strings(def.terminalNodes)

	if err := Validate(def); err != nil {
		return nil, err
	}

	return def, nil
}

// Name returns the machine type's name, used as the prefix of every node's
// fully-qualified name.
func (d *Definition) Name() string {
	return d.name
}

// Overview returns the machine's design-level description.
func (d *Definition) Overview() string {
	return d.overview
}

// Todo returns free-text follow-up notes recorded on the machine, if any.
func (d *Definition) Todo() string {
	return d.todo
}

// WithTodo attaches follow-up notes to the definition. It is a builder-style
// setter because Todo is documentation-only and optional, unlike the fields
// NewDefinition requires up front.
func (d *Definition) WithTodo(todo string) *Definition {
	d.todo = todo
	return d
}

// Node looks up a node's metadata by name.
func (d *Definition) Node(name string) (NodeMetadata, bool) {
	meta, ok := d.nodes[name]
	return meta, ok
}

// EntryNode returns the sole entry node's metadata. Validate guarantees
// exactly one exists.
func (d *Definition) EntryNode() NodeMetadata {
	return d.nodes[d.entryNodes[0]]
}

// Nodes returns every registered node's metadata in name order.
func (d *Definition) Nodes() []NodeMetadata {
	names := make([]string, 0, len(d.nodes))
	for name := range d.nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	metas := make([]NodeMetadata, len(names))
	for i, name := range names {
		metas[i] = d.nodes[name]
	}
	return metas
}

// QualifiedName formats node as "<MachineTypeName>.<NodeName>".
func (d *Definition) QualifiedName(node string) string {
	return d.name + "." + node
}
