package machine

import "testing"

func TestDefinition_Accessors(t *testing.T) {
	def, err := NewDefinition("Archive", "archives and encrypts a file", minimalHappy(t)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.Name() != "Archive" {
		t.Errorf("expected Name() = %q, got %q", "Archive", def.Name())
	}
	if def.Overview() == "" {
		t.Error("expected non-empty Overview()")
	}
	if got := def.QualifiedName("start"); got != "Archive.start" {
		t.Errorf("expected QualifiedName(start) = %q, got %q", "Archive.start", got)
	}

	if _, ok := def.Node("nonexistent"); ok {
		t.Error("expected Node(nonexistent) to report !ok")
	}
	if _, ok := def.Node("start"); !ok {
		t.Error("expected Node(start) to report ok")
	}

	nodes := def.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	// Nodes() is sorted by name: "finish" < "start".
	if nodes[0].Name != "finish" || nodes[1].Name != "start" {
		t.Errorf("expected Nodes() sorted [finish start], got [%s %s]", nodes[0].Name, nodes[1].Name)
	}
}

func TestDefinition_WithTodo(t *testing.T) {
	def, err := NewDefinition("Archive", "archives and encrypts a file", minimalHappy(t)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def = def.WithTodo("revisit retry policy on remove_copied_file")
	if def.Todo() == "" {
		t.Error("expected Todo() to be set after WithTodo")
	}
}

func TestDefinition_DuplicateNodeName(t *testing.T) {
	_, err := NewDefinition("M", "overview",
		Node("start").Overview("entry").Entry().Happy("start").HandleExceptions("start"),
		Node("start").Overview("duplicate").Terminal().NoExceptions(),
	)
	if err == nil {
		t.Fatal("expected an error registering two nodes named \"start\"")
	}
}
