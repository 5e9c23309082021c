package machine

import "testing"

// threeNodeDefinition builds start -> middle -> finish, where start can also
// route a Failure to a cleanup node, for driver-level tests.
func threeNodeDefinition(t *testing.T) *Definition {
	t.Helper()
	def, err := NewDefinition("Pipeline", "copies then finishes",
		Node("start").Overview("entry").Entry().
			Happy("middle").Unhappy("cleanup").HandleExceptions("cleanup"),
		Node("middle").Overview("does the work").Happy("finish").NoExceptions(),
		Node("cleanup").Overview("unwinds on failure").Happy("finish").NoExceptions(),
		Node("finish").Overview("terminal").Terminal().NoExceptions(),
	)
	if err != nil {
		t.Fatalf("unexpected error building definition: %v", err)
	}
	return def
}

func TestRun_HappyPath(t *testing.T) {
	def := threeNodeDefinition(t)
	logger := &recordingLogger{}

	dispatch := map[string]Func[int]{
		"start":  func(m *Instance[int]) Transition { return m.Success("middle") },
		"middle": func(m *Instance[int]) Transition { return m.Success("finish") },
		"cleanup": func(m *Instance[int]) Transition { return m.Success("finish") },
		"finish": func(m *Instance[int]) Transition { return m.ExitSuccess() },
	}

	inst := NewInstance(def, logger, 0, "pipeline failed:", dispatch)
	results := Run(inst)

	if len(results) != 3 {
		t.Fatalf("expected 3 results (start, middle, finish), got %d: %+v", len(results), results)
	}
	if results[0].Node() != "Pipeline.start" || !results[0].IsSuccess() {
		t.Errorf("expected first result to be a success from Pipeline.start, got %+v", results[0])
	}
	if results[2].Node() != "Pipeline.finish" || !results[2].IsSuccess() {
		t.Errorf("expected last result to be a success exit from Pipeline.finish, got %+v", results[2])
	}
}

func TestRun_FailureRoutesToUnhappyPath(t *testing.T) {
	def := threeNodeDefinition(t)
	logger := &recordingLogger{}

	dispatch := map[string]Func[int]{
		"start":   func(m *Instance[int]) Transition { return m.Failure("cleanup", "disk full") },
		"middle":  func(m *Instance[int]) Transition { return m.Success("finish") },
		"cleanup": func(m *Instance[int]) Transition { return m.Success("finish") },
		"finish":  func(m *Instance[int]) Transition { return m.ExitSuccess() },
	}

	inst := NewInstance(def, logger, 0, "pipeline failed:", dispatch)
	results := Run(inst)

	if len(results) != 3 {
		t.Fatalf("expected 3 results (start, cleanup, finish), got %d: %+v", len(results), results)
	}
	if !results[0].IsFailure() {
		t.Errorf("expected first result to be a failure, got %+v", results[0])
	}
}

func TestRun_SuccessDownUnhappyPathPanics(t *testing.T) {
	def := threeNodeDefinition(t)
	logger := &recordingLogger{}

	dispatch := map[string]Func[int]{
		// start declares "cleanup" only as an unhappy exit, so returning a
		// Success bound for "cleanup" must panic with IllegalTransitionError.
		"start":   func(m *Instance[int]) Transition { return m.Success("cleanup") },
		"middle":  func(m *Instance[int]) Transition { return m.Success("finish") },
		"cleanup": func(m *Instance[int]) Transition { return m.Success("finish") },
		"finish":  func(m *Instance[int]) Transition { return m.ExitSuccess() },
	}

	inst := NewInstance(def, logger, 0, "pipeline failed:", dispatch)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Run to panic when a Success travels an unhappy edge")
		}
		if _, ok := r.(*IllegalTransitionError); !ok {
			t.Fatalf("expected *IllegalTransitionError, got %T: %v", r, r)
		}
	}()

	Run(inst)
}

func TestRun_NonTerminalNodeReturningExitPanics(t *testing.T) {
	def := threeNodeDefinition(t)
	logger := &recordingLogger{}

	dispatch := map[string]Func[int]{
		// middle is not terminal, so ExitSuccess here must panic.
		"start":   func(m *Instance[int]) Transition { return m.Success("middle") },
		"middle":  func(m *Instance[int]) Transition { return m.ExitSuccess() },
		"cleanup": func(m *Instance[int]) Transition { return m.Success("finish") },
		"finish":  func(m *Instance[int]) Transition { return m.ExitSuccess() },
	}

	inst := NewInstance(def, logger, 0, "pipeline failed:", dispatch)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Run to panic when a non-terminal node returns Exit")
		}
		if _, ok := r.(*NotTerminalNodeError); !ok {
			t.Fatalf("expected *NotTerminalNodeError, got %T: %v", r, r)
		}
	}()

	Run(inst)
}

func TestRun_TargetOutsideDeclaredExitsPanics(t *testing.T) {
	def := threeNodeDefinition(t)
	logger := &recordingLogger{}

	dispatch := map[string]Func[int]{
		// start's only declared exits are middle/cleanup; routing success
		// straight to finish is not a declared edge.
		"start":   func(m *Instance[int]) Transition { return NewTransition(Success("Pipeline.start"), "finish") },
		"middle":  func(m *Instance[int]) Transition { return m.Success("finish") },
		"cleanup": func(m *Instance[int]) Transition { return m.Success("finish") },
		"finish":  func(m *Instance[int]) Transition { return m.ExitSuccess() },
	}

	inst := NewInstance(def, logger, 0, "pipeline failed:", dispatch)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Run to panic when the transition target is not a declared exit")
		}
		if _, ok := r.(*IllegalTransitionError); !ok {
			t.Fatalf("expected *IllegalTransitionError, got %T: %v", r, r)
		}
	}()

	Run(inst)
}

func TestBarrier_RecoversPanicIntoFailure(t *testing.T) {
	def := threeNodeDefinition(t)
	logger := &recordingLogger{}

	startBody := Barrier[int]("cleanup", func(m *Instance[int]) Transition {
		panic("boom")
	})

	dispatch := map[string]Func[int]{
		"start":   startBody,
		"middle":  func(m *Instance[int]) Transition { return m.Success("finish") },
		"cleanup": func(m *Instance[int]) Transition { return m.Success("finish") },
		"finish":  func(m *Instance[int]) Transition { return m.ExitSuccess() },
	}

	inst := NewInstance(def, logger, 0, "pipeline failed:", dispatch)
	results := Run(inst)

	if len(results) != 3 {
		t.Fatalf("expected 3 results (start, cleanup, finish), got %d: %+v", len(results), results)
	}
	if !results[0].IsFailure() {
		t.Errorf("expected the recovered panic to surface as a failure, got %+v", results[0])
	}
}

func TestNewInstance_PanicsOnIncompleteDispatch(t *testing.T) {
	def := threeNodeDefinition(t)
	logger := &recordingLogger{}

	defer func() {
		if recover() == nil {
			t.Fatal("expected NewInstance to panic when dispatch is missing a node")
		}
	}()

	NewInstance(def, logger, 0, "pipeline failed:", map[string]Func[int]{
		"start": func(m *Instance[int]) Transition { return m.Success("middle") },
	})
}
