package machine

// Binder is the dependency indirection node bodies use to reach repository
// adapters without instantiating or wiring them directly: it carries the
// active logger and hands it to an adapter constructor at call time.
//
// SPEC_FULL.md §4.7 and §9 call out that the original implementation's
// equivalent (BaseDependency.__getattribute__) works by mutating a
// class-level logger attribute shared by every instance of the adapter —
// global mutable state that is unsafe once independent machine instances run
// concurrently in a worker pool (§5). Binder never mutates shared state: Bind
// calls the supplied constructor with the bound logger and returns a fresh
// value, so two goroutines calling Bind concurrently never observe each
// other's logger.
type Binder struct {
	logger Logger
}

// NewBinder returns a Binder that hands logger to every adapter it
// constructs.
func NewBinder(logger Logger) Binder {
	return Binder{logger: logger}
}

// Bind calls constructor with the binder's logger and returns the resulting,
// logger-bound adapter value. constructor is typically an adapter package's
// New function, e.g.:
//
//	pg := machine.Bind(binder, postgres.New)
//	pg.DumpData(ctx, conn, outFile)
func Bind[A any](b Binder, constructor func(Logger) A) A {
	return constructor(b.logger)
}
