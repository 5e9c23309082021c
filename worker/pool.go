// Package worker drives independent machine instances concurrently,
// grounded in SPEC_FULL.md §4.8 and the teacher's executeParallel fan-out
// (graph/engine.go): a bounded set of goroutines, a buffered results
// channel, and sync.WaitGroup for coordination, with per-item state kept
// fully isolated so no two workers ever touch the same machine instance.
package worker

import (
	"context"
	"sync"

	"github.com/khjklujn/state-machine/machine"
)

// WorkItem is one unit of work a pool worker drives through its own machine
// instance: an identifier for correlating the result back to its caller,
// plus the opaque state that instance starts from.
type WorkItem[S any] struct {
	ID    string
	State S
}

// Outcome is what a single WorkItem produced: its ordered Result log on
// success, or the error that stopped it short (a panic recovered at the
// pool boundary — an uncaught exception from a NoExceptions node, or a
// control-plane panic from the driver itself).
type Outcome[S any] struct {
	Item    WorkItem[S]
	Results []machine.Result
	Err     error
}

// Run is what a pool worker invokes once per WorkItem: build and run a
// machine instance from item, and return its Result log. Implementations
// are expected to call machine.Run themselves, after binding a
// *machine.Instance[S] with item.State via machine.NewInstance.
type Run[S any] func(ctx context.Context, item WorkItem[S]) []machine.Result

// Pool drives a bounded number of WorkItems concurrently. Size is the
// maximum number of goroutines running machines at once; items beyond that
// bound wait for a slot to free up. Workers share nothing beyond the
// immutable run function and whatever config/logger it was built with —
// never a machine instance, per SPEC_FULL.md §4.8.
type Pool[S any] struct {
	size int
	run  Run[S]
}

// New builds a Pool of the given size driving items through run. A size of
// zero or less is treated as 1, so a misconfigured pool still makes
// progress sequentially rather than deadlocking.
func New[S any](size int, run Run[S]) *Pool[S] {
	if size <= 0 {
		size = 1
	}
	return &Pool[S]{size: size, run: run}
}

// RunAll drives every item in items through the pool's run function,
// returning one Outcome per item. There is no ordering guarantee between
// outcomes and the order of items; callers that need an item's outcome
// should match on Outcome.Item.ID.
//
// A panic escaping run for one item is recovered and reported as that
// item's Outcome.Err; it never brings down the other workers, matching the
// pool's isolation guarantee.
func (p *Pool[S]) RunAll(ctx context.Context, items []WorkItem[S]) []Outcome[S] {
	outcomes := make(chan Outcome[S], len(items))

	sem := make(chan struct{}, p.size)
	var wg sync.WaitGroup

	for _, item := range items {
		wg.Add(1)
		sem <- struct{}{}

		go func(item WorkItem[S]) {
			defer wg.Done()
			defer func() { <-sem }()

			outcomes <- p.runOne(ctx, item)
		}(item)
	}

	wg.Wait()
	close(outcomes)

	collected := make([]Outcome[S], 0, len(items))
	for outcome := range outcomes {
		collected = append(collected, outcome)
	}
	return collected
}

func (p *Pool[S]) runOne(ctx context.Context, item WorkItem[S]) (outcome Outcome[S]) {
	outcome.Item = item

	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = &PanicError{Value: r}
			}
			outcome.Err = err
		}
	}()

	outcome.Results = p.run(ctx, item)
	return outcome
}
