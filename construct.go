// Package ddic implements the demand-driven input constructor: given a
// target Type with no value currently in the pool, it searches for
// producers, synthesizes candidate call sequences, executes them, and
// banks any successes back into the pool before returning whatever the
// pool now holds for that type (§4.1 of the spec).
package ddic

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"ddic/internal/ddic/catalog"
	"ddic/internal/ddic/discovery"
	"ddic/internal/ddic/exec"
	"ddic/internal/ddic/pool"
	"ddic/internal/ddic/sequence"
	"ddic/internal/ddic/synth"
	"ddic/internal/ddic/trackers"
	"ddic/internal/ddic/types"
)

// Options configures a single Construct call.
type Options struct {
	// ExactTypeMatch narrows the final pool query to sequences whose
	// terminal type equals Target exactly, rather than merely being
	// assignable to it.
	ExactTypeMatch bool
	// OnlyReceivers narrows the final pool query to sequences whose
	// terminal type can serve as a method receiver.
	OnlyReceivers bool
	// SpecifiedClasses names additional catalog-registered types to seed
	// the producer-discovery frontier with, resolved via cat.Resolve.
	SpecifiedClasses []string
	// StatementTimeout bounds each statement call during execution. Zero
	// uses exec.DefaultStatementTimeout.
	StatementTimeout time.Duration
	// Rand supplies randomness for sequence synthesis. Nil uses a
	// package-level default source.
	Rand *rand.Rand
	// Trackers receives discovery/uninstantiability bookkeeping. Nil uses
	// trackers.Default().
	Trackers *trackers.Trackers
}

var defaultRand = rand.New(rand.NewSource(1))

// Construct is the construct(T) algorithm of §4.1: discover producers,
// synthesize and salvage one candidate per producer in discovery order,
// then return whatever the pool now holds for t. A non-nil error is only
// ever a ConfigurationError wrapping ErrUnresolvedSpecifiedClass; every
// other failure mode is absorbed into an empty or partial result, per the
// §7 error taxonomy.
func Construct(ctx context.Context, cat *catalog.Catalog, p *pool.SequenceCollection, t types.Type, opts Options) ([]sequence.Sequence, error) {
	tr := opts.Trackers
	if tr == nil {
		tr = trackers.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = defaultRand
	}

	specified := make([]types.Type, 0, len(opts.SpecifiedClasses))
	for _, name := range opts.SpecifiedClasses {
		st, err := cat.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("phase=construct: %w: %s", ErrUnresolvedSpecifiedClass, name)
		}
		tr.AddSpecified(st)
		specified = append(specified, st)
	}

	// Promote every catalog-registered literal into the pool before
	// discovery runs. This is the Go substitute for the host's separate
	// literal-seeding step (Scenario B): RegisterLiteral only declares a
	// value to the catalog, and nothing else ever turns that declaration
	// into a pool entry a slot draw could find. Each literal is a
	// zero-input sequence, so salvaging it can never fail; Add is
	// idempotent, so repeating this across calls is a no-op after the
	// first.
	for _, lit := range cat.Literals() {
		litSeq := sequence.New([]sequence.Statement{{Op: lit}})
		exec.ExecuteAndSalvage(ctx, p, litSeq, opts.StatementTimeout)
	}

	producers := discovery.Producers(cat, t, specified, tr)
	if len(producers) == 0 {
		tr.AddUninstantiable(t)
		fmt.Fprintf(os.Stderr, "Warning: no producer methods found for %s\n", t)
		return nil, nil
	}

	for _, op := range producers {
		seq, ok := synth.Synthesize(p, op, rng)
		if !ok {
			continue
		}
		exec.ExecuteAndSalvage(ctx, p, seq, opts.StatementTimeout)
	}

	return p.Query(t, opts.ExactTypeMatch, opts.OnlyReceivers), nil
}
