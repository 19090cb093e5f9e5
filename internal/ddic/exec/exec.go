// Package exec is the executor bridge: it runs a synthesized Sequence
// statement by statement under a dummy visitor (no assertions, no pre/post
// checks), bounds each call with a deadline, and salvages the terminal
// result into the pool on success (§4.4 of the spec).
package exec

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"ddic/internal/ddic/pool"
	"ddic/internal/ddic/sequence"
)

// DefaultStatementTimeout bounds a single statement call when the caller
// does not supply its own deadline.
const DefaultStatementTimeout = 2 * time.Second

// Execute runs every statement of seq in order, building each statement's
// arguments from the already-computed outcomes of the statements it
// references. It stops at the first non-Normal outcome: a later statement
// that depends on a failed one has no well-typed argument to pass, so there
// is nothing meaningful left to run.
func Execute(ctx context.Context, seq sequence.Sequence, timeout time.Duration) *sequence.ExecutableSequence {
	if timeout <= 0 {
		timeout = DefaultStatementTimeout
	}
	es := sequence.NewExecutable(seq)

	for i, stmt := range seq.Statements() {
		args := make([]reflect.Value, len(stmt.Inputs))
		ready := true
		for j, ref := range stmt.Inputs {
			out := es.Outcomes[ref]
			if out.State != sequence.Normal {
				ready = false
				break
			}
			args[j] = out.Value
		}
		if !ready {
			es.Outcomes[i] = sequence.Outcome{State: sequence.Exceptional, Err: fmt.Errorf("phase=execute: input statement did not terminate normally")}
			return es
		}

		es.Outcomes[i] = callWithDeadline(ctx, stmt, args, timeout)
		if es.Outcomes[i].State != sequence.Normal {
			return es
		}
	}

	return es
}

// callWithDeadline invokes stmt.Op.Call on its own goroutine and races it
// against timeout. A statement that does not return in time is reported as
// TimedOut; the goroutine itself is not killed, since Go offers no way to
// preempt a running call — the caller's pool and trackers are unaffected
// either way because a TimedOut outcome is never salvaged.
func callWithDeadline(ctx context.Context, stmt sequence.Statement, args []reflect.Value, timeout time.Duration) sequence.Outcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value reflect.Value
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := stmt.Op.Call(args)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return sequence.Outcome{State: sequence.Exceptional, Err: r.err}
		}
		return sequence.Outcome{State: sequence.Normal, Value: r.value}
	case <-ctx.Done():
		return sequence.Outcome{State: sequence.TimedOut, Err: ctx.Err()}
	}
}

// Salvage inspects only the terminal outcome of es, per §4.4: a Normal
// outcome with a non-nil value is inserted into p; anything else (including
// an earlier Exceptional or TimedOut statement, since those leave the
// terminal at NotExecuted) is discarded silently.
func Salvage(p *pool.SequenceCollection, es *sequence.ExecutableSequence) bool {
	terminal := es.TerminalOutcome()
	if terminal.State != sequence.Normal {
		return false
	}
	if isNil(terminal.Value) {
		return false
	}
	return p.Add(es.Seq)
}

// ExecuteAndSalvage runs seq and, if its terminal statement produces a
// non-nil value, inserts seq into p. It reports whether the insertion
// happened.
func ExecuteAndSalvage(ctx context.Context, p *pool.SequenceCollection, seq sequence.Sequence, timeout time.Duration) bool {
	es := Execute(ctx, seq, timeout)
	return Salvage(p, es)
}

// isNil reports whether v is a nilable kind holding nil — the Go analogue
// of Java's "v != null" terminal check. Non-nilable kinds (structs, ints,
// strings, ...) are never considered nil.
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// Sampler takes point-in-time readings of the current process's resident
// memory and OS thread count, which the ddicctl watch TUI renders after
// each Construct attempt as a coarse signal of resource use. It does not
// compute growth between readings.
type Sampler struct {
	proc *process.Process
}

// NewSampler attaches to the current process.
func NewSampler() (*Sampler, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("exec: unable to sample current process: %w", err)
	}
	return &Sampler{proc: p}, nil
}

// Snapshot is a point-in-time resource reading.
type Snapshot struct {
	RSSBytes   uint64
	NumThreads int32
}

// Sample takes a resource reading. A nil Sampler (e.g. when gopsutil could
// not attach to the process) yields the zero Snapshot rather than panicking,
// so callers in the demo CLI can sample unconditionally.
func (s *Sampler) Sample() Snapshot {
	if s == nil || s.proc == nil {
		return Snapshot{}
	}
	var snap Snapshot
	if mem, err := s.proc.MemoryInfo(); err == nil && mem != nil {
		snap.RSSBytes = mem.RSS
	}
	if n, err := s.proc.NumThreads(); err == nil {
		snap.NumThreads = n
	}
	return snap
}
