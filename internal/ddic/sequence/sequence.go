// Package sequence implements the immutable Sequence and the executed
// ExecutableSequence wrapper (§3 of the spec).
package sequence

import (
	"reflect"
	"strconv"
	"strings"

	"ddic/internal/ddic/operation"
	"ddic/internal/ddic/types"
)

// Statement is one call within a Sequence: an operation plus references to
// earlier statements supplying its inputs. Every entry in Inputs must be
// strictly less than the statement's own index within the sequence.
type Statement struct {
	Op     operation.TypedOperation
	Inputs []int
}

// Sequence is an immutable, ordered list of statements. Extension always
// allocates a new slice; no Sequence is ever mutated in place.
type Sequence struct {
	statements []Statement
}

// Empty is the zero-statement sequence.
var Empty = Sequence{}

// New builds a Sequence from a complete statement list. Callers that build
// sequences incrementally should prefer Extend/Append below.
func New(statements []Statement) Sequence {
	out := make([]Statement, len(statements))
	copy(out, statements)
	return Sequence{statements: out}
}

// Concat returns a new Sequence that runs every statement of each input
// sequence in order, renumbering input references to the concatenated
// indices. It is used to stitch drawn slot sequences together ahead of a
// terminal statement (§4.3 step 4).
func Concat(seqs ...Sequence) Sequence {
	var out []Statement
	offset := 0
	for _, s := range seqs {
		for _, st := range s.statements {
			shifted := make([]int, len(st.Inputs))
			for i, in := range st.Inputs {
				shifted[i] = in + offset
			}
			out = append(out, Statement{Op: st.Op, Inputs: shifted})
		}
		offset += s.Size()
	}
	return Sequence{statements: out}
}

// Append returns a new Sequence with one statement added at the end.
func (s Sequence) Append(op operation.TypedOperation, inputs []int) Sequence {
	out := make([]Statement, len(s.statements)+1)
	copy(out, s.statements)
	out[len(s.statements)] = Statement{Op: op, Inputs: inputs}
	return Sequence{statements: out}
}

// Size returns the number of statements in the sequence.
func (s Sequence) Size() int {
	return len(s.statements)
}

// Statement returns the i-th statement.
func (s Sequence) Statement(i int) Statement {
	return s.statements[i]
}

// Statements returns the sequence's statements; the returned slice must not
// be mutated by callers since Sequences are immutable.
func (s Sequence) Statements() []Statement {
	return s.statements
}

// Variable returns the output type of statement i — the "variable" the
// spec refers to as the inferred output of each statement.
func (s Sequence) Variable(i int) types.Type {
	return s.statements[i].Op.ReturnType
}

// TerminalType returns the output type of the last statement, or the zero
// Type if the sequence is empty.
func (s Sequence) TerminalType() types.Type {
	if len(s.statements) == 0 {
		return types.Type{}
	}
	return s.Variable(len(s.statements) - 1)
}

// Fingerprint returns a stable string key for structural deduplication in
// the pool ("add is idempotent on structural equality", §6).
func (s Sequence) Fingerprint() string {
	var b strings.Builder
	for _, st := range s.statements {
		b.WriteString(st.Op.Signature())
		for _, in := range st.Inputs {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(in))
		}
		b.WriteByte(';')
	}
	return b.String()
}

// Outcome is the execution result of a single statement.
type Outcome struct {
	State OutcomeState
	Value reflect.Value
	Err   error
}

// OutcomeState classifies an Outcome.
type OutcomeState int

const (
	NotExecuted OutcomeState = iota
	Normal
	Exceptional
	TimedOut
)

// ExecutableSequence couples a Sequence with a per-statement outcome.
type ExecutableSequence struct {
	Seq      Sequence
	Outcomes []Outcome
}

// NewExecutable wraps seq with all statements marked NotExecuted.
func NewExecutable(seq Sequence) *ExecutableSequence {
	return &ExecutableSequence{
		Seq:      seq,
		Outcomes: make([]Outcome, seq.Size()),
	}
}

// TerminalOutcome returns the outcome of the last statement.
func (e *ExecutableSequence) TerminalOutcome() Outcome {
	if len(e.Outcomes) == 0 {
		return Outcome{State: NotExecuted}
	}
	return e.Outcomes[len(e.Outcomes)-1]
}
