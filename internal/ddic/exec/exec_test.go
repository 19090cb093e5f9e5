package exec

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ddic/internal/ddic/operation"
	"ddic/internal/ddic/pool"
	"ddic/internal/ddic/sequence"
	"ddic/internal/ddic/types"
)

func nullaryOp(ret types.Type, fn func() reflect.Value) operation.TypedOperation {
	v := reflect.MakeFunc(
		reflect.FuncOf(nil, []reflect.Type{ret.Reflect()}, false),
		func(args []reflect.Value) []reflect.Value { return []reflect.Value{fn()} },
	)
	return operation.New(ret, nil, ret, operation.NonreceiverInit, v)
}

func TestExecuteAndSalvage_InsertsNonNilTerminal(t *testing.T) {
	p := pool.New()
	intType := types.OfValue(0)
	op := nullaryOp(intType, func() reflect.Value { return reflect.ValueOf(7) })
	seq := sequence.Empty.Append(op, nil)

	inserted := ExecuteAndSalvage(context.Background(), p, seq, time.Second)
	if !inserted {
		t.Fatalf("expected a non-nil terminal value to be salvaged")
	}
	if p.Size() != 1 {
		t.Fatalf("expected pool to contain 1 sequence, got %d", p.Size())
	}
}

func TestExecuteAndSalvage_DiscardsNilTerminal(t *testing.T) {
	p := pool.New()
	type widget struct{}
	ptrType := types.OfValue((*widget)(nil))
	op := nullaryOp(ptrType, func() reflect.Value { return reflect.Zero(ptrType.Reflect()) })
	seq := sequence.Empty.Append(op, nil)

	if ExecuteAndSalvage(context.Background(), p, seq, time.Second) {
		t.Fatalf("expected a nil terminal pointer to be discarded, not salvaged")
	}
	if p.Size() != 0 {
		t.Fatalf("expected pool to remain empty, got %d entries", p.Size())
	}
}

func TestExecuteAndSalvage_DiscardsExceptionalTerminal(t *testing.T) {
	p := pool.New()
	intType := types.OfValue(0)
	fn := reflect.MakeFunc(
		reflect.FuncOf(nil, []reflect.Type{intType.Reflect(), reflect.TypeOf((*error)(nil)).Elem()}, false),
		func(args []reflect.Value) []reflect.Value {
			return []reflect.Value{reflect.ValueOf(0), reflect.ValueOf(errors.New("boom"))}
		},
	)
	op := operation.New(intType, nil, intType, operation.NonreceiverInit, fn)
	seq := sequence.Empty.Append(op, nil)

	if ExecuteAndSalvage(context.Background(), p, seq, time.Second) {
		t.Fatalf("expected an exceptional terminal to be discarded")
	}
}

func TestExecuteAndSalvage_TimesOutSlowStatement(t *testing.T) {
	p := pool.New()
	intType := types.OfValue(0)
	op := nullaryOp(intType, func() reflect.Value {
		time.Sleep(50 * time.Millisecond)
		return reflect.ValueOf(1)
	})
	seq := sequence.Empty.Append(op, nil)

	es := Execute(context.Background(), seq, time.Millisecond)
	if es.TerminalOutcome().State != sequence.TimedOut {
		t.Fatalf("expected TimedOut, got %v", es.TerminalOutcome().State)
	}
	if Salvage(p, es) {
		t.Fatalf("expected a timed-out sequence to never be salvaged")
	}
}

func TestExecute_SkipsDependentsOfFailedStatement(t *testing.T) {
	intType := types.OfValue(0)
	fn := reflect.MakeFunc(
		reflect.FuncOf(nil, []reflect.Type{intType.Reflect(), reflect.TypeOf((*error)(nil)).Elem()}, false),
		func(args []reflect.Value) []reflect.Value {
			return []reflect.Value{reflect.ValueOf(0), reflect.ValueOf(errors.New("fail"))}
		},
	)
	failing := operation.New(intType, nil, intType, operation.NonreceiverInit, fn)

	addOne := operation.New(intType, []types.Type{intType}, intType, operation.StaticMethod, reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{intType.Reflect()}, []reflect.Type{intType.Reflect()}, false),
		func(args []reflect.Value) []reflect.Value {
			return []reflect.Value{reflect.ValueOf(args[0].Interface().(int) + 1)}
		},
	))

	seq := sequence.Empty.Append(failing, nil).Append(addOne, []int{0})
	es := Execute(context.Background(), seq, time.Second)

	if es.Outcomes[0].State != sequence.Exceptional {
		t.Fatalf("expected statement 0 to be Exceptional, got %v", es.Outcomes[0].State)
	}
	if es.Outcomes[1].State != sequence.NotExecuted && es.Outcomes[1].State != sequence.Exceptional {
		t.Fatalf("expected statement 1 to never reach a Normal outcome, got %v", es.Outcomes[1].State)
	}
}
