// Package discovery implements producer discovery: the breadth-first search
// over Types that finds every constructor/method/factory whose return type
// is assignable to the requested target (§4.2 of the spec).
package discovery

import (
	"reflect"

	"ddic/internal/ddic/catalog"
	"ddic/internal/ddic/operation"
	"ddic/internal/ddic/trackers"
	"ddic/internal/ddic/types"
)

// Producers returns, in discovery order, every operation whose return type
// is assignable to t, starting from the frontier {t} ∪ specified.
//
// tr may be nil; when non-nil, every dequeued type not in tr's
// SpecifiedTypes is recorded into UnspecifiedTypes (the Go port of
// logIfUnspecified).
func Producers(cat *catalog.Catalog, t types.Type, specified []types.Type, tr *trackers.Trackers) []operation.TypedOperation {
	var result []operation.TypedOperation
	seenOp := make(map[string]struct{})
	addOp := func(op operation.TypedOperation) {
		key := op.Signature()
		if _, ok := seenOp[key]; ok {
			return
		}
		seenOp[key] = struct{}{}
		result = append(result, op)
	}

	processed := make(map[types.Type]struct{})
	var worklist []types.Type
	worklist = append(worklist, t)
	worklist = append(worklist, specified...)

	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]

		if _, ok := processed[current]; ok {
			continue
		}
		if current.IsNonreceiverType() {
			continue
		}
		processed[current] = struct{}{}

		if tr != nil {
			tr.NoteTouched(current)
		}

		rt := current.Reflect()
		if rt == nil {
			continue
		}

		// Step 1: constructors. Only non-interface types can be
		// instantiated (§3 invariant: "never returns an operation whose
		// declaring class is abstract when that operation is a
		// constructor"), and only when the producer's actual return type is
		// assignable to t — a factory registered against a type's boxing
		// peer (e.g. "func NewFoo() *Foo" found while processing Foo) is not
		// itself a valid producer of Foo, since a *Foo value cannot stand in
		// for a Foo argument or result; it is only reachable because *Foo
		// gets enqueued in its own right when something else needs it.
		if t.IsAssignableFrom(current) && !current.IsInterface() {
			registered := cat.ProducersReturning(current)
			for _, op := range registered {
				if op.Kind != operation.Constructor {
					continue
				}
				// Enqueue every parameter of every registered constructor, accepted
				// or not, mirroring step 3's treatment of static-factory params:
				// the reference enqueues params of every enumerated executable,
				// constructors included, so a constructor A(B) reaches B's own
				// producers of A.
				for _, in := range op.InputTypes {
					enqueueIfNew(&worklist, processed, in)
				}
				if t.IsAssignableFrom(op.ReturnType) {
					addOp(op)
				}
			}
			if zeroValueConstructible(rt) && len(registered) == 0 {
				addOp(zeroValueConstructor(current))
			}
		}

		// Step 2: exported methods reachable via reflection. For a
		// non-pointer struct type, pointer-receiver methods live in the
		// method set of *T, not T, so both are walked. Methods of an
		// interface type are skipped: reflect gives them no callable Func.
		methodSources := []reflect.Type{rt}
		if rt.Kind() == reflect.Struct {
			methodSources = append(methodSources, reflect.PtrTo(rt))
		}
		for _, src := range methodSources {
			for i := 0; i < src.NumMethod(); i++ {
				m := src.Method(i)
				op, ok := methodOperation(current, m)
				if !ok {
					continue
				}
				// Enqueue every parameter of every enumerated method,
				// including methods whose return type is rejected below —
				// the reference behavior the spec's Open Questions section
				// says to preserve (§9).
				for _, in := range op.InputTypes {
					enqueueIfNew(&worklist, processed, in)
				}
				if t.IsAssignableFrom(op.ReturnType) {
					addOp(op)
				}
			}
		}

		// Step 3: catalog-registered free-function producers declared
		// against this type.
		freeFns := cat.ProducersReturning(current)
		for _, op := range freeFns {
			if op.Kind != operation.StaticMethod {
				continue
			}
			for _, in := range op.InputTypes {
				enqueueIfNew(&worklist, processed, in)
			}
			if t.IsAssignableFrom(op.ReturnType) {
				addOp(op)
			}
		}
	}

	return result
}

func enqueueIfNew(worklist *[]types.Type, processed map[types.Type]struct{}, t types.Type) {
	if t.IsPrimitive() {
		return
	}
	if _, ok := processed[t]; ok {
		return
	}
	*worklist = append(*worklist, t)
}

// methodOperation builds the TypedOperation for an exported instance
// method, prepending the receiver as input slot 0.
func methodOperation(declaring types.Type, m reflect.Method) (operation.TypedOperation, bool) {
	if m.PkgPath != "" {
		return operation.TypedOperation{}, false // unexported
	}
	if !m.Func.IsValid() {
		return operation.TypedOperation{}, false // interface method: no Func to call
	}
	mt := m.Func.Type()

	// mt.In(0) is the receiver; keep it as input slot 0 per the spec.
	inputs := make([]types.Type, mt.NumIn())
	for i := 0; i < mt.NumIn(); i++ {
		inputs[i] = types.Of(mt.In(i))
	}
	if mt.NumOut() == 0 {
		return operation.TypedOperation{}, false
	}
	ret := types.Of(mt.Out(0))

	return operation.New(declaring, inputs, ret, operation.InstanceMethod, m.Func), true
}

// zeroValueConstructible reports whether rt can be produced with no inputs
// via reflect.New — Go's analogue of a public nullary constructor.
func zeroValueConstructible(rt reflect.Type) bool {
	return rt.Kind() == reflect.Struct
}

// zeroValueConstructor synthesizes the implicit nullary constructor for a
// struct type with no registered factory: it yields the zero value of t
// itself, the Go analogue of Java's "new T()" for a class with only the
// implicit default constructor.
func zeroValueConstructor(t types.Type) operation.TypedOperation {
	rt := t.Reflect()
	fn := reflect.MakeFunc(
		reflect.FuncOf(nil, []reflect.Type{rt}, false),
		func(args []reflect.Value) []reflect.Value {
			return []reflect.Value{reflect.New(rt).Elem()}
		},
	)
	return operation.New(t, nil, t, operation.Constructor, fn)
}
