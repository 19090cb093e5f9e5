package discovery

import (
	"reflect"
	"testing"

	"ddic/internal/ddic/catalog"
	"ddic/internal/ddic/operation"
	"ddic/internal/ddic/trackers"
	"ddic/internal/ddic/types"
)

type point struct {
	X, Y int
}

func newPoint(x, y int) *point {
	return &point{X: x, Y: y}
}

func (p *point) Translate(dx, dy int) *point {
	return &point{X: p.X + dx, Y: p.Y + dy}
}

func TestProducers_FindsRegisteredFactory(t *testing.T) {
	cat := catalog.New()
	if err := cat.RegisterFactory(newPoint, operation.Constructor); err != nil {
		t.Fatalf("RegisterFactory: %v", err)
	}

	ops := Producers(cat, types.OfValue(&point{}), nil, nil)

	var found bool
	for _, op := range ops {
		if op.Kind == operation.Constructor && len(op.InputTypes) == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected newPoint constructor among producers, got %d ops", len(ops))
	}
}

func TestProducers_EnumeratesPointerMethods(t *testing.T) {
	cat := catalog.New()
	ops := Producers(cat, types.OfValue(&point{}), nil, nil)

	var found bool
	for _, op := range ops {
		if op.Kind == operation.InstanceMethod && len(op.InputTypes) == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Translate method among producers for *point, got %d ops", len(ops))
	}
}

func TestProducers_RejectsAbstractConstructor(t *testing.T) {
	cat := catalog.New()

	type iface interface{ M() }
	ifaceType := reflect.TypeOf((*iface)(nil)).Elem()
	ops := Producers(cat, types.Of(ifaceType), nil, nil)
	for _, op := range ops {
		if op.Kind == operation.Constructor {
			t.Fatalf("did not expect a constructor for an interface type")
		}
	}
}

func TestProducers_EmptyForPrimitive(t *testing.T) {
	cat := catalog.New()
	ops := Producers(cat, types.OfValue(0), nil, nil)
	if len(ops) != 0 {
		t.Fatalf("expected no producers for a primitive target, got %d", len(ops))
	}
}

// wrapped is only producible through a factory taking a *wrapper, and
// wrapped has no methods — so the search reaches *wrapper only if a
// registered constructor's own parameter types are enqueued into the BFS,
// not just those of enumerated methods.
type wrapped struct{ W *wrapper }
type wrapper struct{ V int }

func newWrapped(w *wrapper) *wrapped { return &wrapped{W: w} }

func TestProducers_EnqueuesRegisteredConstructorParams(t *testing.T) {
	cat := catalog.New()
	if err := cat.RegisterFactory(newWrapped, operation.Constructor); err != nil {
		t.Fatalf("RegisterFactory: %v", err)
	}

	ops := Producers(cat, types.OfValue(&wrapped{}), nil, nil)

	var sawWrappedCtor bool
	for _, op := range ops {
		if op.Kind == operation.Constructor && op.ReturnType == types.OfValue(&wrapped{}) {
			sawWrappedCtor = true
		}
	}
	if !sawWrappedCtor {
		t.Fatalf("expected newWrapped among producers for *wrapped")
	}

	tr := trackers.New()
	Producers(cat, types.OfValue(&wrapped{}), nil, tr)

	var touchedWrapper bool
	for _, ut := range tr.Unspecified() {
		if ut == types.OfValue(&wrapper{}) {
			touchedWrapper = true
		}
	}
	if !touchedWrapper {
		t.Fatalf("expected *wrapper to be enqueued and touched via newWrapped's parameter, tracked as unspecified")
	}
}

func TestProducers_NullaryConstructorHasNoInputs(t *testing.T) {
	type empty struct{}
	cat := catalog.New()
	ops := Producers(cat, types.OfValue(empty{}), nil, nil)

	var nullary bool
	for _, op := range ops {
		if op.Kind == operation.Constructor && len(op.InputTypes) == 0 {
			nullary = true
		}
	}
	if !nullary {
		t.Fatalf("expected an implicit nullary constructor for empty struct")
	}
}
