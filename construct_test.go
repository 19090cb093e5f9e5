package ddic

import (
	"context"
	"math/rand"
	"reflect"
	"testing"

	"ddic/internal/ddic/catalog"
	"ddic/internal/ddic/operation"
	"ddic/internal/ddic/pool"
	"ddic/internal/ddic/trackers"
	"ddic/internal/ddic/types"
)

type point struct {
	X, Y int
}

func newPoint(x, y int) *point {
	return &point{X: x, Y: y}
}

// TestConstruct_EmptyPoolNoPrimitive mirrors Scenario B: a type whose sole
// producer needs a primitive the pool has never seen returns empty and
// leaves the pool empty, because the host is expected to seed primitive
// literals separately.
func TestConstruct_EmptyPoolNoPrimitive(t *testing.T) {
	cat := catalog.New()
	if err := cat.RegisterFactory(newPoint, operation.Constructor); err != nil {
		t.Fatalf("RegisterFactory: %v", err)
	}
	p := pool.New()

	got, err := Construct(context.Background(), cat, p, types.OfValue(&point{}), Options{Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected an empty result on the first call with no int in the pool, got %d", len(got))
	}
	if p.Size() != 0 {
		t.Fatalf("expected the pool to remain empty, got %d entries", p.Size())
	}
}

// TestConstruct_SeededPrimitiveProducesValue mirrors Scenario A: once the
// pool holds the primitive inputs a producer needs, Construct salvages a
// sequence and returns it.
func TestConstruct_SeededPrimitiveProducesValue(t *testing.T) {
	cat := catalog.New()
	if err := cat.RegisterFactory(newPoint, operation.Constructor); err != nil {
		t.Fatalf("RegisterFactory: %v", err)
	}
	intType := types.OfValue(0)
	cat.RegisterLiteral(intType, 3)

	p := pool.New()
	got, err := Construct(context.Background(), cat, p, types.OfValue(&point{}), Options{Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("expected a non-empty result once int literals are seeded")
	}
}

func TestConstruct_UnresolvedSpecifiedClassFails(t *testing.T) {
	cat := catalog.New()
	p := pool.New()

	_, err := Construct(context.Background(), cat, p, types.OfValue(0), Options{
		SpecifiedClasses: []string{"DoesNotExist"},
		Rand:             rand.New(rand.NewSource(1)),
	})
	if err == nil {
		t.Fatalf("expected a ConfigurationError for an unresolved specified class")
	}
}

func TestConstruct_UninstantiableTypeIsTracked(t *testing.T) {
	cat := catalog.New()
	p := pool.New()
	tr := trackers.New()

	type emptyIface interface{}
	iface := types.Of(reflect.TypeOf((*emptyIface)(nil)).Elem())
	_, err := Construct(context.Background(), cat, p, iface, Options{Trackers: tr, Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, ut := range tr.Uninstantiable() {
		if ut == iface {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an interface type with no producers to be recorded as uninstantiable")
	}
}
