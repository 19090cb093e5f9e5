// Package catalog is the Go-specific half of the spec's "Reflection
// contract" (§6): Go has no runtime way to enumerate package-level
// constructors or free functions, so a Catalog holds everything discovery
// cannot get from reflect.Type alone — named types (for resolving
// SpecifiedClasses from config), factory functions, and host-seeded
// literals.
//
// It mirrors the teacher's dsl.Registry: a name keyed map, populated once
// before use, looked up during the search.
package catalog

import (
	"errors"
	"fmt"
	"reflect"

	"ddic/internal/ddic/operation"
	"ddic/internal/ddic/types"
)

// ErrTypeAlreadyRegistered is returned by RegisterType for a duplicate name.
var ErrTypeAlreadyRegistered = errors.New("type already registered")

// ErrUnresolvedType is returned when a configured name has no registered Type.
var ErrUnresolvedType = errors.New("unresolved type name")

// Catalog holds named types and registered producers.
type Catalog struct {
	names map[string]types.Type

	// byReturnType indexes registered factory/literal producers by the
	// concrete type they return, so discovery can look them up for any
	// dequeued Type without a linear scan.
	byReturnType map[types.Type][]operation.TypedOperation
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{
		names:        make(map[string]types.Type),
		byReturnType: make(map[types.Type][]operation.TypedOperation),
	}
}

// RegisterType maps a user-facing name (as it would appear in a
// SpecifiedClasses config entry) to a Type.
func (c *Catalog) RegisterType(name string, t types.Type) error {
	if _, exists := c.names[name]; exists {
		return fmt.Errorf("%w: %s", ErrTypeAlreadyRegistered, name)
	}
	c.names[name] = t
	return nil
}

// Resolve looks up a previously registered type name. It returns
// ErrUnresolvedType — the Go analogue of Java's ClassNotFoundException —
// when the name is unknown, which the entry point surfaces as a
// ConfigurationError (§7).
func (c *Catalog) Resolve(name string) (types.Type, error) {
	t, ok := c.names[name]
	if !ok {
		return types.Type{}, fmt.Errorf("%w: %s", ErrUnresolvedType, name)
	}
	return t, nil
}

// RegisterFactory registers fn — any Go function — as a producer. Its
// return type is taken from the result just before a trailing error result,
// or from fn's first result when the last result is not an error; its
// declaring type is that same return type, since Go factory functions are
// not declared "on" anything.
//
// kind should be operation.Constructor for a "New*"-style factory or
// operation.StaticMethod for any other free function producer.
func (c *Catalog) RegisterFactory(fn interface{}, kind operation.Kind) error {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return fmt.Errorf("RegisterFactory: %v is not a function", v.Kind())
	}
	rt := v.Type()

	numOut := rt.NumOut()
	if numOut == 0 {
		return fmt.Errorf("RegisterFactory: function has no return value")
	}
	retIdx := 0
	if numOut > 1 && rt.Out(numOut-1) == errType {
		retIdx = numOut - 2
	}
	ret := types.Of(rt.Out(retIdx))

	inputs := make([]types.Type, rt.NumIn())
	for i := 0; i < rt.NumIn(); i++ {
		inputs[i] = types.Of(rt.In(i))
	}

	op := operation.New(ret, inputs, ret, kind, v)
	c.byReturnType[ret] = append(c.byReturnType[ret], op)
	return nil
}

// RegisterLiteral registers a host-seeded literal value as a zero-input
// NonreceiverInit producer for t — the config-driven substitute for
// bytecode literal mining (§ Scenario B: "the host is expected to seed
// primitive literals separately").
func (c *Catalog) RegisterLiteral(t types.Type, value interface{}) {
	literal := reflect.ValueOf(value)
	fn := reflect.MakeFunc(
		reflect.FuncOf(nil, []reflect.Type{t.Reflect()}, false),
		func(args []reflect.Value) []reflect.Value { return []reflect.Value{literal} },
	)
	op := operation.New(t, nil, t, operation.NonreceiverInit, fn)
	c.byReturnType[t] = append(c.byReturnType[t], op)
}

// ProducersReturning returns every catalog-registered producer (factory or
// literal) whose declared return type is exactly t. Discovery additionally
// walks t's own exported methods via reflect, which the catalog does not
// need to duplicate.
func (c *Catalog) ProducersReturning(t types.Type) []operation.TypedOperation {
	return append([]operation.TypedOperation(nil), c.byReturnType[t]...)
}

// Literals returns every registered NonreceiverInit producer — the
// host-seeded literals Construct promotes into the pool at the start of
// each call, standing in for the separate literal-seeding step Scenario B
// of the spec leaves to the host.
func (c *Catalog) Literals() []operation.TypedOperation {
	var out []operation.TypedOperation
	for _, ops := range c.byReturnType {
		for _, op := range ops {
			if op.Kind == operation.NonreceiverInit {
				out = append(out, op)
			}
		}
	}
	return out
}

// Names returns the registered name -> Type mapping, used to list
// SpecifiedClasses candidates in ddicctl.
func (c *Catalog) Names() map[string]types.Type {
	out := make(map[string]types.Type, len(c.names))
	for k, v := range c.names {
		out[k] = v
	}
	return out
}

var errType = reflect.TypeOf((*error)(nil)).Elem()
