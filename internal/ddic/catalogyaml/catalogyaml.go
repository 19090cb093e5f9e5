// Package catalogyaml loads a YAML configuration describing a Construct
// run: which catalog-registered type names to seed producer discovery with,
// which primitive literals to seed the pool with (the config-driven
// alternative to bytecode literal mining), and the run's query flags.
//
// Two forms are supported, mirroring the devshell DSL's dual-form
// convention:
//   - Mapping form (preferred): a mapping with "specified", "literals", and
//     "options" keys.
//   - Shorthand form: a bare sequence of specified type names, options left
//     at their defaults.
package catalogyaml

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"ddic/internal/ddic/catalog"
	"ddic/internal/ddic/types"
)

// ErrUnknownLiteralType is returned when a literal entry names a type
// catalogyaml does not know how to construct a zero value for.
var ErrUnknownLiteralType = errors.New("unknown literal type")

// LiteralSeed is one host-seeded literal value, the config-driven
// replacement for bytecode literal mining.
type LiteralSeed struct {
	Type  string      `yaml:"type"`
	Value interface{} `yaml:"value"`
}

// RunOptions mirrors ddic.Options' query flags and statement timeout, kept
// separate so this package does not import the root ddic package (it is a
// leaf consumed by ddic's callers, not by ddic itself).
type RunOptions struct {
	ExactTypeMatch     bool `yaml:"exactTypeMatch"`
	OnlyReceivers      bool `yaml:"onlyReceivers"`
	StatementTimeoutMs int  `yaml:"statementTimeoutMs"`
}

// Document is the parsed configuration.
type Document struct {
	Specified []string
	Literals  []LiteralSeed
	Options   RunOptions
}

// yamlDocument is the mapping-form parsing struct.
type yamlDocument struct {
	Specified []string      `yaml:"specified,omitempty"`
	Literals  []LiteralSeed `yaml:"literals,omitempty"`
	Options   RunOptions    `yaml:"options,omitempty"`
}

// Parse parses a YAML document in either mapping or shorthand form.
func Parse(in []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(in, &root); err != nil {
		return Document{}, fmt.Errorf("phase=parse: %w", err)
	}
	if len(root.Content) == 0 {
		return Document{}, fmt.Errorf("phase=parse: empty YAML")
	}
	body := root.Content[0]

	switch body.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := body.Decode(&names); err != nil {
			return Document{}, fmt.Errorf("phase=parse: %w", err)
		}
		return Document{Specified: names}, nil

	case yaml.MappingNode:
		var yd yamlDocument
		if err := body.Decode(&yd); err != nil {
			return Document{}, fmt.Errorf("phase=parse: %w", err)
		}
		return Document{Specified: yd.Specified, Literals: yd.Literals, Options: yd.Options}, nil

	default:
		return Document{}, fmt.Errorf("phase=parse: unexpected YAML root kind: %d", body.Kind)
	}
}

// StatementTimeout converts Options.StatementTimeoutMs to a time.Duration,
// returning zero (the caller's default) when unset.
func (o RunOptions) StatementTimeout() time.Duration {
	if o.StatementTimeoutMs <= 0 {
		return 0
	}
	return time.Duration(o.StatementTimeoutMs) * time.Millisecond
}

// Apply registers every literal seed in doc against cat and reports the
// specified class names, ready to hand to ddic.Options.SpecifiedClasses. It
// does not itself resolve those names against cat — Construct does that and
// surfaces ConfigurationError on a miss, exactly as if the names had been
// passed in by any other caller.
func Apply(cat *catalog.Catalog, doc Document) ([]string, error) {
	for _, lit := range doc.Literals {
		t, value, err := literalType(lit)
		if err != nil {
			return nil, fmt.Errorf("phase=catalogyaml path=literals: %w", err)
		}
		cat.RegisterLiteral(t, value)
	}
	return doc.Specified, nil
}

// literalType maps a LiteralSeed's declared type name to a primitive Type
// and a value of the matching Go kind, the set catalogyaml can construct
// without running arbitrary host code.
func literalType(lit LiteralSeed) (types.Type, interface{}, error) {
	switch lit.Type {
	case "int":
		n, ok := lit.Value.(int)
		if !ok {
			if f, isFloat := lit.Value.(float64); isFloat {
				n = int(f)
			} else {
				return types.Type{}, nil, fmt.Errorf("literal %v is not an int", lit.Value)
			}
		}
		return types.OfValue(0), n, nil
	case "int64":
		n, ok := lit.Value.(int)
		if !ok {
			if f, isFloat := lit.Value.(float64); isFloat {
				n = int(f)
			} else {
				return types.Type{}, nil, fmt.Errorf("literal %v is not an int64", lit.Value)
			}
		}
		return types.OfValue(int64(0)), int64(n), nil
	case "float64":
		f, ok := lit.Value.(float64)
		if !ok {
			return types.Type{}, nil, fmt.Errorf("literal %v is not a float64", lit.Value)
		}
		return types.OfValue(float64(0)), f, nil
	case "bool":
		b, ok := lit.Value.(bool)
		if !ok {
			return types.Type{}, nil, fmt.Errorf("literal %v is not a bool", lit.Value)
		}
		return types.OfValue(false), b, nil
	case "string":
		s, ok := lit.Value.(string)
		if !ok {
			return types.Type{}, nil, fmt.Errorf("literal %v is not a string", lit.Value)
		}
		return types.OfValue(""), s, nil
	default:
		return types.Type{}, nil, fmt.Errorf("%w: %s", ErrUnknownLiteralType, lit.Type)
	}
}
