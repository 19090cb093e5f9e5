package catalogyaml

import (
	"testing"

	"ddic/internal/ddic/catalog"
	"ddic/internal/ddic/types"
)

func TestParse_ShorthandForm(t *testing.T) {
	doc, err := Parse([]byte("- Point\n- Widget\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Specified) != 2 || doc.Specified[0] != "Point" || doc.Specified[1] != "Widget" {
		t.Fatalf("unexpected Specified: %v", doc.Specified)
	}
}

func TestParse_MappingForm(t *testing.T) {
	src := `
specified:
  - Point
literals:
  - type: int
    value: 3
  - type: string
    value: hello
options:
  exactTypeMatch: true
  onlyReceivers: false
  statementTimeoutMs: 250
`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Specified) != 1 || doc.Specified[0] != "Point" {
		t.Fatalf("unexpected Specified: %v", doc.Specified)
	}
	if len(doc.Literals) != 2 {
		t.Fatalf("expected 2 literals, got %d", len(doc.Literals))
	}
	if !doc.Options.ExactTypeMatch {
		t.Fatalf("expected ExactTypeMatch true")
	}
	if doc.Options.StatementTimeout().Milliseconds() != 250 {
		t.Fatalf("expected a 250ms statement timeout, got %v", doc.Options.StatementTimeout())
	}
}

func TestApply_RegistersLiteralsAndReturnsSpecified(t *testing.T) {
	doc := Document{
		Specified: []string{"Point"},
		Literals: []LiteralSeed{
			{Type: "int", Value: 3},
			{Type: "string", Value: "hi"},
		},
	}
	cat := catalog.New()
	specified, err := Apply(cat, doc)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(specified) != 1 || specified[0] != "Point" {
		t.Fatalf("unexpected specified: %v", specified)
	}
	if len(cat.ProducersReturning(types.OfValue(0))) != 1 {
		t.Fatalf("expected the int literal to be registered")
	}
	if len(cat.ProducersReturning(types.OfValue(""))) != 1 {
		t.Fatalf("expected the string literal to be registered")
	}
}

func TestApply_UnknownLiteralTypeFails(t *testing.T) {
	doc := Document{Literals: []LiteralSeed{{Type: "duration", Value: "1s"}}}
	cat := catalog.New()
	if _, err := Apply(cat, doc); err == nil {
		t.Fatalf("expected an error for an unknown literal type")
	}
}
