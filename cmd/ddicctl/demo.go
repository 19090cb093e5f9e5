package main

import (
	"ddic/internal/ddic/catalog"
	"ddic/internal/ddic/operation"
	"ddic/internal/ddic/types"
)

// Rect and Label are the demo domain's two classes under test. Neither is
// reachable from the standard library, so everything ddicctl constructs
// comes from producer discovery walking these two types plus the literal
// seeds buildDemoCatalog registers.

type Rect struct {
	W, H int
}

func NewRect(w, h int) *Rect {
	return &Rect{W: w, H: h}
}

func (r *Rect) Area() int {
	return r.W * r.H
}

func (r *Rect) Scale(factor int) *Rect {
	return &Rect{W: r.W * factor, H: r.H * factor}
}

type Label struct {
	Text string
}

func NewLabel(text string) *Label {
	return &Label{Text: text}
}

func (l *Label) Describe(r *Rect) string {
	return l.Text
}

// buildDemoCatalog registers the demo domain's named types and factories,
// plus a starter set of primitive literals so a first Construct call has
// something to draw inputs from.
func buildDemoCatalog() *catalog.Catalog {
	cat := catalog.New()

	rectType := types.OfValue(&Rect{})
	labelType := types.OfValue(&Label{})
	_ = cat.RegisterType("Rect", rectType)
	_ = cat.RegisterType("Label", labelType)

	_ = cat.RegisterFactory(NewRect, operation.Constructor)
	_ = cat.RegisterFactory(NewLabel, operation.Constructor)

	cat.RegisterLiteral(types.OfValue(0), 3)
	cat.RegisterLiteral(types.OfValue(""), "demo")

	return cat
}
