// Package layers implements the ordered LayerStack of semantic layers and
// the six concrete generators (Sea, River, Delta, Biome, City, Road) that
// derive game-relevant grids from a heightmap (spec.md §4.3-§4.8).
//
// Grounded on world/worldmap/generator.go's MapGenerator interface and
// name-keyed registry: the teacher dispatches on a string-keyed map of
// algorithms, which generalizes directly to spec.md §9's "tagged variant /
// interface with kind-keyed stack lookup" design note for dynamic
// polymorphism across layers. terrainlayer.py's _check_requirements
// decorator-wrap becomes the Stack's explicit prerequisite check before each
// Generate call.
package layers

import (
	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/grid"
)

// Kind identifies a layer within a Stack, mirroring the teacher's
// string-keyed generator registry.
type Kind string

const (
	KindSea   Kind = "sea"
	KindRiver Kind = "river"
	KindDelta Kind = "delta"
	KindBiome Kind = "biome"
	KindCity  Kind = "city"
	KindRoad  Kind = "road"
)

// City is one settlement placed by the City layer.
type City struct {
	ID int
	X  int
	Y  int
}

// Output bundles what a layer produced: its labeled/feature grid and
// classification. Cities is only populated by the City layer.
type Output struct {
	Grid   *grid.Grid
	Class  *grid.ClassGrid
	Cities []City
}

// Generator is one layer's production rule: its kind, the kinds it depends
// on, and the function that derives its Output from already-generated
// layers plus the shared heightmap.
type Generator interface {
	Kind() Kind
	Requires() []Kind
	Generate(ctx *Context) (*Output, error)
}

// Stack is an insertion-ordered, duplicate-free collection of Generators,
// run front-to-back by Generate with each layer's declared prerequisites
// checked before it runs.
type Stack struct {
	order []Generator
	seen  map[Kind]bool
}

// NewStack returns an empty layer stack.
func NewStack() *Stack {
	return &Stack{seen: make(map[Kind]bool)}
}

// Add appends a generator to the stack. Adding the same Kind twice is a
// ConfigurationError.
func (s *Stack) Add(g Generator) error {
	if s.seen[g.Kind()] {
		return config.NewConfigurationError("duplicate layer kind %q", g.Kind())
	}
	s.seen[g.Kind()] = true
	s.order = append(s.order, g)
	return nil
}

// Kinds returns the stack's layers in insertion order.
func (s *Stack) Kinds() []Kind {
	out := make([]Kind, len(s.order))
	for i, g := range s.order {
		out[i] = g.Kind()
	}
	return out
}

// Generate runs every layer in insertion order, invoking progress after
// each one completes (spec.md §6). Each layer draws from its own
// RandomSource, derived from ctx.RS and the layer's Kind, so one layer's
// draws never shift another's sequence. A layer whose declared prerequisite is
// missing or not yet generated fails with a PrerequisiteError before its
// Generate method is ever called; any other error it returns propagates
// as-is. Either way the failing layer's slot in ctx.Outputs is left absent,
// never holding partial state (spec.md §7).
func (s *Stack) Generate(ctx *Context, progress func(Kind)) error {
	for _, g := range s.order {
		for _, req := range g.Requires() {
			if _, ok := ctx.Outputs[req]; !ok {
				return config.NewPrerequisiteError("layer %q requires %q, which is missing or not yet generated", g.Kind(), req)
			}
		}

		layerCtx := *ctx
		layerCtx.RS = ctx.RS.Sub(string(g.Kind()))
		out, err := g.Generate(&layerCtx)
		if err != nil {
			delete(ctx.Outputs, g.Kind())
			return err
		}
		ctx.Outputs[g.Kind()] = out

		if progress != nil {
			progress(g.Kind())
		}
	}
	return nil
}
