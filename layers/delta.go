package layers

import (
	"github.com/tambeta/juice/classify"
	"github.com/tambeta/juice/grid"
)

// DeltaLayer marks the sea/river transition (spec.md §4.5): river cells
// lying on sea cells become delta-sea mouths, and the river cells adjacent
// to those mouths become delta-river cells. Mutates the River layer's grid
// and classification in place, as the spec requires.
type DeltaLayer struct{}

func (DeltaLayer) Kind() Kind       { return KindDelta }
func (DeltaLayer) Requires() []Kind { return []Kind{KindSea, KindRiver} }

func (DeltaLayer) Generate(ctx *Context) (*Output, error) {
	sea := ctx.Outputs[KindSea].Grid
	riverOut := ctx.Outputs[KindRiver]
	river := riverOut.Grid

	delta := grid.New(ctx.N)
	for y := 0; y < ctx.N; y++ {
		for x := 0; x < ctx.N; x++ {
			if sea.At(x, y) != 0 && river.At(x, y) != 0 {
				delta.Set(x, y, classify.DeltaCellSea)
				river.Set(x, y, 0)
				riverOut.Class.Set(x, y, classify.LineEmpty)
			}
		}
	}

	conv := delta.Convolve([3][3]int{
		{0, 1, 0},
		{1, 0, 1},
		{0, 1, 0},
	})

	for y := 0; y < ctx.N; y++ {
		for x := 0; x < ctx.N; x++ {
			if river.At(x, y) != 0 && conv.At(x, y) > 0 {
				delta.Set(x, y, classify.DeltaCellRiver)
			}
		}
	}

	cls := classify.ClassifyDelta(delta)
	return &Output{Grid: delta, Class: cls}, nil
}
