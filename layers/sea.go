package layers

import (
	"github.com/tambeta/juice/classify"
	"github.com/tambeta/juice/grid"
)

// SeaLayer labels the low-elevation cells of the heightmap into sea
// components, discarding any segment below ctx.Cfg.MinSeaSize (spec.md
// §4.3). Grounded on terrainlayer.py's SeaLayer.generate — a flat threshold
// plus the shared connected-component filter.
type SeaLayer struct{}

func (SeaLayer) Kind() Kind       { return KindSea }
func (SeaLayer) Requires() []Kind { return nil }

func (SeaLayer) Generate(ctx *Context) (*Output, error) {
	candidate := grid.New(ctx.N)
	for y := 0; y < ctx.N; y++ {
		for x := 0; x < ctx.N; x++ {
			if int(ctx.Heights.At(x, y)) <= ctx.Cfg.SeaThreshold {
				candidate.Set(x, y, 1)
			}
		}
	}

	labels, _ := candidate.Label(ctx.Cfg.MinSeaSize)

	// Sea's classifier is the reversed Solid classifier: land (value == 0)
	// is the shape being classified, sea itself is background (spec.md
	// §4.3). The classifier's own demoted-cell sentinel (0xFE) would
	// corrupt the SeaGrid's label contract if applied here, so only the
	// classification is kept; labels remains the authoritative grid.
	cls, _ := classify.ClassifySolid(labels, true, classify.PadReplicateEdge)

	return &Output{Grid: labels, Class: cls}, nil
}
