package layers

import (
	"github.com/tambeta/juice/classify"
	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/grid"
)

// BiomeLayer labels mid-elevation, dry, non-coastal land into forest/desert
// patches, each patch receiving a single uniformly-random archetype (spec.md
// §4.6). Grounded on gen_overworld.go's classifyBiomes/determineBiome for
// the "label then assign one archetype per component" shape, adapted from
// elevation+moisture bands to the spec's elevation-window + adjacency rule.
type BiomeLayer struct{}

func (BiomeLayer) Kind() Kind       { return KindBiome }
func (BiomeLayer) Requires() []Kind { return []Kind{KindSea, KindRiver} }

func (BiomeLayer) Generate(ctx *Context) (*Output, error) {
	n := ctx.N
	sea := ctx.Outputs[KindSea].Grid
	river := ctx.Outputs[KindRiver].Grid

	seaMask := grid.New(n)
	for i, v := range sea.Cells {
		if v != 0 {
			seaMask.Cells[i] = 1
		}
	}
	seaSum := seaMask.Convolve([3][3]int{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})

	candidate := grid.New(n)
	lo := ctx.Cfg.SeaThreshold + ctx.Cfg.BiomeHDelta
	hi := ctx.Cfg.MountainThreshold - ctx.Cfg.BiomeHDelta
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			h := int(ctx.Heights.At(x, y))
			if h <= lo || h >= hi {
				continue
			}
			if river.At(x, y) != 0 || sea.At(x, y) != 0 {
				continue
			}
			if seaSum.At(x, y) != 0 {
				continue
			}
			candidate.Set(x, y, 1)
		}
	}

	labels, numLabels := candidate.Label(ctx.Cfg.MinBiomeSize)

	biome := grid.New(n)
	for id := 1; id <= numLabels; id++ {
		present := false
		for _, v := range labels.Cells {
			if v == uint8(id) {
				present = true
				break
			}
		}
		if !present {
			continue
		}

		archetype := config.BiomeForest
		if ctx.RS.Float01() < 0.5 {
			archetype = config.BiomeDesert
		}
		for i, v := range labels.Cells {
			if v == uint8(id) {
				biome.Cells[i] = archetype
			}
		}
	}

	cls, out := classify.ClassifySolid(biome, false, classify.PadReplicateEdge)
	return &Output{Grid: out, Class: cls}, nil
}
