package classify

import "github.com/tambeta/juice/grid"

// ClassifySolid classifies an areal feature layer (sea, biomes) into the
// closed Solid archetype set: EMPTY/NA background, SOLID interior, four
// STRAIGHT edges, four CONVEX corners, four CONCAVE corners (spec.md §4.9).
//
// When reversed is true the layer's background (zero cells) is the shape
// being classified instead of its foreground — the Sea layer's classifier,
// which treats land as foreground and sea as background (spec.md §4.3).
//
// Returns the classification grid and a copy of layer with any cell that
// never matched an archetype written as 0xFE in reversed mode or 0
// otherwise (spec.md §9, Open Question 2: the sentinel distinction is kept
// because the two modes start from different foreground polarities).
func ClassifySolid(layer *grid.Grid, reversed bool, pad PadMode) (*grid.ClassGrid, *grid.Grid) {
	foreground := func(v uint8) bool { return v != 0 }
	if reversed {
		foreground = func(v uint8) bool { return v == 0 }
	}

	m := buildMask(layer, foreground, pad)
	cls := runFixedPoint(m, solidSpecs, true, solidNA, SolidEmpty, SolidSolid)

	out := layer.Clone()
	sentinel := uint8(0)
	if reversed {
		sentinel = 0xFE
	}
	for _, p := range m.removed {
		out.Set(p[0], p[1], sentinel)
	}

	return cls, out
}

func buildMask(layer *grid.Grid, foreground func(uint8) bool, pad PadMode) *mask {
	m := newMask(layer.N, pad)
	for y := 0; y < layer.N; y++ {
		for x := 0; x < layer.N; x++ {
			if foreground(layer.At(x, y)) {
				m.rawSet(x, y, true)
			}
		}
	}
	return m
}
