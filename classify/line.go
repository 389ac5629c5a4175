package classify

import "github.com/tambeta/juice/grid"

// ClassifyLine classifies a 1-cell-thick linear feature layer (rivers) into
// the closed Line archetype set: straight runs, sources, corners, T-bones,
// and four-way crossings (spec.md §4.9). Unlike ClassifySolid there is no
// sliver removal and no SOLID-interior shortcut — a line has no interior.
func ClassifyLine(layer *grid.Grid, pad PadMode) *grid.ClassGrid {
	m := buildMask(layer, func(v uint8) bool { return v != 0 }, pad)
	return runFixedPoint(m, lineSpecs, false, lineNA, LineEmpty, 0)
}
