package classify

import "github.com/tambeta/juice/grid"

// Delta grid cell values (spec.md §4.5): a cell is either plain land/river,
// a sea cell absorbed into a delta (DeltaCellSea), or a river cell draining
// into one (DeltaCellRiver).
const (
	DeltaCellNone uint8 = iota
	DeltaCellSea
	DeltaCellRiver
)

// deltaDirections mirrors grid's N,E,S,W edge offsets paired with the
// outflow archetype each direction implies.
var deltaDirections = []struct {
	dx, dy int
	id     uint64
}{
	{0, -1, DeltaOutflowN},
	{1, 0, DeltaOutflowE},
	{0, 1, DeltaOutflowS},
	{-1, 0, DeltaOutflowW},
}

// ClassifyDelta assigns each DeltaCellRiver cell in deltaGrid the outflow
// direction of its adjacent DeltaCellSea cell (spec.md §4.5). A river cell
// is expected to have exactly one such neighbor; if more than one qualifies,
// the first in N,E,S,W order wins.
func ClassifyDelta(deltaGrid *grid.Grid) *grid.ClassGrid {
	cls := grid.NewClassGrid(deltaGrid.N)

	for y := 0; y < deltaGrid.N; y++ {
		for x := 0; x < deltaGrid.N; x++ {
			if deltaGrid.At(x, y) != DeltaCellRiver {
				continue
			}
			for _, d := range deltaDirections {
				if deltaGrid.At(x+d.dx, y+d.dy) == DeltaCellSea {
					cls.Set(x, y, d.id)
					break
				}
			}
		}
	}

	return cls
}
