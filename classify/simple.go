package classify

import "github.com/tambeta/juice/grid"

// ClassifySimple is the passthrough classifier for binary features (cities)
// that have no shape to speak of: every non-zero cell is SimpleOccupied,
// every zero cell is SimpleEmpty.
func ClassifySimple(layer *grid.Grid) *grid.ClassGrid {
	cls := grid.NewClassGrid(layer.N)
	for i, v := range layer.Cells {
		if v != 0 {
			cls.Cells[i] = SimpleOccupied
		}
	}
	return cls
}
