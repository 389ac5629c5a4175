package classify

import "github.com/tambeta/juice/grid"

// mask is the working foreground/background matrix the fixed-point loop
// mutates in place. Cells demoted to background during classification are
// recorded so the caller can reflect the change back onto the source layer
// grid: ClassifySolid writes them as 0xFE in reversed mode and 0 in normal
// mode; ClassifyLine does not report them.
type mask struct {
	n       int
	cells   []bool
	pad     PadMode
	removed [][2]int
}

func newMask(n int, pad PadMode) *mask {
	return &mask{n: n, cells: make([]bool, n*n), pad: pad}
}

func (m *mask) rawAt(x, y int) bool {
	if x < 0 || y < 0 || x >= m.n || y >= m.n {
		return false
	}
	return m.cells[y*m.n+x]
}

func (m *mask) rawSet(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.n || y >= m.n {
		return
	}
	m.cells[y*m.n+x] = v
}

// at reads a (possibly out-of-bounds) position honoring the pad mode.
func (m *mask) at(x, y int) bool {
	if x >= 0 && y >= 0 && x < m.n && y < m.n {
		return m.cells[y*m.n+x]
	}
	switch m.pad {
	case PadZero:
		return false
	default: // PadReplicateEdge
		cx, cy := x, y
		if cx < 0 {
			cx = 0
		}
		if cx >= m.n {
			cx = m.n - 1
		}
		if cy < 0 {
			cy = 0
		}
		if cy >= m.n {
			cy = m.n - 1
		}
		return m.cells[cy*m.n+cx]
	}
}

func (m *mask) window(x, y int) [3][3]bool {
	var w [3][3]bool
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			w[dy+1][dx+1] = m.at(x+dx, y+dy)
		}
	}
	return w
}

// demote clears a foreground cell to background and remembers its position.
func (m *mask) demote(x, y int) {
	if m.rawAt(x, y) {
		m.removed = append(m.removed, [2]int{x, y})
	}
	m.rawSet(x, y, false)
}

func allTrue(w [3][3]bool) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !w[i][j] {
				return false
			}
		}
	}
	return true
}

// runFixedPoint iterates the tile-spec list to a fixed point over m,
// producing a classification grid. checkSolid enables the "fully interior"
// shortcut (Solid mode); naID/emptyID/solidID are the sentinel/archetype ids
// this classifier variant uses for unclassified-foreground, background, and
// solid-interior cells respectively (solidID is unused when checkSolid is
// false).
func runFixedPoint(m *mask, specs []TileSpec, checkSolid bool, naID, emptyID, solidID uint64) *grid.ClassGrid {
	n := m.n
	cls := grid.NewClassGrid(n)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if m.rawAt(x, y) {
				cls.Set(x, y, naID)
			} else {
				cls.Set(x, y, emptyID)
			}
		}
	}

	for {
		changed := false
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if cls.At(x, y) != naID {
					continue
				}
				w := m.window(x, y)

				if checkSolid && allTrue(w) {
					cls.Set(x, y, solidID)
					changed = true
					continue
				}

				if classifyOneCell(m, cls, specs, x, y, w, emptyID) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return cls
}

func classifyOneCell(m *mask, cls *grid.ClassGrid, specs []TileSpec, x, y int, w [3][3]bool, emptyID uint64) bool {
	nhood := neighborhoodTemplate(w)

	for _, spec := range specs {
		if spec.IsPredicate {
			if m.rawAt(x, y) && spec.Predicate(w) {
				m.demote(x, y)
				cls.Set(x, y, emptyID)
				return true
			}
			continue
		}

		tmpl := spec.Template
		for k := 0; k < spec.Rotations; k++ {
			if matches(tmpl, nhood) {
				cls.Set(x, y, spec.InitialID+uint64(k))
				return true
			}
			tmpl = rotate(tmpl)
		}
	}

	// No spec matched: demote to background (spec.md §4.9).
	m.demote(x, y)
	cls.Set(x, y, emptyID)
	return true
}
