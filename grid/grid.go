// Package grid implements the fixed-size square matrix that every generation
// layer reads and writes: indexed access, 4- and 8-connected neighbor
// iteration, connected-component labeling, and small-kernel convolution.
// Grounded on the teacher's world/worldmap neighbor-iteration and flood-fill
// helpers (gen_helpers.go: floodFillRegion, astar.go's edge-neighbor walk),
// generalized from a []bool terrain map to a byte-valued Grid and rewritten
// to return an explicit continue/stop sum type per spec.md §9 instead of the
// teacher's nonlocal-closure tallying style.
package grid

// WalkResult is returned by neighbor-iteration callbacks to signal whether
// the walk should continue or stop early.
type WalkResult int

const (
	Continue WalkResult = iota
	Stop
)

// Grid is a fixed-size N x N matrix of byte-valued cells, stored row-major
// and addressed by (x, y) with origin at upper-left.
type Grid struct {
	N     int
	Cells []uint8
}

// New allocates a zeroed Grid of side n.
func New(n int) *Grid {
	return &Grid{N: n, Cells: make([]uint8, n*n)}
}

func (g *Grid) index(x, y int) int { return y*g.N + x }

// InBounds reports whether (x, y) addresses a valid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.N && y < g.N
}

// At returns the cell value at (x, y). Out-of-bounds reads return 0.
func (g *Grid) At(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.Cells[g.index(x, y)]
}

// Set writes v to (x, y). Out-of-bounds writes are silently ignored.
func (g *Grid) Set(x, y int, v uint8) {
	if !g.InBounds(x, y) {
		return
	}
	g.Cells[g.index(x, y)] = v
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := New(g.N)
	copy(c.Cells, g.Cells)
	return c
}

// Clear zeroes every cell.
func (g *Grid) Clear() {
	for i := range g.Cells {
		g.Cells[i] = 0
	}
}

// ForEachNonZero invokes cb for every cell whose value is non-zero, in
// row-major order.
func (g *Grid) ForEachNonZero(cb func(x, y int, v uint8)) {
	for y := 0; y < g.N; y++ {
		for x := 0; x < g.N; x++ {
			if v := g.At(x, y); v != 0 {
				cb(x, y, v)
			}
		}
	}
}

// ForEachInRect invokes cb for every cell in the rectangular sub-region
// [x0, x1) x [y0, y1), clamped to the grid bounds, in row-major order.
func (g *Grid) ForEachInRect(x0, y0, x1, y1 int, cb func(x, y int, v uint8)) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > g.N {
		x1 = g.N
	}
	if y1 > g.N {
		y1 = g.N
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cb(x, y, g.At(x, y))
		}
	}
}

// edgeOffsets lists the 4-connected neighbor deltas in N, E, S, W order.
var edgeOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// fullOffsets lists the 8-connected neighbor deltas: edges followed by the
// four diagonals NE, SE, SW, NW.
var fullOffsets = [8][2]int{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// ForEachEdgeNeighbor invokes cb for each in-bounds 4-connected neighbor of
// (x, y), in N, E, S, W order. It stops early if cb returns Stop, and reports
// whether it ran to completion (false if cb requested an early stop).
func (g *Grid) ForEachEdgeNeighbor(x, y int, cb func(nx, ny int, v uint8) WalkResult) bool {
	for _, d := range edgeOffsets {
		nx, ny := x+d[0], y+d[1]
		if !g.InBounds(nx, ny) {
			continue
		}
		if cb(nx, ny, g.At(nx, ny)) == Stop {
			return false
		}
	}
	return true
}

// ForEachNeighbor invokes cb for each in-bounds 8-connected neighbor of
// (x, y), edges first (N, E, S, W) then diagonals (NE, SE, SW, NW). It stops
// early if cb returns Stop, and reports whether it ran to completion.
func (g *Grid) ForEachNeighbor(x, y int, cb func(nx, ny int, v uint8) WalkResult) bool {
	for _, d := range fullOffsets {
		nx, ny := x+d[0], y+d[1]
		if !g.InBounds(nx, ny) {
			continue
		}
		if cb(nx, ny, g.At(nx, ny)) == Stop {
			return false
		}
	}
	return true
}

// Label performs 4-connected flood-fill connected-component labeling over
// the non-zero cells of g, assigning consecutive ids 1..K in the order
// components are first encountered (row-major scan order). Components with
// fewer than minSize cells are zeroed out of the returned label grid; their
// id slot is left unused (labels are not renumbered afterwards), matching
// spec.md §4 invariants.
func (g *Grid) Label(minSize int) (labels *Grid, numLabels int) {
	labels = New(g.N)
	visited := make([]bool, g.N*g.N)
	nextID := 1

	queue := make([][2]int, 0, g.N)
	for y := 0; y < g.N; y++ {
		for x := 0; x < g.N; x++ {
			idx := g.index(x, y)
			if visited[idx] || g.Cells[idx] == 0 {
				continue
			}

			id := nextID
			nextID++
			queue = queue[:0]
			queue = append(queue, [2]int{x, y})
			visited[idx] = true
			members := make([][2]int, 0, 16)

			for len(queue) > 0 {
				p := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				members = append(members, p)
				labels.Set(p[0], p[1], uint8(id))

				g.ForEachEdgeNeighbor(p[0], p[1], func(nx, ny int, v uint8) WalkResult {
					nidx := g.index(nx, ny)
					if !visited[nidx] && v != 0 {
						visited[nidx] = true
						queue = append(queue, [2]int{nx, ny})
					}
					return Continue
				})
			}

			if len(members) < minSize {
				for _, p := range members {
					labels.Set(p[0], p[1], 0)
				}
			}
		}
	}

	return labels, nextID - 1
}

// Convolve applies the given 3x3 integer kernel to g in same-mode (the
// output grid has the same size as g; out-of-bounds source cells contribute
// 0). Results are clamped to [0, 255].
func (g *Grid) Convolve(kernel [3][3]int) *Grid {
	out := New(g.N)
	for y := 0; y < g.N; y++ {
		for x := 0; x < g.N; x++ {
			sum := 0
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					w := kernel[ky+1][kx+1]
					if w == 0 {
						continue
					}
					sum += w * int(g.At(x+kx, y+ky))
				}
			}
			if sum < 0 {
				sum = 0
			}
			if sum > 255 {
				sum = 255
			}
			out.Set(x, y, uint8(sum))
		}
	}
	return out
}
