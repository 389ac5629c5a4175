package roads

import (
	"container/heap"
	"math"

	"github.com/tambeta/juice/grid"
)

var edgeOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Dijkstra runs single-source shortest path from start over w, 4-connected.
// Entering a cell already marked in roadGrid costs the flat roadCost reuse
// incentive; otherwise it costs w's terrain weight plus elevPenalty times
// the elevation difference against the cell being left (spec.md §4.8).
// roadCost and elevPenalty come from the caller's config.Config so a
// generation run can vary them (config.DefaultMPRoad / DefaultMPPenaltyElev
// are only the spec's defaults). Every edge cost is non-negative given
// those defaults, so a standard binary-heap Dijkstra is sufficient — no
// Bellman-Ford fallback is needed.
func Dijkstra(w *WeightField, heights, roadGrid *grid.Grid, start [2]int, roadCost, elevPenalty float64) []float64 {
	n := w.N
	dist := make([]float64, n*n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	idx := func(x, y int) int { return y*n + x }
	dist[idx(start[0], start[1])] = 0

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &item{x: start[0], y: start[1], priority: 0})

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*item)
		cx, cy := cur.x, cur.y
		curDist := dist[idx(cx, cy)]
		if cur.priority > curDist {
			continue // stale entry, a shorter path was already relaxed
		}

		for _, d := range edgeOffsets {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || ny < 0 || nx >= n || ny >= n {
				continue
			}

			var cost float64
			if roadGrid.At(nx, ny) != 0 {
				cost = roadCost
			} else {
				weight := w.At(nx, ny)
				if math.IsInf(weight, 1) {
					continue
				}
				elevDiff := math.Abs(float64(heights.At(cx, cy)) - float64(heights.At(nx, ny)))
				cost = weight + elevPenalty*elevDiff
			}

			nd := curDist + cost
			if nd < dist[idx(nx, ny)] {
				dist[idx(nx, ny)] = nd
				heap.Push(pq, &item{x: nx, y: ny, priority: nd})
			}
		}
	}

	return dist
}

// TracePath reconstructs a path from end back to start by greedy descent in
// the distance field computed by Dijkstra: at each step, move to the
// 4-neighbor with strictly lower recorded distance (spec.md §4.8). Returns
// nil if end is unreachable from start — the Unreachable non-error case of
// spec.md §7, silently dropped by the caller.
func TracePath(dist []float64, n int, start, end [2]int) [][2]int {
	idx := func(x, y int) int { return y*n + x }
	if math.IsInf(dist[idx(end[0], end[1])], 1) {
		return nil
	}

	path := [][2]int{end}
	cx, cy := end[0], end[1]
	for cx != start[0] || cy != start[1] {
		bestD := dist[idx(cx, cy)]
		bx, by := cx, cy
		for _, d := range edgeOffsets {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || ny < 0 || nx >= n || ny >= n {
				continue
			}
			if dist[idx(nx, ny)] < bestD {
				bestD = dist[idx(nx, ny)]
				bx, by = nx, ny
			}
		}
		if bx == cx && by == cy {
			return nil
		}
		cx, cy = bx, by
		path = append(path, [2]int{cx, cy})
	}

	return path
}
