// Package roads implements the road planner's weighted shortest-path search
// over a movement-cost field (spec.md §4.8): a binary-heap Dijkstra and
// greedy-descent path reconstruction.
//
// The priority queue is grounded on
// systems/ai_pathfinding_system.go's PriorityQueue (Item{value, priority,
// index} implementing container/heap.Interface) — the pack's only
// pathfinding precedent, and the reason this module reaches for
// container/heap rather than a third-party graph library: nothing in the
// corpus imports one.
package roads

// item is one entry in the open set: a grid cell and its tentative distance.
type item struct {
	x, y     int
	priority float64
	index    int
}

type priorityQueue []*item

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].priority < pq[j].priority
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]
	return it
}
