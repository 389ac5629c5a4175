package layers

import (
	"sort"

	"github.com/tambeta/juice/classify"
	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/grid"
	"github.com/tambeta/juice/randsrc"
)

// RiverLayer grows rivers from high-elevation sources down to the sea (or
// to convergence with another river), per spec.md §4.4. Grounded on
// terrainlayer.py's RiverLayer._generate_river /
// _confirm_square_ok / _is_square_converging / _delete_river, generalized
// from the Python's nonlocal-closure neighbor scan to grid.Grid's
// continue/stop neighbor iterators.
type RiverLayer struct{}

func (RiverLayer) Kind() Kind       { return KindRiver }
func (RiverLayer) Requires() []Kind { return []Kind{KindSea} }

func (RiverLayer) Generate(ctx *Context) (*Output, error) {
	sea := ctx.Outputs[KindSea].Grid

	var sources [][2]int
	for y := 0; y < ctx.N; y++ {
		for x := 0; x < ctx.N; x++ {
			if int(ctx.Heights.At(x, y)) >= ctx.Cfg.MountainThreshold {
				sources = append(sources, [2]int{x, y})
			}
		}
	}

	rs := ctx.RS
	rs.Shuffle(len(sources), func(i, j int) { sources[i], sources[j] = sources[j], sources[i] })

	// want is deliberately left uncapped at Cfg.MaxRiverID here: capacity is
	// enforced where it actually binds, inside the growth loop below, so
	// that a config producing more eligible sources than ids can fail with
	// CapacityError instead of silently truncating the source list.
	want := int(float64(len(sources)) * ctx.Cfg.RiverDensity)
	if want < ctx.Cfg.MinRiverSources {
		want = ctx.Cfg.MinRiverSources
	}
	if want > len(sources) {
		want = len(sources)
	}
	sources = sources[:want]

	river := grid.New(ctx.N)
	nextID := 1
	for _, src := range sources {
		if nextID > ctx.Cfg.MaxRiverID {
			return nil, config.NewCapacityError("river generation exceeded the %d-id capacity", ctx.Cfg.MaxRiverID)
		}
		if growRiver(river, ctx.Heights, sea, rs, src, uint8(nextID)) {
			nextID++
		}
	}

	cls := classify.ClassifyLine(river, classify.PadZero)
	return &Output{Grid: river, Class: cls}, nil
}

// growRiver walks a single river from src, mutating river in place, and
// reports whether it reached a terminus (sea or convergence) rather than
// dying at a dead end.
func growRiver(river, heights, sea *grid.Grid, rs *randsrc.RandomSource, src [2]int, id uint8) bool {
	x, y := src[0], src[1]

	if river.At(x, y) != 0 {
		return false
	}
	startOK := river.ForEachEdgeNeighbor(x, y, func(_, _ int, v uint8) grid.WalkResult {
		if v != 0 {
			return grid.Stop
		}
		return grid.Continue
	})
	if !startOK {
		return false
	}

	cx, cy := x, y
	for {
		river.Set(cx, cy, id)

		if sea.At(cx, cy) != 0 {
			return true
		}

		converged := false
		river.ForEachEdgeNeighbor(cx, cy, func(_, _ int, v uint8) grid.WalkResult {
			if v != 0 && v != id {
				converged = true
				return grid.Stop
			}
			return grid.Continue
		})
		if converged {
			return true
		}

		type candidate struct {
			x, y int
			h    uint8
		}
		var candidates []candidate
		river.ForEachEdgeNeighbor(cx, cy, func(nx, ny int, v uint8) grid.WalkResult {
			if v == id {
				return grid.Continue
			}
			touch := 0
			river.ForEachEdgeNeighbor(nx, ny, func(_, _ int, v2 uint8) grid.WalkResult {
				if v2 == id {
					touch++
				}
				return grid.Continue
			})
			if touch <= 1 {
				candidates = append(candidates, candidate{nx, ny, heights.At(nx, ny)})
			}
			return grid.Continue
		})

		if len(candidates) == 0 {
			eraseRiver(river, id)
			return false
		}

		rs.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].h < candidates[j].h })

		cx, cy = candidates[0].x, candidates[0].y
	}
}

func eraseRiver(river *grid.Grid, id uint8) {
	for i, v := range river.Cells {
		if v == id {
			river.Cells[i] = 0
		}
	}
}
