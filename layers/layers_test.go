package layers

import (
	"math"
	"testing"

	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/heightmap"
	"github.com/tambeta/juice/randsrc"
)

// buildStack runs the full pipeline (sea, river, delta, biome, city, road)
// for a test seed/size and returns the populated Context.
func buildStack(t *testing.T, seed int64, n int) *Context {
	t.Helper()
	rs := randsrc.New(seed)
	hm, err := heightmap.New(n, config.DefaultConfig(), rs.Sub("heightmap"))
	if err != nil {
		t.Fatalf("heightmap.New: %v", err)
	}
	heights := hm.Generate()

	ctx := NewContext(heights, config.DefaultConfig(), rs.Sub("layers"))
	stack := NewStack()
	for _, g := range []Generator{SeaLayer{}, RiverLayer{}, DeltaLayer{}, BiomeLayer{}, CityLayer{}, RoadLayer{}} {
		if err := stack.Add(g); err != nil {
			t.Fatalf("Add(%s): %v", g.Kind(), err)
		}
	}
	if err := stack.Generate(ctx, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return ctx
}

func TestSeaSegmentsRespectMinSize(t *testing.T) {
	ctx := buildStack(t, 1, 64)
	sea := ctx.Outputs[KindSea].Grid

	counts := map[uint8]int{}
	for _, v := range sea.Cells {
		if v != 0 {
			counts[v]++
		}
	}
	for id, n := range counts {
		if n < ctx.Cfg.MinSeaSize {
			t.Errorf("sea segment %d has %d cells, below MinSeaSize %d", id, n, ctx.Cfg.MinSeaSize)
		}
	}
}

// TestSeaThresholdZeroYieldsAllZeroGrid is fixture S4 (spec.md §8): with
// SEA_THRESHOLD=0, the only candidate cells are those at the heightmap's
// stretched-to-zero minimum, a handful of cells far below MinSeaSize, so the
// min-size filter clears every one of them.
func TestSeaThresholdZeroYieldsAllZeroGrid(t *testing.T) {
	rs := randsrc.New(7)
	hm, err := heightmap.New(32, config.DefaultConfig(), rs.Sub("heightmap"))
	if err != nil {
		t.Fatalf("heightmap.New: %v", err)
	}
	heights := hm.Generate()

	cfg := config.DefaultConfig()
	cfg.SeaThreshold = 0
	ctx := NewContext(heights, cfg, rs.Sub("layers"))

	out, err := SeaLayer{}.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, v := range out.Grid.Cells {
		if v != 0 {
			t.Fatalf("sea grid cell %d = %d, want 0 with SEA_THRESHOLD=0", i, v)
		}
	}
}

// TestSeaThresholdMaxYieldsOneComponentOrEmpty is fixture S5 (spec.md §8):
// with SEA_THRESHOLD=255, every cell is a sea candidate (heights are uint8,
// so height<=255 always holds), so after labeling the whole grid is exactly
// one component.
func TestSeaThresholdMaxYieldsOneComponentOrEmpty(t *testing.T) {
	rs := randsrc.New(7)
	hm, err := heightmap.New(32, config.DefaultConfig(), rs.Sub("heightmap"))
	if err != nil {
		t.Fatalf("heightmap.New: %v", err)
	}
	heights := hm.Generate()

	cfg := config.DefaultConfig()
	cfg.SeaThreshold = 255
	ctx := NewContext(heights, cfg, rs.Sub("layers"))

	out, err := SeaLayer{}.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	distinct := map[uint8]bool{}
	for _, v := range out.Grid.Cells {
		distinct[v] = true
	}
	delete(distinct, 0)
	if len(distinct) > 1 {
		t.Fatalf("sea grid has %d distinct nonzero components, want at most 1 with SEA_THRESHOLD=255", len(distinct))
	}
}

func TestRiverCellsTerminateOrConverge(t *testing.T) {
	ctx := buildStack(t, 1, 64)
	sea := ctx.Outputs[KindSea].Grid
	river := ctx.Outputs[KindRiver].Grid

	river.ForEachNonZero(func(x, y int, v uint8) {
		if sea.At(x, y) != 0 {
			return // terminates at sea
		}

		sameNeighbor, diffNeighbor := false, false
		for _, d := range [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			nv := river.At(x+d[0], y+d[1])
			if nv == v {
				sameNeighbor = true
			} else if nv != 0 {
				diffNeighbor = true
			}
		}
		if !sameNeighbor && !diffNeighbor {
			t.Errorf("river cell (%d,%d) id %d is isolated: not connected to its own id, a different river, or the sea", x, y, v)
		}
	})
}

func TestBiomeCellsAvoidRiverSeaAndCoast(t *testing.T) {
	ctx := buildStack(t, 1, 64)
	sea := ctx.Outputs[KindSea].Grid
	river := ctx.Outputs[KindRiver].Grid
	biome := ctx.Outputs[KindBiome].Grid

	biome.ForEachNonZero(func(x, y int, v uint8) {
		if sea.At(x, y) != 0 {
			t.Errorf("biome cell (%d,%d) sits on a sea cell", x, y)
		}
		if river.At(x, y) != 0 {
			t.Errorf("biome cell (%d,%d) sits on a river cell", x, y)
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if sea.At(x+dx, y+dy) != 0 {
					t.Errorf("biome cell (%d,%d) is within a sea cell's 3x3 neighborhood", x, y)
				}
			}
		}
	})
}

func TestCitiesRespectSeparation(t *testing.T) {
	ctx := buildStack(t, 42, 64)
	cities := ctx.Outputs[KindCity].Cities

	n := ctx.N
	radius := float64(n) / float64(ctx.Cfg.CityClosenessFactor)
	if radius > float64(ctx.Cfg.MaxCityDisallowRadius) {
		radius = float64(ctx.Cfg.MaxCityDisallowRadius)
	}

	for i := range cities {
		for j := range cities {
			if i == j {
				continue
			}
			dx := float64(cities[i].X - cities[j].X)
			dy := float64(cities[i].Y - cities[j].Y)
			if math.Hypot(dx, dy) < radius {
				t.Errorf("cities %d and %d are closer than the separation radius: %.2f < %.2f", cities[i].ID, cities[j].ID, math.Hypot(dx, dy), radius)
			}
		}
	}
}

func TestRoadsOnlyCoverPassableOrBridgedCells(t *testing.T) {
	ctx := buildStack(t, 42, 64)
	sea := ctx.Outputs[KindSea].Grid
	river := ctx.Outputs[KindRiver].Grid
	riverCls := ctx.Outputs[KindRiver].Class
	road := ctx.Outputs[KindRoad].Grid

	road.ForEachNonZero(func(x, y int, v uint8) {
		if sea.At(x, y) != 0 {
			t.Errorf("road cell (%d,%d) sits on sea", x, y)
		}
		if river.At(x, y) != 0 {
			cls := riverCls.At(x, y)
			if cls != 2 && cls != 3 { // LineStraightNS, LineStraightWE
				t.Errorf("road cell (%d,%d) crosses a non-bridgeable river archetype %d", x, y, cls)
			}
		}
	})
}

func TestPipelineIsDeterministic(t *testing.T) {
	ctx1 := buildStack(t, 7, 32)
	ctx2 := buildStack(t, 7, 32)

	r1 := ctx1.Outputs[KindRiver].Grid
	r2 := ctx2.Outputs[KindRiver].Grid
	for i := range r1.Cells {
		if r1.Cells[i] != r2.Cells[i] {
			t.Fatalf("river grids differ at %d between identically-seeded runs", i)
		}
	}
}
