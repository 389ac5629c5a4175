package layers

import (
	"math"

	"github.com/tambeta/juice/classify"
	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/grid"
	"github.com/tambeta/juice/randsrc"
	"github.com/tambeta/juice/roads"
)

// RoadLayer connects a random pairing of cities with roads planned by
// Dijkstra over a terrain movement-cost field, dropping any pair with no
// finite-cost path (spec.md §4.8, §7 Unreachable).
type RoadLayer struct{}

func (RoadLayer) Kind() Kind       { return KindRoad }
func (RoadLayer) Requires() []Kind { return []Kind{KindSea, KindRiver, KindBiome, KindCity} }

func (RoadLayer) Generate(ctx *Context) (*Output, error) {
	n := ctx.N
	sea := ctx.Outputs[KindSea].Grid
	riverOut := ctx.Outputs[KindRiver]
	biome := ctx.Outputs[KindBiome].Grid
	cities := ctx.Outputs[KindCity].Cities

	wf := buildWeightField(n, ctx.Heights, sea, biome, riverOut, ctx.Cfg)

	roadGrid := grid.New(n)
	for _, pair := range pickCityPairs(ctx.RS, cities) {
		a, b := pair[0], pair[1]
		dist := roads.Dijkstra(wf, ctx.Heights, roadGrid, [2]int{a.X, a.Y}, ctx.Cfg.MPRoad, ctx.Cfg.MPPenaltyElev)
		path := roads.TracePath(dist, n, [2]int{a.X, a.Y}, [2]int{b.X, b.Y})
		for _, p := range path {
			roadGrid.Set(p[0], p[1], 1)
		}
		// path == nil: the pair is unreachable and silently dropped.
	}

	return &Output{Grid: roadGrid, Class: classify.ClassifySimple(roadGrid)}, nil
}

func buildWeightField(n int, heights, sea, biome *grid.Grid, riverOut *Output, cfg config.Config) *roads.WeightField {
	wf := roads.NewWeightField(n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if sea.At(x, y) != 0 {
				wf.Set(x, y, math.Inf(1))
				continue
			}

			v := cfg.MPBaseline
			switch biome.At(x, y) {
			case config.BiomeDesert:
				v += cfg.MPPenaltyDesert
			case config.BiomeForest:
				v += cfg.MPPenaltyForest
			}

			if riverOut.Grid.At(x, y) != 0 {
				switch riverOut.Class.At(x, y) {
				case classify.LineStraightNS, classify.LineStraightWE:
					v = cfg.MPBridge
				default:
					v = math.Inf(1)
				}
			}

			wf.Set(x, y, v)
		}
	}
	return wf
}

// pickCityPairs selects floor(len(cities)/2) unordered pairs uniformly
// without replacement, by shuffling the city list and pairing it off
// consecutively (spec.md §4.8).
func pickCityPairs(rs *randsrc.RandomSource, cities []City) [][2]City {
	idxs := make([]int, len(cities))
	for i := range idxs {
		idxs[i] = i
	}
	rs.Shuffle(len(idxs), func(i, j int) { idxs[i], idxs[j] = idxs[j], idxs[i] })

	numPairs := len(cities) / 2
	pairs := make([][2]City, 0, numPairs)
	for p := 0; p < numPairs; p++ {
		pairs = append(pairs, [2]City{cities[idxs[2*p]], cities[idxs[2*p+1]]})
	}
	return pairs
}
