package layers

import (
	"math"
	"sort"

	"github.com/tambeta/juice/classify"
	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/grid"
)

// CityLayer scores land cells by access to water and biome penalties, samples
// a handful by weighted probability, then enforces a minimum pairwise
// separation (spec.md §4.7). Grounded on gen_overworld.go's
// placeFactionStartPositions/isTooCloseToAny for the score-then-separate
// shape, and on spawning/probtables.go's ProbabilityTable for the weighted
// sampler — rewritten with an explicit Kahan-summed normalization so the
// total is reproducible across platforms (spec.md §9).
type CityLayer struct{}

func (CityLayer) Kind() Kind       { return KindCity }
func (CityLayer) Requires() []Kind { return []Kind{KindSea, KindRiver, KindBiome} }

type cityCandidate struct {
	x, y  int
	score float64
}

func (CityLayer) Generate(ctx *Context) (*Output, error) {
	n := ctx.N
	sea := ctx.Outputs[KindSea].Grid
	river := ctx.Outputs[KindRiver].Grid
	biome := ctx.Outputs[KindBiome].Grid

	notSea := grid.New(n)
	for i, v := range sea.Cells {
		if v == 0 {
			notSea.Cells[i] = 1
		}
	}
	support, _ := notSea.Label(ctx.Cfg.MinPopSupportSize)

	var candidates []cityCandidate
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if support.At(x, y) == 0 || river.At(x, y) != 0 {
				continue
			}

			score := 1.0
			hasRiver, hasSea := false, false
			sea.ForEachNeighbor(x, y, func(nx, ny int, _ uint8) grid.WalkResult {
				if river.At(nx, ny) != 0 {
					hasRiver = true
				}
				if sea.At(nx, ny) != 0 {
					hasSea = true
				}
				return grid.Continue
			})
			if hasRiver {
				score += 3
			}
			if hasSea {
				score += 3
			}
			switch biome.At(x, y) {
			case config.BiomeDesert:
				score -= 0.9
			case config.BiomeForest:
				score -= 0.5
			}
			if score < 0 {
				score = 0
			}
			candidates = append(candidates, cityCandidate{x, y, score})
		}
	}

	out := grid.New(n)
	if len(candidates) == 0 {
		return &Output{Grid: out, Class: classify.ClassifySimple(out)}, nil
	}

	total := kahanSum(candidates)
	numPick := int(float64(len(candidates)) * ctx.Cfg.CityDensity)

	picked := make(map[int]bool, numPick)
	for i := 0; i < numPick && total > 0; i++ {
		r := ctx.RS.Float01() * total
		acc := 0.0
		idx := len(candidates) - 1
		for j, c := range candidates {
			acc += c.score
			if r < acc {
				idx = j
				break
			}
		}
		picked[idx] = true // duplicate draws collapse naturally (spec.md §4.7)
	}

	var survivors []cityCandidate
	for idx := range picked {
		survivors = append(survivors, candidates[idx])
	}
	// Stable row-major separation order (spec.md §4.7): candidates were
	// built in row-major scan order, but the map above scrambles it, so sort
	// explicitly before running the pairwise pass.
	sortCandidatesRowMajor(survivors, n)

	radius := float64(n) / float64(ctx.Cfg.CityClosenessFactor)
	if radius > float64(ctx.Cfg.MaxCityDisallowRadius) {
		radius = float64(ctx.Cfg.MaxCityDisallowRadius)
	}

	cleared := make([]bool, len(survivors))
	for i := range survivors {
		if cleared[i] {
			continue
		}
		for j := i + 1; j < len(survivors); j++ {
			if cleared[j] {
				continue
			}
			dx := float64(survivors[i].x - survivors[j].x)
			dy := float64(survivors[i].y - survivors[j].y)
			if math.Hypot(dx, dy) < radius {
				cleared[j] = true
			}
		}
	}

	var cities []City
	for i, c := range survivors {
		if cleared[i] {
			continue
		}
		out.Set(c.x, c.y, 1)
		cities = append(cities, City{ID: len(cities), X: c.x, Y: c.y})
	}

	return &Output{Grid: out, Class: classify.ClassifySimple(out), Cities: cities}, nil
}

// kahanSum totals candidate scores with compensated summation so the result
// (and therefore the sampling distribution it normalizes) doesn't drift
// across platforms with different floating-point reduction orders.
func kahanSum(candidates []cityCandidate) float64 {
	total, comp := 0.0, 0.0
	for _, c := range candidates {
		y := c.score - comp
		t := total + y
		comp = (t - total) - y
		total = t
	}
	return total
}

func sortCandidatesRowMajor(c []cityCandidate, n int) {
	sort.Slice(c, func(i, j int) bool {
		return c[i].y*n+c[i].x < c[j].y*n+c[j].x
	})
}
