// Package heightmap implements the diamond-square elevation synthesizer and
// its post-processing passes (stretch, noise, blur), per spec.md §4.1.
// Grounded on _examples/original_source/juice/heightmap.py: the internal
// (N+1)x(N+1) buffer, corner seeding from INITIAL_RANGE, the alternating
// square/diamond passes with decaying perturbation, and the final
// level-stretch are all carried over from that implementation, rewritten as
// idiomatic Go against grid.Grid instead of a numpy matrix. The optional
// OpenSimplex domain warp is additive enrichment grounded on the teacher's
// world/worldmap/gen_overworld.go (opensimplex-go multi-octave noise), not a
// substitute for the spec's diamond-square algorithm — it defaults to off.
package heightmap

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/grid"
	"github.com/tambeta/juice/randsrc"
)

// Heightmap generates the elevation Grid via diamond-square with
// post-processing.
type Heightmap struct {
	n   int
	cfg config.Config
	rs  *randsrc.RandomSource

	buf *grid.Grid // (n+1) x (n+1) working buffer
}

// New creates a Heightmap generator for an n x n grid (n must be a power of
// two). rs is the sub-seeded RandomSource this component should draw from.
func New(n int, cfg config.Config, rs *randsrc.RandomSource) (*Heightmap, error) {
	if !isPowerOfTwo(n) {
		return nil, config.NewConfigurationError("heightmap dimension %d is not a power of two", n)
	}
	return &Heightmap{n: n, cfg: cfg, rs: rs}, nil
}

func isPowerOfTwo(n int) bool {
	if n < 1 {
		return false
	}
	return n&(n-1) == 0
}

// Generate runs the diamond-square algorithm and post-processing passes,
// returning the final n x n elevation grid.
func (h *Heightmap) Generate() *grid.Grid {
	squareDim := h.n + 1
	h.buf = grid.New(squareDim)

	minSquareDim := h.cfg.MinCellSize + 1
	if minSquareDim < 2 {
		minSquareDim = 2
	}

	// Seed the four corners.
	h.buf.Set(0, 0, uint8(h.rs.IntBetween(config.InitialRangeLo, config.InitialRangeHi)))
	h.buf.Set(0, h.n, uint8(h.rs.IntBetween(config.InitialRangeLo, config.InitialRangeHi)))
	h.buf.Set(h.n, 0, uint8(h.rs.IntBetween(config.InitialRangeLo, config.InitialRangeHi)))
	h.buf.Set(h.n, h.n, uint8(h.rs.IntBetween(config.InitialRangeLo, config.InitialRangeHi)))

	randRange := h.cfg.PerturbRange
	for squareDim > minSquareDim {
		h.approximateToSquareDim(squareDim, randRange, false)
		squareDim = squareDim/2 + 1
		randRange -= int(float64(randRange) * h.cfg.PerturbDecrease)
	}

	if squareDim > 2 {
		h.approximateToSquareDim(squareDim, randRange, true)
	}

	out := grid.New(h.n)
	for y := 0; y < h.n; y++ {
		for x := 0; x < h.n; x++ {
			out.Set(x, y, h.buf.At(x, y))
		}
	}

	h.applySimplexWarp(out)
	levelStretch(out)
	h.applyNoise(out)
	h.applyBlur(out)

	return out
}

// approximateToSquareDim runs one square+diamond pass at the given square
// size over the whole buffer. If fill is true, the square step stamps its
// perturbed center value across the whole square instead of just the
// midpoint, and the diamond step is skipped (used for the final "fill" pass
// when generation stopped early at min_cell_size > 1).
func (h *Heightmap) approximateToSquareDim(squareDim, randRange int, fill bool) {
	for y := 0; y < h.n; y += squareDim - 1 {
		for x := 0; x < h.n; x += squareDim - 1 {
			h.setSquareAverage(x, y, squareDim, randRange, fill)
			if !fill {
				h.setDiamondAverages(x, y, squareDim, randRange)
			}
		}
	}
}

func (h *Heightmap) setPointPerturbed(x, y, val, perturbRange int) int {
	val += h.rs.PerturbInRange(perturbRange)
	if val < 0 {
		val = 0
	} else if val > 255 {
		val = 255
	}
	h.buf.Set(x, y, uint8(val))
	return val
}

func (h *Heightmap) setSquareAverage(x, y, squareDim, randRange int, fill bool) {
	p1 := int(h.buf.At(x, y))
	p2 := int(h.buf.At(x+squareDim-1, y))
	p3 := int(h.buf.At(x, y+squareDim-1))
	p4 := int(h.buf.At(x+squareDim-1, y+squareDim-1))

	avg := (p1 + p2 + p3 + p4) / 4
	mid := (squareDim - 1) / 2
	val := h.setPointPerturbed(x+mid, y+mid, avg, randRange)

	if fill {
		for fy := y; fy < y+squareDim-1; fy++ {
			for fx := x; fx < x+squareDim-1; fx++ {
				h.buf.Set(fx, fy, uint8(val))
			}
		}
	}
}

func (h *Heightmap) setDiamondAverages(x, y, squareDim, randRange int) {
	mid := (squareDim - 1) / 2
	h.setDiamondAverage(x+mid, y, mid, randRange)
	h.setDiamondAverage(x+squareDim-1, y+mid, mid, randRange)
	h.setDiamondAverage(x+mid, y+squareDim-1, mid, randRange)
	h.setDiamondAverage(x, y+mid, mid, randRange)
}

// setDiamondAverage receives the center point of a diamond and averages the
// buffer values at diamond distance halfSquare, ignoring out-of-bounds
// neighbors entirely (they contribute neither to the sum nor the count).
func (h *Heightmap) setDiamondAverage(x, y, halfSquare, randRange int) {
	coords := [4][2]int{
		{x, y - halfSquare},
		{x + halfSquare, y},
		{x, y + halfSquare},
		{x - halfSquare, y},
	}

	total, nval := 0, 0
	for _, p := range coords {
		px, py := p[0], p[1]
		if px < 0 || py < 0 || !h.buf.InBounds(px, py) {
			continue
		}
		total += int(h.buf.At(px, py))
		nval++
	}
	if nval == 0 {
		return
	}
	h.setPointPerturbed(x, y, total/nval, randRange)
}

// levelStretch rescales values linearly so min -> 0 and max -> 255, matching
// heightmap.py's _stretch_levels guard: a grid that already spans the full
// range is left untouched bit-for-bit.
func levelStretch(g *grid.Grid) {
	minv, maxv := uint8(255), uint8(0)
	for _, v := range g.Cells {
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	if minv == 0 && maxv == 255 {
		return
	}
	if maxv == minv {
		return
	}

	span := int(maxv) - int(minv)
	for i, v := range g.Cells {
		g.Cells[i] = uint8((int(v) - int(minv)) * 255 / span)
	}
}

func (h *Heightmap) applyNoise(g *grid.Grid) {
	if h.cfg.NoiseRange <= 0 {
		return
	}
	half := h.cfg.NoiseRange / 2
	for y := 0; y < h.n; y++ {
		for x := 0; x < h.n; x++ {
			v := int(g.At(x, y))
			v = h.rs.IntBetween(v-half, v+half)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			g.Set(x, y, uint8(v))
		}
	}
}

// applySimplexWarp nudges each cell by a low-amplitude multi-octave
// OpenSimplex sample before the noise/blur passes, when cfg.SimplexWarp > 0.
// Grounded on world/worldmap/gen_overworld.go's generateFBmMap. Disabled by
// default so the spec's golden fixtures (S1-S6) remain pure diamond-square.
func (h *Heightmap) applySimplexWarp(g *grid.Grid) {
	if h.cfg.SimplexWarp <= 0 {
		return
	}
	noise := opensimplex.New(h.rs.Int63())
	amp := h.cfg.SimplexWarp
	for y := 0; y < h.n; y++ {
		for x := 0; x < h.n; x++ {
			warp := noise.Eval2(float64(x)*0.08, float64(y)*0.08) * amp
			v := int(g.At(x, y)) + int(warp)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			g.Set(x, y, uint8(v))
		}
	}
}

func (h *Heightmap) applyBlur(g *grid.Grid) {
	if h.cfg.BlurSigma <= 0 {
		return
	}
	radius := int(math.Ceil(h.cfg.BlurSigma * 3))
	if radius < 1 {
		radius = 1
	}
	kernel := gaussianKernel(radius, h.cfg.BlurSigma)

	out := make([]float64, len(g.Cells))
	for y := 0; y < h.n; y++ {
		for x := 0; x < h.n; x++ {
			sum, wsum := 0.0, 0.0
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					if !g.InBounds(x+dx, y+dy) {
						continue
					}
					w := kernel[dy+radius][dx+radius]
					sum += w * float64(g.At(x+dx, y+dy))
					wsum += w
				}
			}
			if wsum > 0 {
				out[y*h.n+x] = sum / wsum
			}
		}
	}
	for i, v := range out {
		g.Cells[i] = uint8(clamp255(v))
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func gaussianKernel(radius int, sigma float64) [][]float64 {
	size := radius*2 + 1
	k := make([][]float64, size)
	for i := range k {
		k[i] = make([]float64, size)
	}
	two_sigma_sq := 2 * sigma * sigma
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			k[dy+radius][dx+radius] = math.Exp(-float64(dx*dx+dy*dy) / two_sigma_sq)
		}
	}
	return k
}
