package layers

import (
	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/grid"
	"github.com/tambeta/juice/randsrc"
)

// Context is the shared read/write state a Generator's Generate method
// operates on: the heightmap, the sub-seeded RandomSource this layer should
// draw from, the generation config, and the outputs already produced by
// earlier layers in the stack.
type Context struct {
	N       int
	Heights *grid.Grid
	Cfg     config.Config
	RS      *randsrc.RandomSource
	Outputs map[Kind]*Output
}

// NewContext builds a Context ready for Stack.Generate.
func NewContext(heights *grid.Grid, cfg config.Config, rs *randsrc.RandomSource) *Context {
	return &Context{
		N:       heights.N,
		Heights: heights,
		Cfg:     cfg,
		RS:      rs,
		Outputs: make(map[Kind]*Output),
	}
}
