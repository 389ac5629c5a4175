// Package classify implements the tile classifier: the per-layer
// post-processor that turns a generator's labeled grid.Grid into a closed
// set of tile archetypes (spec.md §4.9). Four variants are provided: Solid
// (areal features — sea, biomes), Line (1-cell-thick linear features —
// rivers), Delta (the river/sea transition), and Simple (passthrough,
// cities).
//
// Grounded on _examples/original_source/juice/tileclassifier.py for the
// ternary-template shapes and the rotate-then-compare fixed-point loop;
// generalized to a tagged TileSpec sum type (template-with-rotation vs.
// arbitrary predicate) per spec.md §9's "Callable-or-template polymorphism"
// design note, instead of the Python decorator-injected attribute trick.
package classify

// Trit is a three-valued logic cell used in ternary matching templates.
type Trit int

const (
	False Trit = iota
	True
	DontCare
)

// Template is a 3x3 neighborhood pattern used to match a cell against an
// archetype at a given rotation.
type Template [3][3]Trit

// rotate returns t rotated 90 degrees clockwise: transpose then flip
// horizontally, matching tileclassifier.py's
// `np.fliplr(np.transpose(m))`.
func rotate(t Template) Template {
	var out Template
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = t[2-j][i]
		}
	}
	return out
}

// matches reports whether two 3x3 ternary matrices are equal: every
// corresponding pair must either have Don't-Care on at least one side, or be
// equal booleans.
func matches(a, b Template) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if a[i][j] == DontCare || b[i][j] == DontCare {
				continue
			}
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// neighborhoodTemplate converts a boolean 3x3 window (true = foreground)
// into a Template of concrete True/False values (no Don't-Care) suitable for
// comparison against a spec's ternary template.
func neighborhoodTemplate(m [3][3]bool) Template {
	var t Template
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m[i][j] {
				t[i][j] = True
			} else {
				t[i][j] = False
			}
		}
	}
	return t
}

// TileSpec is either a ternary template with an initial archetype id and a
// rotation count (1, 2, or 4), or an arbitrary predicate over the 3x3
// neighborhood (used for sliver removal). Exactly one of Predicate or
// Template/Rotations is meaningful, selected by IsPredicate.
type TileSpec struct {
	IsPredicate bool
	Predicate   func(nhood [3][3]bool) bool

	Template  Template
	InitialID uint64
	Rotations int
}

// PadMode controls how the classifier extends the working matrix by one
// cell on every side before matching.
type PadMode int

const (
	// PadReplicateEdge extends the border row/column outward, so shapes
	// appear to continue beyond the map edge (the Solid classifier's
	// default).
	PadReplicateEdge PadMode = iota
	// PadZero treats everything beyond the map edge as background.
	PadZero
)
