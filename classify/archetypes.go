package classify

// Solid archetype ids (areal features: sea, biomes). Straight edges and
// corners are stored as rotation families: StraightN is the base orientation
// and StraightN+1, StraightN+2, StraightN+3 are its clockwise rotations (E,
// S, W), and likewise for the two corner families.
const (
	SolidEmpty uint64 = iota
	solidNA           // unclassified-foreground sentinel, never survives ClassifySolid
	SolidSolid
	SolidStraightN
	SolidStraightE
	SolidStraightS
	SolidStraightW
	SolidConvexCorner0
	SolidConvexCorner1
	SolidConvexCorner2
	SolidConvexCorner3
	SolidConcaveCorner0
	SolidConcaveCorner1
	SolidConcaveCorner2
	SolidConcaveCorner3
)

// Line archetype ids (1-cell-thick linear features: rivers).
const (
	LineEmpty uint64 = iota
	lineNA           // unclassified-foreground sentinel, never survives ClassifyLine
	LineStraightNS
	LineStraightWE
	LineSourceN
	LineSourceE
	LineSourceS
	LineSourceW
	LineCornerNE
	LineCornerSE
	LineCornerSW
	LineCornerNW
	LineTBoneN
	LineTBoneE
	LineTBoneS
	LineTBoneW
	LineFourWay
)

// Delta archetype ids: the direction a DELTA_RIVER cell empties toward its
// adjacent DELTA_SEA cell (spec.md §4.5).
const (
	DeltaNone uint64 = iota
	DeltaOutflowN
	DeltaOutflowE
	DeltaOutflowS
	DeltaOutflowW
)

// Simple archetype ids (binary passthrough: cities).
const (
	SimpleEmpty uint64 = iota
	SimpleOccupied
)

const (
	t_ Trit = False
	tX Trit = True
	d_ Trit = DontCare
)

// solidSpecs lists the Solid classifier's tile specs in match order: sliver
// removal first, then the straight-edge family, then the two corner
// families. Each template family is written at its base (North / NW)
// orientation; runFixedPoint applies rotate() up to Rotations-1 times to
// reach the remaining family members, which is why the constant blocks above
// are laid out N,E,S,W (or the corner-family equivalent) in rotation order.
var solidSpecs = []TileSpec{
	{
		IsPredicate: true,
		Predicate:   isSliver,
	},
	{
		// Empty to the North, solid everywhere else: a flat edge.
		Template: Template{
			{d_, t_, d_},
			{tX, tX, tX},
			{d_, tX, d_},
		},
		InitialID: SolidStraightN,
		Rotations: 4,
	},
	{
		// Empty to the North and West: solid mass bulges outward at this
		// corner (convex as seen from inside the solid region).
		Template: Template{
			{d_, t_, d_},
			{t_, tX, tX},
			{d_, tX, d_},
		},
		InitialID: SolidConvexCorner0,
		Rotations: 4,
	},
	{
		// All four edges solid but the NW diagonal is empty: a notch cut
		// into the solid mass (concave as seen from inside the region).
		Template: Template{
			{t_, tX, d_},
			{tX, tX, tX},
			{d_, tX, d_},
		},
		InitialID: SolidConcaveCorner0,
		Rotations: 4,
	},
}

// isSliver reports whether a foreground cell forms a 1-cell-wide protrusion:
// empty on both opposing sides along either axis. Solid-only (Line tiles
// never remove slivers, per spec.md §4.9).
func isSliver(w [3][3]bool) bool {
	westEmpty, eastEmpty := !w[1][0], !w[1][2]
	northEmpty, southEmpty := !w[0][1], !w[2][1]
	return (westEmpty && eastEmpty) || (northEmpty && southEmpty)
}

// lineSpecs lists the Line classifier's tile specs. No sliver removal: a
// 1-cell-thick line has no interior to protect.
var lineSpecs = []TileSpec{
	{
		// River both North and South, none East/West: vertical straight run.
		Template: Template{
			{d_, tX, d_},
			{t_, tX, t_},
			{d_, tX, d_},
		},
		InitialID: LineStraightNS,
		Rotations: 2,
	},
	{
		// River only to the North: a dead end / spring.
		Template: Template{
			{d_, tX, d_},
			{t_, tX, t_},
			{d_, t_, d_},
		},
		InitialID: LineSourceN,
		Rotations: 4,
	},
	{
		// River North and East, not South/West: an L-bend.
		Template: Template{
			{d_, tX, d_},
			{t_, tX, tX},
			{d_, t_, d_},
		},
		InitialID: LineCornerNE,
		Rotations: 4,
	},
	{
		// River East, South, West, not North: a three-way junction.
		Template: Template{
			{d_, t_, d_},
			{tX, tX, tX},
			{d_, tX, d_},
		},
		InitialID: LineTBoneN,
		Rotations: 4,
	},
	{
		// River on all four sides: a crossroads.
		Template: Template{
			{d_, tX, d_},
			{tX, tX, tX},
			{d_, tX, d_},
		},
		InitialID: LineFourWay,
		Rotations: 1,
	},
}
