package classify

import (
	"testing"

	"github.com/tambeta/juice/grid"
)

func TestRotateIsClockwiseAndClosesAfterFourApplications(t *testing.T) {
	base := Template{
		{d_, t_, d_},
		{tX, tX, tX},
		{d_, tX, d_},
	}
	cur := base
	for i := 0; i < 4; i++ {
		cur = rotate(cur)
	}
	if cur != base {
		t.Fatalf("rotate^4 did not return to the base template: %v", cur)
	}

	// A single clockwise rotation should move the empty cell from North to
	// East.
	once := rotate(base)
	if once[0][1] != tX || once[1][2] != t_ {
		t.Fatalf("rotate did not move North -> East as expected: %v", once)
	}
}

func TestMatchesHonorsDontCare(t *testing.T) {
	a := Template{{d_, d_, d_}, {d_, tX, d_}, {d_, d_, d_}}
	b := Template{{tX, t_, tX}, {t_, tX, t_}, {tX, t_, tX}}
	if !matches(a, b) {
		t.Fatal("an all-Don't-Care template must match anything")
	}
}

func solidBlob(n int) *grid.Grid {
	g := grid.New(n)
	for y := 2; y < n-2; y++ {
		for x := 2; x < n-2; x++ {
			g.Set(x, y, 1)
		}
	}
	return g
}

func TestClassifySolidLeavesNoUnclassifiedCell(t *testing.T) {
	g := solidBlob(16)
	cls, _ := ClassifySolid(g, false, PadReplicateEdge)

	for _, v := range cls.Cells {
		if v == solidNA {
			t.Fatal("ClassifySolid left an NA cell after reaching a fixed point")
		}
	}
}

func TestClassifySolidIsIdempotent(t *testing.T) {
	g := solidBlob(16)
	cls1, out1 := ClassifySolid(g, false, PadReplicateEdge)
	cls2, out2 := ClassifySolid(out1, false, PadReplicateEdge)

	for i := range cls1.Cells {
		if cls1.Cells[i] != cls2.Cells[i] {
			t.Fatalf("reclassifying the classified layer changed cell %d: %d vs %d", i, cls1.Cells[i], cls2.Cells[i])
		}
	}
	for i := range out1.Cells {
		if out1.Cells[i] != out2.Cells[i] {
			t.Fatalf("reclassifying the classified layer changed output cell %d", i)
		}
	}
}

func TestClassifySolidInteriorIsSolid(t *testing.T) {
	g := solidBlob(16)
	cls, _ := ClassifySolid(g, false, PadReplicateEdge)
	if cls.At(8, 8) != SolidSolid {
		t.Errorf("center of a large blob should classify as SolidSolid, got %d", cls.At(8, 8))
	}
}

func straightRiver(n int) *grid.Grid {
	g := grid.New(n)
	for y := 1; y < n-1; y++ {
		g.Set(n/2, y, 1)
	}
	return g
}

func TestClassifyLineStraightRun(t *testing.T) {
	n := 16
	g := straightRiver(n)
	cls := ClassifyLine(g, PadZero)

	mid := n / 2
	if got := cls.At(mid, n/2); got != LineStraightNS {
		t.Errorf("mid-river cell classified as %d, want LineStraightNS", got)
	}
	if got := cls.At(mid, 1); got != LineSourceS {
		t.Errorf("top end classified as %d, want LineSourceS (river continues South only)", got)
	}
}

func TestClassifyDeltaPicksOutflowDirection(t *testing.T) {
	g := grid.New(5)
	g.Set(2, 2, DeltaCellRiver)
	g.Set(2, 1, DeltaCellSea) // sea to the North

	cls := ClassifyDelta(g)
	if got := cls.At(2, 2); got != DeltaOutflowN {
		t.Errorf("delta outflow = %d, want DeltaOutflowN", got)
	}
}

func TestClassifySimplePassthrough(t *testing.T) {
	g := grid.New(4)
	g.Set(1, 1, 1)
	cls := ClassifySimple(g)
	if cls.At(1, 1) != SimpleOccupied {
		t.Error("occupied city cell should classify as SimpleOccupied")
	}
	if cls.At(0, 0) != SimpleEmpty {
		t.Error("empty cell should classify as SimpleEmpty")
	}
}
