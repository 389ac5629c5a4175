package heightmap

import (
	"testing"

	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/grid"
	"github.com/tambeta/juice/randsrc"
)

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	_, err := New(63, config.DefaultConfig(), randsrc.New(1))
	if err == nil {
		t.Fatal("expected ConfigurationError for non-power-of-two dimension")
	}
	if _, ok := err.(*config.ConfigurationError); !ok {
		t.Errorf("err type = %T, want *config.ConfigurationError", err)
	}
}

func TestNewAcceptsPowerOfTwo(t *testing.T) {
	for _, n := range []int{2, 4, 16, 64, 128} {
		if _, err := New(n, config.DefaultConfig(), randsrc.New(1)); err != nil {
			t.Errorf("New(%d) returned error: %v", n, err)
		}
	}
}

func TestGenerateRangeAndStretch(t *testing.T) {
	hm, err := New(64, config.DefaultConfig(), randsrc.New(42))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := hm.Generate()

	hasZero, has255 := false, false
	for _, v := range g.Cells {
		if v == 0 {
			hasZero = true
		}
		if v == 255 {
			has255 = true
		}
	}
	if !hasZero {
		t.Error("expected at least one cell == 0 after stretching")
	}
	if !has255 {
		t.Error("expected at least one cell == 255 after stretching")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	hm1, _ := New(32, cfg, randsrc.New(7))
	hm2, _ := New(32, cfg, randsrc.New(7))

	g1 := hm1.Generate()
	g2 := hm2.Generate()

	for i := range g1.Cells {
		if g1.Cells[i] != g2.Cells[i] {
			t.Fatalf("cell %d differs between identically-seeded runs: %d vs %d", i, g1.Cells[i], g2.Cells[i])
		}
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	cfg := config.DefaultConfig()
	hm1, _ := New(32, cfg, randsrc.New(1))
	hm2, _ := New(32, cfg, randsrc.New(2))

	g1 := hm1.Generate()
	g2 := hm2.Generate()

	identical := true
	for i := range g1.Cells {
		if g1.Cells[i] != g2.Cells[i] {
			identical = false
			break
		}
	}
	if identical {
		t.Error("expected different seeds to produce different heightmaps")
	}
}

func TestLevelStretchNoOpOnFullRange(t *testing.T) {
	g := grid.New(2)
	g.Set(0, 0, 0)
	g.Set(1, 0, 128)
	g.Set(0, 1, 64)
	g.Set(1, 1, 255)

	before := append([]uint8(nil), g.Cells...)
	levelStretch(g)
	for i := range before {
		if before[i] != g.Cells[i] {
			t.Fatalf("levelStretch mutated an already-full-range grid at %d: %d -> %d", i, before[i], g.Cells[i])
		}
	}
}
