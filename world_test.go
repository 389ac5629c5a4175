package juice

import (
	"testing"

	"github.com/tambeta/juice/config"
	"github.com/tambeta/juice/layers"
)

func fullStack() []layers.Kind {
	return []layers.Kind{
		layers.KindSea, layers.KindRiver, layers.KindDelta,
		layers.KindBiome, layers.KindCity, layers.KindRoad,
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(1, 64, []layers.Kind{"not-a-real-layer"})
	if err == nil {
		t.Fatal("expected ConfigurationError for unknown layer kind")
	}
	if _, ok := err.(*config.ConfigurationError); !ok {
		t.Errorf("err type = %T, want *config.ConfigurationError", err)
	}
}

func TestNewRejectsDuplicateKind(t *testing.T) {
	_, err := New(1, 64, []layers.Kind{layers.KindSea, layers.KindSea})
	if err == nil {
		t.Fatal("expected ConfigurationError for duplicate layer kind")
	}
}

func TestGenerateFailsOnMissingPrerequisite(t *testing.T) {
	w, err := New(1, 64, []layers.Kind{layers.KindRiver})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = w.Generate(nil)
	if err == nil {
		t.Fatal("expected PrerequisiteError when River runs without Sea")
	}
	if _, ok := err.(*config.PrerequisiteError); !ok {
		t.Errorf("err type = %T, want *config.PrerequisiteError", err)
	}
}

func TestGenerateInvokesProgressForHeightmapAndEveryLayer(t *testing.T) {
	w, err := New(1, 32, fullStack())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var stages []string
	if err := w.Generate(func(stage string) { stages = append(stages, stage) }); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if stages[0] != "heightmap" {
		t.Errorf("first progress stage = %q, want heightmap", stages[0])
	}
	if len(stages) != 1+len(fullStack()) {
		t.Errorf("got %d progress callbacks, want %d", len(stages), 1+len(fullStack()))
	}
}

func TestWorldIsDeterministicAcrossRuns(t *testing.T) {
	w1, _ := New(99, 32, fullStack())
	w2, _ := New(99, 32, fullStack())
	if err := w1.Generate(nil); err != nil {
		t.Fatalf("Generate w1: %v", err)
	}
	if err := w2.Generate(nil); err != nil {
		t.Fatalf("Generate w2: %v", err)
	}

	h1, h2 := w1.Heights(), w2.Heights()
	for i := range h1.Cells {
		if h1.Cells[i] != h2.Cells[i] {
			t.Fatalf("heights differ at %d between identically-seeded worlds", i)
		}
	}

	c1, c2 := w1.Cities(), w2.Cities()
	if len(c1) != len(c2) {
		t.Fatalf("city count differs: %d vs %d", len(c1), len(c2))
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("city %d differs: %+v vs %+v", i, c1[i], c2[i])
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	w, _ := New(5, 32, fullStack())
	if err := w.Generate(nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	blob, err := w.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.Seed() != w.Seed() || decoded.N() != w.N() {
		t.Fatalf("decoded metadata mismatch: seed=%d n=%d, want seed=%d n=%d", decoded.Seed(), decoded.N(), w.Seed(), w.N())
	}

	origHeights, decHeights := w.Heights(), decoded.Heights()
	for i := range origHeights.Cells {
		if origHeights.Cells[i] != decHeights.Cells[i] {
			t.Fatalf("decoded heights differ at %d", i)
		}
	}

	origSea, _ := w.Layer(layers.KindSea)
	decSea, ok := decoded.Layer(layers.KindSea)
	if !ok {
		t.Fatal("decoded world missing sea layer")
	}
	for i := range origSea.Grid.Cells {
		if origSea.Grid.Cells[i] != decSea.Grid.Cells[i] {
			t.Fatalf("decoded sea grid differs at %d", i)
		}
	}

	if len(decoded.Cities()) != len(w.Cities()) {
		t.Fatalf("decoded city count = %d, want %d", len(decoded.Cities()), len(w.Cities()))
	}
}
