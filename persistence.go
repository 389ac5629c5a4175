package juice

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tambeta/juice/grid"
	"github.com/tambeta/juice/layers"
)

// blobVersion is bumped whenever the binary layout below changes. Note that
// spec.md §6 also treats every named constant in config as part of the
// on-disk contract: a config change can alter generated semantics even when
// this layout (and therefore blobVersion) stays the same.
const blobVersion uint32 = 1

// Encode serializes the world as a versioned binary blob: version, seed,
// grid side, the enabled layer kinds in insertion order, the heightmap, then
// for each layer a presence byte: 1 followed by its grid (u8 per cell) and
// classification (u64 per cell), or 0 alone for a layer that failed during
// generation.
// Grounded on savesystem.go's checksum-free envelope shape, rewritten
// against encoding/binary per spec.md §6's explicit byte-width requirement
// (savesystem.go itself serializes to JSON, which can't express that).
func (w *World) Encode() ([]byte, error) {
	if w.ctx == nil {
		return nil, fmt.Errorf("juice: Encode called before Generate")
	}

	var buf bytes.Buffer
	write := func(v any) error { return binary.Write(&buf, binary.LittleEndian, v) }

	if err := write(blobVersion); err != nil {
		return nil, err
	}
	if err := write(w.seed); err != nil {
		return nil, err
	}
	if err := write(uint32(w.n)); err != nil {
		return nil, err
	}

	if err := write(uint32(len(w.kinds))); err != nil {
		return nil, err
	}
	for _, k := range w.kinds {
		if err := writeString(&buf, string(k)); err != nil {
			return nil, err
		}
	}

	if err := write(w.heights.Cells); err != nil {
		return nil, err
	}

	for _, k := range w.kinds {
		out := w.ctx.Outputs[k]
		if out == nil {
			if err := write(uint8(0)); err != nil {
				return nil, err
			}
			continue
		}
		if err := write(uint8(1)); err != nil {
			return nil, err
		}
		if err := write(out.Grid.Cells); err != nil {
			return nil, err
		}
		if err := write(out.Class.Cells); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// Decode reconstructs a World's grids from a blob produced by Encode. The
// returned World has no heightmap/layer generators attached and cannot call
// Generate again; it is read-only query state.
func Decode(data []byte) (*World, error) {
	r := bytes.NewReader(data)
	read := func(v any) error { return binary.Read(r, binary.LittleEndian, v) }

	var version uint32
	if err := read(&version); err != nil {
		return nil, err
	}
	if version != blobVersion {
		return nil, fmt.Errorf("juice: unsupported blob version %d", version)
	}

	var seed int64
	if err := read(&seed); err != nil {
		return nil, err
	}
	var n32 uint32
	if err := read(&n32); err != nil {
		return nil, err
	}
	n := int(n32)

	var numKinds uint32
	if err := read(&numKinds); err != nil {
		return nil, err
	}
	kinds := make([]layers.Kind, numKinds)
	for i := range kinds {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		kinds[i] = layers.Kind(s)
	}

	heights := grid.New(n)
	if err := read(heights.Cells); err != nil {
		return nil, err
	}

	ctx := &layers.Context{N: n, Heights: heights, Outputs: make(map[layers.Kind]*layers.Output)}
	for _, k := range kinds {
		var present uint8
		if err := read(&present); err != nil {
			return nil, err
		}
		if present == 0 {
			continue
		}

		g := grid.New(n)
		if err := read(g.Cells); err != nil {
			return nil, err
		}
		cg := grid.NewClassGrid(n)
		if err := read(cg.Cells); err != nil {
			return nil, err
		}
		ctx.Outputs[k] = &layers.Output{Grid: g, Class: cg}
	}

	// Cities aren't stored separately; they're exactly the City layer's
	// non-zero cells, visited in the same row-major order they were
	// originally assigned ids in.
	if out, ok := ctx.Outputs[layers.KindCity]; ok {
		id := 0
		out.Grid.ForEachNonZero(func(x, y int, _ uint8) {
			out.Cities = append(out.Cities, layers.City{ID: id, X: x, Y: y})
			id++
		})
	}

	return &World{seed: seed, n: n, kinds: kinds, heights: heights, ctx: ctx}, nil
}

func writeString(buf *bytes.Buffer, s string) error {
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := buf.WriteString(s)
	return err
}

func readString(r *bytes.Reader) (string, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return "", err
	}
	b := make([]byte, length)
	if _, err := r.Read(b); err != nil {
		return "", err
	}
	return string(b), nil
}
