// Command juicegen drives a single world generation run from the command
// line and dumps a coarse ASCII view of the result. It exists purely as a
// convenience wrapper around the juice package; the rendering, input, and
// save-file UX it would need for a real game are out of scope (spec.md §1).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tambeta/juice"
	"github.com/tambeta/juice/layers"
)

func main() {
	seed := flag.Int64("seed", 1, "generation seed")
	dim := flag.Int("dim", 64, "grid side length, must be a power of two")
	out := flag.String("out", "", "write the generated world as a binary blob to this path (optional)")
	flag.Parse()

	w, err := juice.New(*seed, *dim, []layers.Kind{
		layers.KindSea, layers.KindRiver, layers.KindDelta,
		layers.KindBiome, layers.KindCity, layers.KindRoad,
	})
	if err != nil {
		log.Fatalf("juicegen: %v", err)
	}

	err = w.Generate(func(stage string) {
		fmt.Fprintf(os.Stderr, "juicegen: generated %s\n", stage)
	})
	if err != nil {
		log.Fatalf("juicegen: generation failed: %v", err)
	}

	printWorld(w)

	if *out != "" {
		blob, err := w.Encode()
		if err != nil {
			log.Fatalf("juicegen: encode: %v", err)
		}
		if err := os.WriteFile(*out, blob, 0o644); err != nil {
			log.Fatalf("juicegen: write %s: %v", *out, err)
		}
		fmt.Fprintf(os.Stderr, "juicegen: wrote %d bytes to %s\n", len(blob), *out)
	}
}

// printWorld dumps a coarse top-down view: sea as '~', river as '~' (bold
// in a real terminal, plain here), biome forest/desert as 'f'/'d', cities as
// '@', roads as '=', bare land as '.'.
func printWorld(w *juice.World) {
	n := w.N()
	sea, _ := w.Layer(layers.KindSea)
	river, _ := w.Layer(layers.KindRiver)
	biome, _ := w.Layer(layers.KindBiome)
	road, _ := w.Layer(layers.KindRoad)
	city, _ := w.Layer(layers.KindCity)

	for y := 0; y < n; y++ {
		row := make([]byte, n)
		for x := 0; x < n; x++ {
			row[x] = '.'
			if biome != nil {
				switch biome.Grid.At(x, y) {
				case 1:
					row[x] = 'f'
				case 2:
					row[x] = 'd'
				}
			}
			if river != nil && river.Grid.At(x, y) != 0 {
				row[x] = '~'
			}
			if sea != nil && sea.Grid.At(x, y) != 0 {
				row[x] = '~'
			}
			if road != nil && road.Grid.At(x, y) != 0 {
				row[x] = '='
			}
			if city != nil && city.Grid.At(x, y) != 0 {
				row[x] = '@'
			}
		}
		fmt.Println(string(row))
	}

	fmt.Printf("%d cities\n", len(w.Cities()))
}
