package main

import (
	"flag"
	"fmt"
	"log"

	"territories/internal/config"
	"territories/internal/terrain"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML config file")
	rows := flag.Int("rows", 0, "grid rows (overrides config)")
	cols := flag.Int("cols", 0, "grid cols (overrides config)")
	seed := flag.Int64("seed", -1, "noise seed (overrides config when >= 0)")
	out := flag.String("out", "resources", "output directory for the grid dump")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	tc := cfg.Terrain
	if *rows > 0 {
		tc.Rows = *rows
	}
	if *cols > 0 {
		tc.Cols = *cols
	}
	if *seed >= 0 {
		tc.Seed = *seed
	}

	grid, _, err := terrain.Classify(tc)
	if err != nil {
		log.Fatal(err)
	}

	path, err := terrain.WriteArtifact(*out, grid)
	if err != nil {
		log.Fatal(err)
	}

	caps := terrain.Capacity(grid, terrain.MaxCapacity, terrain.SustainedFraction)
	fertile := 0
	for _, c := range caps.Max {
		if c > 0 {
			fertile++
		}
	}

	fmt.Printf("is soil: %d\n", grid.Count())
	fmt.Printf("fertile cells: %d (max capacity %v, sustained %v)\n",
		fertile, terrain.MaxCapacity, terrain.MaxCapacity*terrain.SustainedFraction)
	fmt.Printf("wrote %s\n", path)
}
