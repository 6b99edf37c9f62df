//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"territories/internal/app"
	"territories/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML config file")
	seed := flag.Int64("seed", -1, "noise seed (overrides config when >= 0)")
	scale := flag.Int("scale", 8, "display pixels per terrain cell")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	tc := cfg.Terrain
	if *seed >= 0 {
		tc.Seed = *seed
	}
	if *scale < 1 {
		*scale = 1
	}

	targetH := tc.Rows * *scale
	targetW := tc.Cols * *scale
	viewer, err := app.New(tc, targetH, targetW)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle(fmt.Sprintf("territories — %dx%d seed %d", tc.Rows, tc.Cols, tc.Seed))
	ebiten.SetWindowSize(targetW, targetH)

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
