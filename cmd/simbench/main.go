package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"territories/internal/config"
	"territories/internal/harness"
	"territories/internal/replay"
	"territories/internal/terrain"

	_ "territories/internal/engine/loopback"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML config file")
	engineName := flag.String("engine", "loopback", "registered engine to drive")
	envs := flag.Int("envs", 0, "environment count (overrides config)")
	agents := flag.Int("agents", 0, "agents per environment (overrides config)")
	timeout := flag.Duration("timeout", 10*time.Second, "benchmark duration")
	atnCache := flag.Int("atn-cache", 1024, "pre-rolled action batches")
	logPath := flag.String("log", "", "write aggregate logs to this zstd JSONL file")
	replayPath := flag.String("replay", "", "record replay frames to this zstd JSONL file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	pc := cfg.Pool
	if *envs > 0 {
		pc.NumEnvs = *envs
	}
	if *agents > 0 {
		pc.AgentsPerEnv = *agents
	}
	if *replayPath != "" {
		pc.RenderMode = "replay"
	}

	factory, ok := harness.Engines()[*engineName]
	if !ok {
		log.Fatalf("unknown engine %q", *engineName)
	}

	grid, _, err := terrain.Classify(cfg.Terrain)
	if err != nil {
		log.Fatal(err)
	}
	pc.Capacity = terrain.Capacity(grid, terrain.MaxCapacity, terrain.SustainedFraction).Max
	pc.Width, pc.Height = grid.Cols, grid.Rows

	pool, err := harness.New(pc, factory(nil), nil)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	var logW, replayW *replay.Writer
	if *logPath != "" {
		if logW, err = replay.NewWriter(*logPath); err != nil {
			log.Fatal(err)
		}
		defer logW.Close()
	}
	if *replayPath != "" {
		if replayW, err = replay.NewWriter(*replayPath); err != nil {
			log.Fatal(err)
		}
		defer replayW.Close()
	}

	_, alive, err := pool.Reset(pc.Seed)
	if err != nil {
		log.Fatal(err)
	}

	// Pre-roll action batches so the hot loop measures the harness, not
	// the RNG.
	rng := rand.New(rand.NewPCG(uint64(pc.Seed), 0))
	cache := make([][]int32, *atnCache)
	n := pool.Layout().NumAgents()
	for i := range cache {
		batch := make([]int32, n)
		for j := range batch {
			batch[j] = int32(rng.IntN(harness.NumActions))
		}
		cache[i] = batch
	}

	steps := 0
	tick := 0
	start := time.Now()
	for time.Since(start) < *timeout {
		acting := 0
		for _, a := range alive {
			if a {
				acting++
			}
		}
		if acting == 0 {
			if _, alive, err = pool.Reset(pc.Seed); err != nil {
				log.Fatal(err)
			}
			continue
		}

		batch := cache[tick%*atnCache]
		actions := make([]int32, 0, acting)
		for i, a := range alive {
			if a {
				actions = append(actions, batch[i])
			}
		}

		res, err := pool.Step(actions, nil)
		if err != nil {
			log.Fatal(err)
		}
		alive = res.Alive
		steps += acting
		tick++

		if logW != nil {
			for _, entry := range res.Infos {
				if err := logW.Write(entry); err != nil {
					log.Fatal(err)
				}
			}
		}
		if replayW != nil {
			frame, err := pool.Render(harness.RenderReplay)
			if err != nil {
				log.Fatal(err)
			}
			if err := replayW.Write(frame); err != nil {
				log.Fatal(err)
			}
		}
	}

	elapsed := time.Since(start).Seconds()
	fmt.Printf("territories (%s, %d envs x %d agents): SPS: %.0f\n",
		*engineName, pc.NumEnvs, pc.AgentsPerEnv, float64(steps)/elapsed)
}
