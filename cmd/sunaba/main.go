// Command sunaba runs the simulation core headless: it builds (or
// loads) a world, steps it at a fixed rate, and reports tick stats.
// Rendering and input hosts embed the world facade instead.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"sunaba/internal/profiling"
	"sunaba/internal/world"
)

func main() {
	var (
		worldDir = flag.String("world", "", "world directory; empty runs the ephemeral test world")
		seed     = flag.Uint64("seed", 42, "world seed")
		ticks    = flag.Int("ticks", 600, "simulation ticks to run")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	w := world.New()
	w.SetGenerator(*seed)

	if *worldDir != "" {
		if err := w.LoadPersistentWorld(*worldDir); err != nil {
			slog.Error("load persistent world", "err", err)
			os.Exit(1)
		}
		defer w.SaveAllDirty()
	} else {
		w.DisablePersistence()
		w.GenerateTestWorld()
	}

	rng := world.NewRand(*seed)
	stats := &world.TickStats{}

	start := time.Now()
	for i := 0; i < *ticks; i++ {
		profiling.Reset()
		w.Update(world.FixedTimestep, stats, rng, false)
	}
	elapsed := time.Since(start)

	fmt.Printf("ran %d ticks in %s (%.1f ticks/s)\n", *ticks, elapsed.Round(time.Millisecond),
		float64(*ticks)/elapsed.Seconds())
	fmt.Printf("moves=%d state_changes=%d reactions=%d active_chunks=%d falling=%d\n",
		stats.Moves, stats.StateChanges, stats.Reactions,
		len(w.ActiveChunkPositions()), w.FallingChunkCount())
	if top := profiling.TopN(3); top != "" {
		fmt.Printf("last tick: %s\n", top)
	}
}
