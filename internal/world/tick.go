package world

import "sunaba/internal/profiling"

// Fixed-timestep driver and the per-step pipeline.

const (
	// FixedTimestep is the simulation step length: one CA tick.
	FixedTimestep = 1.0 / 60.0
	// MaxStepsPerUpdate caps catch-up so a slow host degrades
	// gracefully instead of spiraling.
	MaxStepsPerUpdate = 2
)

// Update advances the simulation by host time. It runs zero or more
// fixed steps (at most MaxStepsPerUpdate), then clamps the accumulator
// so catch-up stays bounded. The tick never fails; recoverable errors
// surface through the stats sink and logs.
func (w *World) Update(dt float32, stats StatsSink, rng *Rand, creatureHookEnabled bool) {
	if w.Player.Update(dt) {
		stats.RecordEvent("player", "died of starvation")
	}

	w.light.Update(dt)

	w.timeAccumulator += dt
	steps := 0
	for w.timeAccumulator >= FixedTimestep && steps < MaxStepsPerUpdate {
		w.stepSimulation(stats, rng, creatureHookEnabled)
		w.timeAccumulator -= FixedTimestep
		steps++
	}
	if w.timeAccumulator > FixedTimestep*2 {
		w.timeAccumulator = FixedTimestep
	}

	// Periodic auto-save of dirty chunks in persistent mode.
	if w.persistence.Store != nil {
		w.autoSaveTimer += dt
		if w.autoSaveTimer >= AutoSaveSeconds {
			w.autoSaveTimer = 0
			w.SaveDirtyChunks()
		}
	}
}

// stepSimulation executes one CA tick in the fixed order: active-set
// refresh, nearby loading, flag clearing, CA movement, the throttled
// temperature and light passes, state changes, structural checks,
// debris, pressure, regeneration, and the creature hook.
func (w *World) stepSimulation(stats StatsSink, rng *Rand, creatureHookEnabled bool) {
	defer profiling.Track("world.StepSimulation")()
	w.tickCount++

	// (a) Refresh the active set around the player.
	px := int32(w.Player.Position.X())
	py := int32(w.Player.Position.Y())
	w.manager.UpdateActiveChunks(px, py, ActiveChunkRadius)

	// (b) Dynamic chunk loading when the player enters a new chunk.
	current, _, _ := WorldToChunk(px, py)
	if w.manager.LastLoadChunkPos == nil || *w.manager.LastLoadChunkPos != current {
		w.persistence.LoadNearby(w.manager, w.Player.Position)
		pos := current
		w.manager.LastLoadChunkPos = &pos
	}

	// (c) Clear per-pixel updated flags.
	for _, pos := range w.manager.ActiveChunks {
		w.manager.Chunks[pos].ClearUpdateFlags()
	}

	// (d)+(e) Movement: decide which chunks to scan from last tick's
	// activity, reset the activity markers, then run the CA. Activity
	// is re-set by any successful move.
	toUpdate := w.manager.ActiveChunks[:0:0]
	for _, pos := range w.manager.ActiveChunks {
		if w.manager.NeedsCAUpdate(pos) {
			toUpdate = append(toUpdate, pos)
		}
	}
	for _, pos := range w.manager.ActiveChunks {
		w.manager.Chunks[pos].SetSimulationActive(false)
	}
	for _, pos := range toUpdate {
		w.updateChunkCA(pos, stats, rng)
	}

	// (f) Temperature diffusion, throttled to 30 Hz.
	w.temperature.Update(w.manager, w.materials, w.manager.ActiveChunks)

	// (g) Light propagation, throttled to 15 Hz.
	w.light.StepPropagation(w.manager, w.materials, w.manager.ActiveChunks)

	// (h) Temperature-driven state changes.
	for _, pos := range w.manager.ActiveChunks {
		w.checkChunkStateChanges(pos, stats)
	}

	// (i) Structural integrity checks queued this step.
	w.structural.ProcessChecks(w)

	// (j) Debris: integrate falling chunks, re-deposit settled ones.
	for _, fc := range w.debris.Update(FixedTimestep, w) {
		w.debris.Reconstruct(w.manager, fc)
	}

	// Pressure field rebuild over the active set.
	computePressure(w.manager, w.materials, w.manager.ActiveChunks)

	// (k) Regeneration.
	w.regen.Update(w, w.manager.ActiveChunks)

	// (l) External creature hook.
	if creatureHookEnabled && w.creatureHook != nil {
		w.creatureHook(w, FixedTimestep)
	}
}

// StepOnce forces exactly one simulation step regardless of the
// accumulator; scenario drivers and tests use it for tick-precise
// control.
func (w *World) StepOnce(stats StatsSink, rng *Rand) {
	w.stepSimulation(stats, rng, false)
}

// UpdateChunkSettle runs the CA over a single chunk, used to settle
// freshly generated terrain before players arrive.
func (w *World) UpdateChunkSettle(cx, cy int32, rng *Rand) {
	pos := ChunkCoord{X: cx, Y: cy}
	if !w.manager.Has(pos) {
		return
	}
	w.manager.Chunks[pos].ClearUpdateFlags()
	w.updateChunkCA(pos, NoopStats{}, rng)
}
