package world

import "sunaba/internal/material"

// Chemistry: temperature-driven state changes, ignition, combustion,
// fire lifecycle, and the data-driven neighbor reactions.

const (
	// fixedDT is the simulation timestep all chemistry rates scale by.
	fixedDT = 1.0 / 60.0

	// burnHeatPerSecond is emitted into a burning pixel's temperature
	// block each tick.
	burnHeatPerSecond = 120.0
	// fireHeatPerSecond is emitted into the blocks around a fire pixel.
	fireHeatPerSecond = 180.0
	// fireSpawnChance is the chance a consumed burning pixel spawns a
	// fire pixel in a random empty neighbor.
	fireSpawnChance = 0.3
	// fireBaseExtinguish is the per-tick extinction floor for fire.
	fireBaseExtinguish = 0.02
)

var neighborOffsets = [4][2]int32{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// checkIgnition sets the burning flag on flammable pixels hot enough
// to ignite with at least one air (oxygen) neighbor.
func (w *World) checkIgnition(wx, wy int32) {
	px, ok := w.manager.GetPixel(wx, wy)
	if !ok || px.IsEmpty() || px.Burning() {
		return
	}
	mat := w.materials.Get(px.Material)
	if !mat.Flammable || mat.IgnitionTemp == nil {
		return
	}
	if w.GetTemperature(wx, wy) < *mat.IgnitionTemp {
		return
	}

	hasOxygen := false
	for _, d := range neighborOffsets {
		if n, nok := w.manager.GetPixel(wx+d[0], wy+d[1]); nok && n.IsEmpty() {
			hasOxygen = true
			break
		}
	}
	if !hasOxygen {
		return
	}

	px.Flags |= FlagBurning
	w.manager.SetPixel(wx, wy, px)
	w.manager.MarkActiveAt(wx, wy)
}

// updateBurning advances combustion on a burning pixel. Returns true
// when the pixel was consumed this tick.
func (w *World) updateBurning(wx, wy int32, rng *Rand) bool {
	px, ok := w.manager.GetPixel(wx, wy)
	if !ok || !px.Burning() {
		return false
	}
	mat := w.materials.Get(px.Material)

	// Burning pixels feed heat into their temperature block.
	coord, lx, ly := WorldToChunk(wx, wy)
	if c := w.manager.GetChunk(coord); c != nil {
		c.AddHeat(lx, ly, burnHeatPerSecond*fixedDT)
	}
	// A burning pixel keeps its chunk scanned until it is consumed.
	w.manager.MarkActiveAt(wx, wy)

	if !rng.Chance(mat.BurnRate * fixedDT) {
		return false
	}

	// Consumed: replace with the burn product, or air.
	result := material.Air
	if mat.BurnsTo != nil {
		result = *mat.BurnsTo
	}
	w.manager.SetPixel(wx, wy, NewPixel(result))
	w.manager.MarkActiveAt(wx, wy)

	if rng.Chance(fireSpawnChance) {
		w.spawnFireNear(wx, wy, rng)
	}
	return true
}

// spawnFireNear places a fire pixel in a random empty 4-neighbor.
func (w *World) spawnFireNear(wx, wy int32, rng *Rand) {
	start := rng.Intn(4)
	for i := 0; i < 4; i++ {
		d := neighborOffsets[(start+i)%4]
		if n, ok := w.manager.GetPixel(wx+d[0], wy+d[1]); ok && n.IsEmpty() {
			w.manager.SetPixel(wx+d[0], wy+d[1], NewPixel(material.Fire))
			w.manager.MarkActiveAt(wx+d[0], wy+d[1])
			return
		}
	}
}

// updateFire runs the fire pixel lifecycle: heat neighbors, roll
// extinction (more likely surrounded by non-flammables, less next to
// fuel), then rise like a gas. Extinguished fire leaves smoke.
func (w *World) updateFire(wx, wy int32, stats StatsSink, rng *Rand) {
	coord, lx, ly := WorldToChunk(wx, wy)
	if c := w.manager.GetChunk(coord); c != nil {
		c.AddHeat(lx, ly, fireHeatPerSecond*fixedDT)
	}

	fuel := 0
	inert := 0
	for _, d := range neighborOffsets {
		n, ok := w.manager.GetPixel(wx+d[0], wy+d[1])
		if !ok || n.IsEmpty() {
			continue
		}
		// Heat solid neighbors so adjacent fuel reaches ignition.
		nc, nlx, nly := WorldToChunk(wx+d[0], wy+d[1])
		if c := w.manager.GetChunk(nc); c != nil {
			c.AddHeat(nlx, nly, fireHeatPerSecond*fixedDT)
		}
		if w.materials.Get(n.Material).Flammable {
			fuel++
		} else {
			inert++
		}
	}

	extinguish := fireBaseExtinguish + 0.04*float32(inert) - 0.015*float32(fuel)
	if extinguish < 0.005 {
		extinguish = 0.005
	}
	if rng.Chance(extinguish) {
		w.manager.SetPixel(wx, wy, NewPixel(material.Smoke))
		w.manager.MarkActiveAt(wx, wy)
		return
	}

	w.updateGas(wx, wy, w.materials.Get(material.Fire), stats, rng)
}

// checkChunkStateChanges sweeps one chunk for temperature-driven state
// changes: melting, boiling, and freezing. Missing transition targets
// leave the pixel unchanged.
func (w *World) checkChunkStateChanges(pos ChunkCoord, stats StatsSink) {
	chunk := w.manager.GetChunk(pos)
	if chunk == nil {
		return
	}

	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			px := chunk.GetPixel(x, y)
			if px.IsEmpty() {
				continue
			}
			mat := w.materials.Get(px.Material)
			if mat.HeatEmission > 0 {
				chunk.AddHeat(x, y, mat.HeatEmission*fixedDT)
			}
			t := chunk.TemperatureAt(x, y)

			var next *material.ID
			switch {
			case mat.MeltingPoint != nil && t >= *mat.MeltingPoint:
				next = mat.MeltsTo
			case mat.BoilingPoint != nil && t >= *mat.BoilingPoint:
				next = mat.BoilsTo
			case mat.FreezingPoint != nil && t <= *mat.FreezingPoint:
				next = mat.FreezesTo
			}
			if next == nil {
				continue
			}

			chunk.SetPixel(x, y, NewPixel(*next))
			chunk.SetSimulationActive(true)
			stats.RecordStateChanges(1)
		}
	}
}

// checkPixelReactions looks for registry reactions between the pixel
// and its 4-neighborhood. Each qualifying pair rolls independently; a
// successful reaction replaces both pixels and deposits heat into both
// temperature blocks.
func (w *World) checkPixelReactions(wx, wy int32, stats StatsSink, rng *Rand) {
	px, ok := w.manager.GetPixel(wx, wy)
	if !ok || px.IsEmpty() {
		return
	}

	for _, d := range neighborOffsets {
		nx, ny := wx+d[0], wy+d[1]
		n, nok := w.manager.GetPixel(nx, ny)
		if !nok || n.IsEmpty() {
			continue
		}

		r, found := w.reactions.Find(px.Material, n.Material)
		if !found || !rng.Chance(r.Probability) {
			continue
		}

		w.manager.SetPixel(wx, wy, NewPixel(r.ProductA))
		w.manager.SetPixel(nx, ny, NewPixel(r.ProductB))
		w.manager.MarkActiveAt(wx, wy)
		w.manager.MarkActiveAt(nx, ny)

		if r.HeatDelta != 0 {
			ca, lxa, lya := WorldToChunk(wx, wy)
			if c := w.manager.GetChunk(ca); c != nil {
				c.AddHeat(lxa, lya, r.HeatDelta)
			}
			cb, lxb, lyb := WorldToChunk(nx, ny)
			if c := w.manager.GetChunk(cb); c != nil {
				c.AddHeat(lxb, lyb, r.HeatDelta)
			}
		}
		stats.RecordReactions(1)
		return // the center pixel changed; later pairs see the product
	}
}
