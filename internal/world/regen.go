package world

import "sunaba/internal/material"

// RegenerationSystem spawns edible plant matter in eligible cells so
// the world stays non-monotonic: an air cell next to water, with light
// of at least 8, temperature between 10 and 40 C, at the growth
// timer's phase edge. Disabled in ephemeral mode.
type RegenerationSystem struct {
	Enabled bool

	// MaxSpawnsPerChunk caps growth per chunk per pulse.
	MaxSpawnsPerChunk int
	// SpawnChance gates each eligible cell, keyed by position hash so
	// growth is deterministic without consuming shared PRNG state.
	SpawnChance float64
}

// NewRegenerationSystem creates the regrowth sweep.
func NewRegenerationSystem() *RegenerationSystem {
	return &RegenerationSystem{
		Enabled:           true,
		MaxSpawnsPerChunk: 3,
		SpawnChance:       0.002,
	}
}

// Update runs the regrowth sweep when the growth pulse fires.
func (rs *RegenerationSystem) Update(w *World, active []ChunkCoord) {
	if !rs.Enabled || w.manager.Ephemeral || !w.light.GrowthPulse() {
		return
	}

	seed := w.persistence.Generator.Seed ^ w.tickCount

	for _, pos := range active {
		chunk := w.manager.Chunks[pos]
		spawned := 0

		for ly := 0; ly < ChunkSize && spawned < rs.MaxSpawnsPerChunk; ly++ {
			for lx := 0; lx < ChunkSize && spawned < rs.MaxSpawnsPerChunk; lx++ {
				if chunk.Pixels[pixelIndex(lx, ly)].Material != material.Air {
					continue
				}
				if chunk.Light[pixelIndex(lx, ly)] < 8 {
					continue
				}
				t := chunk.TemperatureAt(lx, ly)
				if t < 10 || t > 40 {
					continue
				}

				wx, wy := ChunkToWorld(pos, lx, ly)
				if !w.hasAdjacentWater(wx, wy) {
					continue
				}
				roll := float64(hash2D(seed, wx, wy)&0xFFFFF) / float64(0xFFFFF)
				if roll >= rs.SpawnChance {
					continue
				}

				chunk.SetPixel(lx, ly, NewPixel(material.Berry))
				chunk.SetSimulationActive(true)
				spawned++
			}
		}
	}
}

func (w *World) hasAdjacentWater(wx, wy int32) bool {
	for _, d := range neighborOffsets {
		if p, ok := w.manager.GetPixel(wx+d[0], wy+d[1]); ok && p.Material == material.Water {
			return true
		}
	}
	return false
}
