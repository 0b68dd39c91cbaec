package world

import "sunaba/internal/material"

// TemperatureSim diffuses the 8x8-resolution heat field over active
// chunks and one ring of neighbors. It steps every second CA tick
// (30 Hz effective).
type TemperatureSim struct {
	tick uint64
}

const (
	// tempInterval is the cadence in CA ticks.
	tempInterval = 2
	// diffusionAlpha scales the 5-point stencil exchange per step.
	diffusionAlpha = 0.5
)

// NewTemperatureSim creates the temperature stepper.
func NewTemperatureSim() *TemperatureSim {
	return &TemperatureSim{}
}

// Update advances the cadence counter and, when it fires, diffuses the
// temperature field. Boundary samples into unloaded chunks clamp to
// ambient.
func (ts *TemperatureSim) Update(cm *ChunkManager, materials *material.Registry, active []ChunkCoord) {
	ts.tick++
	if ts.tick%tempInterval != 0 {
		return
	}

	// Active chunks plus one ring of loaded neighbors, deduplicated,
	// in deterministic order.
	seen := make(map[ChunkCoord]bool, len(active)*2)
	var coords []ChunkCoord
	for _, pos := range active {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				n := ChunkCoord{X: pos.X + dx, Y: pos.Y + dy}
				if seen[n] || !cm.Has(n) {
					continue
				}
				seen[n] = true
				coords = append(coords, n)
			}
		}
	}

	// Snapshot, then write, so the stencil reads a consistent field.
	snapshot := make(map[ChunkCoord][TempGridSize * TempGridSize]float32, len(coords))
	for _, pos := range coords {
		snapshot[pos] = cm.Chunks[pos].Temperature
	}

	sampleAt := func(pos ChunkCoord, sx, sy int) float32 {
		for sx < 0 {
			sx += TempGridSize
			pos.X--
		}
		for sx >= TempGridSize {
			sx -= TempGridSize
			pos.X++
		}
		for sy < 0 {
			sy += TempGridSize
			pos.Y--
		}
		for sy >= TempGridSize {
			sy -= TempGridSize
			pos.Y++
		}
		if grid, ok := snapshot[pos]; ok {
			return grid[sy*TempGridSize+sx]
		}
		if c := cm.GetChunk(pos); c != nil {
			return c.Temperature[sy*TempGridSize+sx]
		}
		return Ambient
	}

	for _, pos := range coords {
		chunk := cm.Chunks[pos]
		grid := snapshot[pos]
		for sy := 0; sy < TempGridSize; sy++ {
			for sx := 0; sx < TempGridSize; sx++ {
				t := grid[sy*TempGridSize+sx]
				sum := sampleAt(pos, sx, sy-1) + sampleAt(pos, sx, sy+1) +
					sampleAt(pos, sx-1, sy) + sampleAt(pos, sx+1, sy)
				k := blockConductivity(materials, chunk, sx, sy)
				chunk.Temperature[sy*TempGridSize+sx] = t + k*diffusionAlpha*(sum/4-t)
			}
		}
	}
}

// blockConductivity averages the heat conductivity of the materials
// under one 8x8 sample.
func blockConductivity(materials *material.Registry, c *Chunk, sx, sy int) float32 {
	var sum float32
	for py := sy * TempBlockSize; py < (sy+1)*TempBlockSize; py++ {
		for px := sx * TempBlockSize; px < (sx+1)*TempBlockSize; px++ {
			sum += materials.Get(c.Pixels[pixelIndex(px, py)].Material).HeatConductivity
		}
	}
	return sum / (TempBlockSize * TempBlockSize)
}
