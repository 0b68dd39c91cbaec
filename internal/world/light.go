package world

import (
	"math"

	"sunaba/internal/material"
	"sunaba/internal/profiling"
)

// LightSystem drives the day/night cycle, the growth timer, and the
// per-pixel 0-15 light propagation. Propagation steps every fourth CA
// tick (15 Hz effective).
type LightSystem struct {
	tick uint64

	// DayPhase is the position within the day/night cycle in seconds.
	DayPhase float32
	// CycleSeconds is the full day/night cycle length.
	CycleSeconds float32

	// growthTimer accumulates toward the 10-second growth pulse that
	// gates regeneration.
	growthTimer float32
	growthPulse bool
}

const (
	lightInterval = 4
	// MaxLight is the brightest light level.
	MaxLight uint8 = 15
	// GrowthCycleSeconds is the growth timer period.
	GrowthCycleSeconds = 10.0
)

// NewLightSystem creates the light system starting at midday so new
// worlds begin in full daylight.
func NewLightSystem() *LightSystem {
	return &LightSystem{
		CycleSeconds: 600,
		DayPhase:     300,
	}
}

// Update advances the day/night phase and growth timer by host time.
func (ls *LightSystem) Update(dt float32) {
	ls.DayPhase += dt
	for ls.DayPhase >= ls.CycleSeconds {
		ls.DayPhase -= ls.CycleSeconds
	}

	ls.growthTimer += dt
	ls.growthPulse = false
	for ls.growthTimer >= GrowthCycleSeconds {
		ls.growthTimer -= GrowthCycleSeconds
		ls.growthPulse = true
	}
}

// GrowthPulse reports whether the growth timer wrapped this frame.
func (ls *LightSystem) GrowthPulse() bool { return ls.growthPulse }

// GrowthProgressPercent returns progress through the growth cycle.
func (ls *LightSystem) GrowthProgressPercent() float32 {
	return ls.growthTimer / GrowthCycleSeconds * 100
}

// SkyLight returns the current sky emission level. The curve is a
// raised cosine over the cycle: dark at phase 0, full at half cycle.
func (ls *LightSystem) SkyLight() uint8 {
	f := float64(ls.DayPhase / ls.CycleSeconds)
	brightness := 0.5 - 0.5*math.Cos(2*math.Pi*f)
	return uint8(math.Round(brightness * float64(MaxLight)))
}

// StepPropagation recomputes light for the active chunks when the
// cadence fires: clear, seed sky columns and emissive materials, then
// BFS-flood outward, attenuating per material.
func (ls *LightSystem) StepPropagation(cm *ChunkManager, materials *material.Registry, active []ChunkCoord) {
	ls.tick++
	if ls.tick%lightInterval != 0 {
		return
	}
	ls.Recompute(cm, materials, active)
}

type lightNode struct {
	wx, wy int32
	level  uint8
}

// Recompute runs one full propagation pass immediately, regardless of
// cadence. Used at world initialization.
func (ls *LightSystem) Recompute(cm *ChunkManager, materials *material.Registry, active []ChunkCoord) {
	defer profiling.Track("world.LightRecompute")()
	inSet := make(map[ChunkCoord]bool, len(active))
	for _, pos := range active {
		inSet[pos] = true
	}

	for _, pos := range active {
		c := cm.Chunks[pos]
		for i := range c.Light {
			c.Light[i] = 0
		}
	}

	sky := ls.SkyLight()
	var queue []lightNode

	// Seed sky columns top-down. A column is exterior while no chunk
	// in the active set sits above it; sky light fills air cells until
	// the first occupied cell.
	skyOpen := make(map[[2]int32]bool)
	// Process in descending chunk Y so a column's state flows down.
	ordered := make([]ChunkCoord, len(active))
	copy(ordered, active)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].Y > ordered[i].Y || (ordered[j].Y == ordered[i].Y && ordered[j].X < ordered[i].X) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	for _, pos := range ordered {
		c := cm.Chunks[pos]
		above := ChunkCoord{X: pos.X, Y: pos.Y + 1}
		for lx := 0; lx < ChunkSize; lx++ {
			wx := pos.X*ChunkSize + int32(lx)
			open, tracked := skyOpen[[2]int32{wx, above.Y}]
			if !tracked {
				open = !inSet[above]
			}
			if sky > 0 && open {
				for ly := ChunkSize - 1; ly >= 0; ly-- {
					if c.Pixels[pixelIndex(lx, ly)].Material != material.Air {
						open = false
						break
					}
					c.Light[pixelIndex(lx, ly)] = sky
					queue = append(queue, lightNode{wx: wx, wy: pos.Y*ChunkSize + int32(ly), level: sky})
				}
			} else {
				open = false
			}
			skyOpen[[2]int32{wx, pos.Y}] = open
		}

		// Emissive materials.
		for ly := 0; ly < ChunkSize; ly++ {
			for lx := 0; lx < ChunkSize; lx++ {
				emission := materials.Get(c.Pixels[pixelIndex(lx, ly)].Material).LightEmission
				if emission == 0 {
					continue
				}
				if emission > c.Light[pixelIndex(lx, ly)] {
					c.Light[pixelIndex(lx, ly)] = emission
					queue = append(queue, lightNode{
						wx: pos.X*ChunkSize + int32(lx), wy: pos.Y*ChunkSize + int32(ly), level: emission,
					})
				}
			}
		}
	}

	// BFS flood. Light only settles in chunks of the active set.
	for head := 0; head < len(queue); head++ {
		n := queue[head]
		if n.level <= 1 {
			continue
		}
		for _, d := range neighborOffsets {
			nx, ny := n.wx+d[0], n.wy+d[1]
			coord, lx, ly := WorldToChunk(nx, ny)
			if !inSet[coord] {
				continue
			}
			c := cm.Chunks[coord]
			att := materials.Get(c.Pixels[pixelIndex(lx, ly)].Material).LightAttenuation()
			if n.level <= att {
				continue
			}
			next := n.level - att
			if next <= c.Light[pixelIndex(lx, ly)] {
				continue
			}
			c.Light[pixelIndex(lx, ly)] = next
			queue = append(queue, lightNode{wx: nx, wy: ny, level: next})
		}
	}
}

// SetLightAt writes a light level directly; used by hosts for placed
// light sources between propagation passes.
func (ls *LightSystem) SetLightAt(cm *ChunkManager, wx, wy int32, level uint8) {
	coord, lx, ly := WorldToChunk(wx, wy)
	if c := cm.GetChunk(coord); c != nil {
		c.SetLight(lx, ly, level)
	}
}
