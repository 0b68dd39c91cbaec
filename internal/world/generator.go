package world

import (
	"fmt"

	"sunaba/internal/material"
)

// WorldFloorY is the world's vertical lower bound. Everything below it
// is bedrock, and structural checks treat reaching it as support.
const WorldFloorY int32 = -192

// GenConfig parameterizes terrain generation. It is swappable at
// runtime; swapping invalidates and regenerates all loaded chunks.
type GenConfig struct {
	// SurfaceLevel is the mean terrain surface height in world pixels.
	SurfaceLevel int32 `json:"surface_level"`
	// Amplitude scales the surface height variation in pixels.
	Amplitude float64 `json:"amplitude"`
	// Scale is the horizontal noise frequency.
	Scale float64 `json:"scale"`

	Octaves     int     `json:"octaves"`
	Persistence float64 `json:"persistence"`
	Lacunarity  float64 `json:"lacunarity"`

	// DirtDepth is how many pixels of dirt sit between grass and stone.
	DirtDepth int32 `json:"dirt_depth"`
	// CaveThreshold carves caves where cave noise exceeds it; values
	// at or above 1 disable caves.
	CaveThreshold float64 `json:"cave_threshold"`
	// OreChance is the per-pixel chance of an ore deposit in stone.
	OreChance float64 `json:"ore_chance"`
	// WaterLevel floods terrain below it with water.
	WaterLevel int32 `json:"water_level"`
}

// DefaultGenConfig returns the standard overworld configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		SurfaceLevel:  64,
		Amplitude:     48,
		Scale:         1.0 / 128.0,
		Octaves:       4,
		Persistence:   0.5,
		Lacunarity:    2.0,
		DirtDepth:     6,
		CaveThreshold: 0.74,
		OreChance:     0.015,
		WaterLevel:    40,
	}
}

// Validate rejects malformed configurations so a bad config can never
// reach the generator; on rejection the prior config stays in effect.
func (c GenConfig) Validate() error {
	if c.Octaves < 1 || c.Octaves > 8 {
		return fmt.Errorf("octaves must be in [1, 8], got %d", c.Octaves)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", c.Scale)
	}
	if c.Persistence <= 0 || c.Persistence > 1 {
		return fmt.Errorf("persistence must be in (0, 1], got %g", c.Persistence)
	}
	if c.Lacunarity < 1 {
		return fmt.Errorf("lacunarity must be >= 1, got %g", c.Lacunarity)
	}
	if c.Amplitude < 0 {
		return fmt.Errorf("amplitude must be non-negative, got %g", c.Amplitude)
	}
	if c.DirtDepth < 0 {
		return fmt.Errorf("dirt depth must be non-negative, got %d", c.DirtDepth)
	}
	if c.SurfaceLevel <= WorldFloorY {
		return fmt.Errorf("surface level %d must be above the world floor %d", c.SurfaceLevel, WorldFloorY)
	}
	return nil
}

// Generator produces chunks deterministically from (seed, cx, cy,
// config). GenerateChunk is a pure function of those inputs.
type Generator struct {
	Seed uint64
	cfg  GenConfig
}

// NewGenerator creates a generator with the default configuration.
func NewGenerator(seed uint64) *Generator {
	return &Generator{Seed: seed, cfg: DefaultGenConfig()}
}

// Config returns the active configuration.
func (g *Generator) Config() GenConfig { return g.cfg }

// UpdateConfig swaps the configuration after validation; an invalid
// config is rejected and the prior one remains in effect.
func (g *Generator) UpdateConfig(cfg GenConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generator config rejected: %w", err)
	}
	g.cfg = cfg
	return nil
}

// SurfaceHeightAt computes the terrain surface height at world x.
func (g *Generator) SurfaceHeightAt(wx int32) int32 {
	n := octaveNoise2D(float64(wx)*g.cfg.Scale, 0, g.Seed, g.cfg.Octaves, g.cfg.Persistence, g.cfg.Lacunarity)
	return g.cfg.SurfaceLevel + int32((n-0.5)*2*g.cfg.Amplitude)
}

func (g *Generator) caveAt(wx, wy int32) bool {
	if g.cfg.CaveThreshold >= 1 {
		return false
	}
	n := octaveNoise2D(float64(wx)*0.03, float64(wy)*0.03, g.Seed^0xCA7E, 3, 0.5, 2.0)
	return n > g.cfg.CaveThreshold
}

// GenerateChunk deterministically produces the chunk at (cx, cy).
func (g *Generator) GenerateChunk(cx, cy int32) *Chunk {
	c := NewChunk(cx, cy)

	baseX := cx * ChunkSize
	baseY := cy * ChunkSize

	for lx := 0; lx < ChunkSize; lx++ {
		wx := baseX + int32(lx)
		surface := g.SurfaceHeightAt(wx)

		for ly := 0; ly < ChunkSize; ly++ {
			wy := baseY + int32(ly)

			if wy < WorldFloorY+TempBlockSize {
				c.SetMaterial(lx, ly, material.Bedrock)
				continue
			}

			switch {
			case wy > surface:
				if wy <= g.cfg.WaterLevel {
					c.SetMaterial(lx, ly, material.Water)
				}
			case wy == surface:
				if g.caveAt(wx, wy) {
					break
				}
				if wy < g.cfg.WaterLevel {
					c.SetMaterial(lx, ly, material.Sand)
				} else {
					c.SetMaterial(lx, ly, material.Grass)
				}
			case wy > surface-g.cfg.DirtDepth:
				if g.caveAt(wx, wy) {
					break
				}
				c.SetMaterial(lx, ly, material.Dirt)
			default:
				if g.caveAt(wx, wy) {
					break
				}
				id := material.Stone
				if g.cfg.OreChance > 0 {
					roll := float64(hash2D(g.Seed^0x04E5, wx, wy)&0xFFFFF) / float64(0xFFFFF)
					if roll < g.cfg.OreChance {
						if hash2D(g.Seed^0x0C0A, wx, wy)&1 == 0 {
							id = material.IronOre
						} else {
							id = material.Coal
						}
					}
				}
				c.SetMaterial(lx, ly, id)
			}
		}
	}

	// Freshly generated chunks have no on-disk copy yet.
	c.Dirty = true
	return c
}
