package world

import (
	"log/slog"
	"sort"

	"sunaba/internal/material"
)

// ChunkCoord identifies a chunk in the infinite grid.
type ChunkCoord struct {
	X, Y int32
}

// ChunkManager owns the chunk map and the active-set bookkeeping, and
// provides the world-to-local coordinate math.
type ChunkManager struct {
	Chunks map[ChunkCoord]*Chunk

	// ActiveChunks is the ordered set of chunks within the simulation
	// radius of the view center, sorted by (cx, cy) so iteration is
	// deterministic.
	ActiveChunks []ChunkCoord

	// LastLoadChunkPos caches the chunk the player occupied when
	// nearby loading last ran.
	LastLoadChunkPos *ChunkCoord

	// Ephemeral disables dynamic loading so scenario-built chunks are
	// never overwritten by generation.
	Ephemeral bool

	// LoadedChunkLimit caps the loaded-chunk count; exceeding it
	// triggers eviction of distant chunks.
	LoadedChunkLimit int
}

// NewChunkManager creates an empty chunk manager.
func NewChunkManager() *ChunkManager {
	return &ChunkManager{
		Chunks:           make(map[ChunkCoord]*Chunk),
		LoadedChunkLimit: 1024,
	}
}

// floorDiv performs mathematical floor division for integers.
func floorDiv(a, b int32) int32 {
	q := a / b
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		q--
	}
	return q
}

// euclidMod returns the remainder of a/b, always in [0, b).
func euclidMod(a, b int32) int32 {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// WorldToChunk converts world pixel coordinates to the owning chunk
// coordinate and the local offsets within it.
func WorldToChunk(wx, wy int32) (ChunkCoord, int, int) {
	coord := ChunkCoord{X: floorDiv(wx, ChunkSize), Y: floorDiv(wy, ChunkSize)}
	return coord, int(euclidMod(wx, ChunkSize)), int(euclidMod(wy, ChunkSize))
}

// ChunkToWorld returns the world coordinates of the local cell (lx, ly)
// in the given chunk.
func ChunkToWorld(coord ChunkCoord, lx, ly int) (int32, int32) {
	return coord.X*ChunkSize + int32(lx), coord.Y*ChunkSize + int32(ly)
}

// GetChunk returns the loaded chunk at the given coordinate, or nil.
func (cm *ChunkManager) GetChunk(coord ChunkCoord) *Chunk {
	return cm.Chunks[coord]
}

// GetPixel returns the pixel at world coordinates. The second return
// is false iff the owning chunk is not loaded.
func (cm *ChunkManager) GetPixel(wx, wy int32) (Pixel, bool) {
	coord, lx, ly := WorldToChunk(wx, wy)
	c, ok := cm.Chunks[coord]
	if !ok {
		return Pixel{}, false
	}
	return c.GetPixel(lx, ly), true
}

// SetPixel writes the pixel at world coordinates into the owning chunk
// and marks it dirty. Writes against unloaded chunks are dropped with
// a warning; callers needing guaranteed writes use EnsureArea first.
func (cm *ChunkManager) SetPixel(wx, wy int32, p Pixel) bool {
	coord, lx, ly := WorldToChunk(wx, wy)
	c, ok := cm.Chunks[coord]
	if !ok {
		slog.Warn("set_pixel against unloaded chunk",
			"chunk_x", coord.X, "chunk_y", coord.Y, "world_x", wx, "world_y", wy)
		return false
	}
	c.SetPixel(lx, ly, p)
	return true
}

// EnsureArea creates empty chunks covering the given world-coordinate
// rectangle. Existing chunks are left untouched, so the call is
// idempotent.
func (cm *ChunkManager) EnsureArea(minX, minY, maxX, maxY int32) {
	minC, _, _ := WorldToChunk(minX, minY)
	maxC, _, _ := WorldToChunk(maxX, maxY)
	for cy := minC.Y; cy <= maxC.Y; cy++ {
		for cx := minC.X; cx <= maxC.X; cx++ {
			coord := ChunkCoord{X: cx, Y: cy}
			if _, ok := cm.Chunks[coord]; !ok {
				cm.Chunks[coord] = NewChunk(cx, cy)
			}
		}
	}
}

// Insert adds a chunk to the map, replacing any existing one.
func (cm *ChunkManager) Insert(c *Chunk) {
	cm.Chunks[ChunkCoord{X: c.X, Y: c.Y}] = c
}

// Has reports whether a chunk is loaded.
func (cm *ChunkManager) Has(coord ChunkCoord) bool {
	_, ok := cm.Chunks[coord]
	return ok
}

// UpdateActiveChunks rebuilds the active set: every loaded chunk whose
// Chebyshev distance from the center chunk is at most radius. The scan
// walks the radius square in a fixed order, so the resulting sequence
// is deterministic without sorting on map iteration.
func (cm *ChunkManager) UpdateActiveChunks(centerX, centerY int32, radius int32) {
	center, _, _ := WorldToChunk(centerX, centerY)
	cm.ActiveChunks = cm.ActiveChunks[:0]
	for cx := center.X - radius; cx <= center.X+radius; cx++ {
		for cy := center.Y - radius; cy <= center.Y+radius; cy++ {
			coord := ChunkCoord{X: cx, Y: cy}
			if _, ok := cm.Chunks[coord]; ok {
				cm.ActiveChunks = append(cm.ActiveChunks, coord)
			}
		}
	}
}

// NeedsCAUpdate reports whether the chunk's 3x3 neighborhood contained
// any activity at the prior tick.
func (cm *ChunkManager) NeedsCAUpdate(coord ChunkCoord) bool {
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			n := ChunkCoord{X: coord.X + dx, Y: coord.Y + dy}
			if c, ok := cm.Chunks[n]; ok && c.SimulationActive() {
				return true
			}
		}
	}
	return false
}

// MarkActiveAt flags the chunk owning the world coordinates as having
// simulation activity this tick.
func (cm *ChunkManager) MarkActiveAt(wx, wy int32) {
	coord, _, _ := WorldToChunk(wx, wy)
	if c, ok := cm.Chunks[coord]; ok {
		c.SetSimulationActive(true)
	}
}

// SortedCoords returns all loaded chunk coordinates sorted by (cx, cy).
func (cm *ChunkManager) SortedCoords() []ChunkCoord {
	coords := make([]ChunkCoord, 0, len(cm.Chunks))
	for coord := range cm.Chunks {
		coords = append(coords, coord)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].X != coords[j].X {
			return coords[i].X < coords[j].X
		}
		return coords[i].Y < coords[j].Y
	})
	return coords
}

// MaterialAt returns the material id at world coordinates, or air with
// ok=false when the chunk is not loaded.
func (cm *ChunkManager) MaterialAt(wx, wy int32) (material.ID, bool) {
	p, ok := cm.GetPixel(wx, wy)
	if !ok {
		return material.Air, false
	}
	return p.Material, true
}
