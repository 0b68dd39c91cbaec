package world

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"sunaba/internal/player"
)

const (
	// InitialLoadRadius is the chunk radius loaded around spawn.
	InitialLoadRadius int32 = 8
	// NearbyLoadRadius is the chunk radius loaded when the player
	// enters a new chunk.
	NearbyLoadRadius int32 = 20
	// EvictDistance is the Chebyshev chunk distance beyond which
	// chunks are evicted once the loaded count exceeds the limit.
	EvictDistance int32 = 10
	// AutoSaveSeconds is the wall-time between periodic dirty saves.
	AutoSaveSeconds = 60.0
)

// PersistenceSystem layers chunk lifecycle policy over the Store:
// radius loading, LRU-bounded eviction, and dirty-save sweeps. A nil
// Store means ephemeral mode: chunks always generate, nothing touches
// disk.
type PersistenceSystem struct {
	Store     *Store
	Generator *Generator
}

// NewPersistenceSystem creates a persistence system in ephemeral mode
// with a generator for the given seed.
func NewPersistenceSystem(seed uint64) *PersistenceSystem {
	return &PersistenceSystem{Generator: NewGenerator(seed)}
}

// SetSeed replaces the generator with one for a new seed.
func (ps *PersistenceSystem) SetSeed(seed uint64) {
	ps.Generator = NewGenerator(seed)
}

// LoadChunksAround loads or generates every chunk in the square of
// InitialLoadRadius around the center position.
func (ps *PersistenceSystem) LoadChunksAround(cm *ChunkManager, center mgl32.Vec2) {
	centerChunk, _, _ := WorldToChunk(int32(center.X()), int32(center.Y()))
	for cy := centerChunk.Y - InitialLoadRadius; cy <= centerChunk.Y+InitialLoadRadius; cy++ {
		for cx := centerChunk.X - InitialLoadRadius; cx <= centerChunk.X+InitialLoadRadius; cx++ {
			ps.LoadOrGenerate(cm, cx, cy, center)
		}
	}
}

// LoadNearby loads the NearbyLoadRadius ring around the player; called
// when the player enters a new chunk. Skipped in ephemeral mode so
// scenario chunks stay untouched.
func (ps *PersistenceSystem) LoadNearby(cm *ChunkManager, center mgl32.Vec2) {
	if cm.Ephemeral {
		return
	}
	centerChunk, _, _ := WorldToChunk(int32(center.X()), int32(center.Y()))
	for cy := centerChunk.Y - NearbyLoadRadius; cy <= centerChunk.Y+NearbyLoadRadius; cy++ {
		for cx := centerChunk.X - NearbyLoadRadius; cx <= centerChunk.X+NearbyLoadRadius; cx++ {
			ps.LoadOrGenerate(cm, cx, cy, center)
		}
	}
}

// LoadOrGenerate ensures the chunk at (cx, cy) is loaded, reading from
// disk when persistent and generating otherwise. Exceeding the loaded
// chunk limit evicts distant chunks.
func (ps *PersistenceSystem) LoadOrGenerate(cm *ChunkManager, cx, cy int32, center mgl32.Vec2) {
	coord := ChunkCoord{X: cx, Y: cy}
	if cm.Has(coord) {
		return
	}

	var chunk *Chunk
	if ps.Store != nil {
		chunk = ps.Store.LoadChunk(cx, cy, ps.Generator)
	} else {
		chunk = ps.Generator.GenerateChunk(cx, cy)
	}
	cm.Insert(chunk)

	if len(cm.Chunks) > cm.LoadedChunkLimit {
		ps.EvictDistant(cm, center)
	}
}

// EvictDistant unloads chunks with Chebyshev distance greater than
// EvictDistance from the center, saving dirty ones first in persistent
// mode. Save failures keep the chunk's in-memory state authoritative:
// the error is logged and the chunk stays loaded and dirty, so a later
// save sweep or eviction pass retries the write.
func (ps *PersistenceSystem) EvictDistant(cm *ChunkManager, center mgl32.Vec2) {
	centerChunk, _, _ := WorldToChunk(int32(center.X()), int32(center.Y()))

	for _, coord := range cm.SortedCoords() {
		dx := coord.X - centerChunk.X
		if dx < 0 {
			dx = -dx
		}
		dy := coord.Y - centerChunk.Y
		if dy < 0 {
			dy = -dy
		}
		if dx <= EvictDistance && dy <= EvictDistance {
			continue
		}

		chunk := cm.Chunks[coord]
		if chunk.Dirty && ps.Store != nil {
			if err := ps.Store.SaveChunk(chunk); err != nil {
				slog.Error("save chunk before eviction", "chunk_x", coord.X, "chunk_y", coord.Y, "err", err)
				continue
			} else {
				chunk.Dirty = false
			}
		}
		delete(cm.Chunks, coord)
	}
}

// SaveDirty writes every dirty chunk to disk, clearing dirty flags on
// success only. No-op in ephemeral mode.
func (ps *PersistenceSystem) SaveDirty(cm *ChunkManager) int {
	if ps.Store == nil {
		return 0
	}
	saved := 0
	for _, coord := range cm.SortedCoords() {
		chunk := cm.Chunks[coord]
		if !chunk.Dirty {
			continue
		}
		if err := ps.Store.SaveChunk(chunk); err != nil {
			slog.Error("auto-save chunk", "chunk_x", coord.X, "chunk_y", coord.Y, "err", err)
			continue
		}
		chunk.Dirty = false
		saved++
	}
	if saved > 0 {
		slog.Debug("auto-saved dirty chunks", "count", saved)
	}
	return saved
}

// SaveAll writes dirty chunks plus the metadata record including
// player data and accumulated play time.
func (ps *PersistenceSystem) SaveAll(cm *ChunkManager, p *player.Player, playTimeSeconds uint64) {
	ps.SaveDirty(cm)
	if ps.Store == nil {
		return
	}
	m := ps.Store.LoadMetadata(ps.Generator.Seed)
	m.Seed = ps.Generator.Seed
	m.SpawnPoint = [2]float32{p.Position.X(), p.Position.Y()}
	m.PlayTimeSeconds = playTimeSeconds
	m.PlayerData = p
	if err := ps.Store.SaveMetadata(m); err != nil {
		slog.Error("save world metadata", "err", err)
	}
}
