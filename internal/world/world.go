package world

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"sunaba/internal/item"
	"sunaba/internal/material"
	"sunaba/internal/player"
)

// PlayerSpeed is the horizontal movement speed in pixels per second.
const PlayerSpeed = 200.0

// ActiveChunkRadius is the Chebyshev chunk radius around the player
// within which chunks are simulated.
const ActiveChunkRadius int32 = 3

// World composes the chunk manager, registries, field simulators, and
// subsystems behind the host-facing facade. All world state is owned
// here; external consumers see only the Access/MutAccess capability
// sets and the methods below.
type World struct {
	manager   *ChunkManager
	materials *material.Registry
	reactions *material.ReactionRegistry
	tools     *item.ToolRegistry

	temperature *TemperatureSim
	light       *LightSystem
	structural  *StructuralSystem
	debris      *DebrisSystem
	regen       *RegenerationSystem
	persistence *PersistenceSystem

	Player *player.Player

	creatureHook CreatureHook

	timeAccumulator float32
	tickCount       uint64
	autoSaveTimer   float32

	sessionStart         time.Time
	TotalPlayTimeSeconds uint64
}

// New creates a world with the default registries in ephemeral mode
// (no disk persistence until LoadPersistentWorld).
func New() *World {
	w := &World{
		manager:      NewChunkManager(),
		materials:    material.Default(),
		reactions:    material.DefaultReactions(),
		tools:        item.DefaultTools(),
		temperature:  NewTemperatureSim(),
		light:        NewLightSystem(),
		structural:   NewStructuralSystem(),
		debris:       NewDebrisSystem(),
		regen:        NewRegenerationSystem(),
		persistence:  NewPersistenceSystem(42),
		Player:       player.New(mgl32.Vec2{0, 100}),
		sessionStart: time.Now(),
	}
	return w
}

// Materials returns the material registry.
func (w *World) Materials() *material.Registry { return w.materials }

// Reactions returns the reaction registry.
func (w *World) Reactions() *material.ReactionRegistry { return w.reactions }

// Tools returns the tool registry.
func (w *World) Tools() *item.ToolRegistry { return w.tools }

// SetCreatureHook installs the external creature-system callback run
// at the end of each simulation step.
func (w *World) SetCreatureHook(hook CreatureHook) { w.creatureHook = hook }

// TickCount returns the number of completed simulation steps.
func (w *World) TickCount() uint64 { return w.tickCount }

// GetPixel returns the pixel at world coordinates, ok=false when the
// owning chunk is not loaded.
func (w *World) GetPixel(wx, wy int32) (Pixel, bool) {
	return w.manager.GetPixel(wx, wy)
}

// GetPixelMaterial returns the material id at world coordinates.
func (w *World) GetPixelMaterial(wx, wy int32) (material.ID, bool) {
	px, ok := w.manager.GetPixel(wx, wy)
	if !ok {
		return 0, false
	}
	return px.Material, true
}

// GetTemperature returns the temperature sample covering the world
// coordinates, or ambient when the chunk is not loaded.
func (w *World) GetTemperature(wx, wy int32) float32 {
	coord, lx, ly := WorldToChunk(wx, wy)
	c := w.manager.GetChunk(coord)
	if c == nil {
		return Ambient
	}
	return c.TemperatureAt(lx, ly)
}

// SetTemperature overrides the temperature sample covering the world
// coordinates; used by scenarios and tests.
func (w *World) SetTemperature(wx, wy int32, t float32) {
	coord, lx, ly := WorldToChunk(wx, wy)
	if c := w.manager.GetChunk(coord); c != nil {
		c.Temperature[tempIndex(lx, ly)] = t
	}
}

// GetLight returns the light level (0-15) at world coordinates.
func (w *World) GetLight(wx, wy int32) (uint8, bool) {
	coord, lx, ly := WorldToChunk(wx, wy)
	c := w.manager.GetChunk(coord)
	if c == nil {
		return 0, false
	}
	return c.LightAt(lx, ly), true
}

// GetPressure returns the pressure scalar at world coordinates.
func (w *World) GetPressure(wx, wy int32) float32 {
	coord, lx, ly := WorldToChunk(wx, wy)
	c := w.manager.GetChunk(coord)
	if c == nil {
		return 0
	}
	return c.PressureAt(lx, ly)
}

// IsSolidAt reports whether the cell holds solid material. Unloaded
// chunks count as solid walls.
func (w *World) IsSolidAt(wx, wy int32) bool {
	px, ok := w.manager.GetPixel(wx, wy)
	if !ok {
		return true
	}
	if px.IsEmpty() {
		return false
	}
	return w.materials.Get(px.Material).Category == material.Solid
}

// ActiveChunkPositions returns the ordered active chunk coordinates.
func (w *World) ActiveChunkPositions() []ChunkCoord {
	return w.manager.ActiveChunks
}

// Chunks returns a read view of the chunk map.
func (w *World) Chunks() map[ChunkCoord]*Chunk {
	return w.manager.Chunks
}

// HasChunk reports whether a chunk is loaded.
func (w *World) HasChunk(coord ChunkCoord) bool { return w.manager.Has(coord) }

// GetChunk returns the loaded chunk at chunk coordinates, or nil.
func (w *World) GetChunk(cx, cy int32) *Chunk {
	return w.manager.GetChunk(ChunkCoord{X: cx, Y: cy})
}

// InsertChunk adds a pre-built chunk to the world.
func (w *World) InsertChunk(c *Chunk) { w.manager.Insert(c) }

// GenerateChunk generates and inserts the chunk at chunk coordinates.
func (w *World) GenerateChunk(cx, cy int32) {
	w.manager.Insert(w.persistence.Generator.GenerateChunk(cx, cy))
}

// ClearAllChunks drops every loaded chunk and the active set.
func (w *World) ClearAllChunks() {
	w.manager.Chunks = make(map[ChunkCoord]*Chunk)
	w.manager.ActiveChunks = w.manager.ActiveChunks[:0]
	w.manager.LastLoadChunkPos = nil
}

// SetPixel writes a bare pixel of the given material at world
// coordinates.
func (w *World) SetPixel(wx, wy int32, id material.ID) {
	w.SetPixelFull(wx, wy, NewPixel(id))
}

// SetPixelFull writes a pixel with flags at world coordinates. When
// the write replaces a player-placed structural solid with air, a
// structural check is scheduled at that position. Writes against
// unloaded chunks are dropped with a warning.
func (w *World) SetPixelFull(wx, wy int32, p Pixel) {
	old, loaded := w.manager.GetPixel(wx, wy)

	scheduleCheck := false
	if loaded && !old.IsEmpty() {
		oldMat := w.materials.Get(old.Material)
		scheduleCheck = oldMat.Structural &&
			oldMat.Category == material.Solid &&
			old.PlayerPlaced()
	}

	if !w.manager.SetPixel(wx, wy, p) {
		return
	}

	if scheduleCheck && p.Material == material.Air {
		w.structural.ScheduleCheck(wx, wy)
	}
}

// SpawnMaterial writes a circular brush of material directly into the
// world, ignoring inventory. Unlike placement it overwrites non-air
// cells too.
func (w *World) SpawnMaterial(wx, wy int32, id material.ID, brushRadius int32) {
	for dy := -brushRadius; dy <= brushRadius; dy++ {
		for dx := -brushRadius; dx <= brushRadius; dx++ {
			if dx*dx+dy*dy <= brushRadius*brushRadius {
				w.SetPixel(wx+dx, wy+dy, id)
			}
		}
	}
}

// EnsureChunksForArea creates empty chunks covering the rectangle,
// used by scenario and level authoring.
func (w *World) EnsureChunksForArea(minX, minY, maxX, maxY int32) {
	w.manager.EnsureArea(minX, minY, maxX, maxY)
}

// CreateDebris cuts a region of cells out of the world and hands it to
// the debris system as one falling chunk. Returns the falling chunk id.
func (w *World) CreateDebris(region [][2]int32) uint64 {
	cells := make(map[[2]int32]material.ID, len(region))
	for _, pos := range region {
		if px, ok := w.manager.GetPixel(pos[0], pos[1]); ok && !px.IsEmpty() {
			cells[pos] = px.Material
		}
	}
	if len(cells) == 0 {
		return 0
	}

	for pos := range cells {
		// Direct write: debris removal must not re-schedule structural
		// checks for the cells being detached.
		w.manager.SetPixel(pos[0], pos[1], NewPixel(material.Air))
		w.manager.MarkActiveAt(pos[0], pos[1])
	}

	id := w.debris.Create(cells)
	slog.Debug("created falling chunk", "id", id, "pixels", len(cells))
	return id
}

// FallingChunkCount returns the number of airborne falling chunks.
func (w *World) FallingChunkCount() int { return w.debris.Count() }

// FallingChunks exposes the live falling chunks.
func (w *World) FallingChunks() []*FallingChunk { return w.debris.Chunks() }

// UpdatePlayer advances player physics one frame from host input.
// Survival stats (hunger, starvation) advance in Update, not here.
func (w *World) UpdatePlayer(input player.InputState, dt float32) {
	pos := w.Player.Position
	player.StepPhysics(w.Player, input, dt, PlayerSpeed,
		func() bool {
			return w.IsRectGrounded(pos.X(), pos.Y(), player.Width)
		},
		func(x, y, width, height float32) bool {
			return w.CheckSolidCollision(x, y, width, height)
		},
	)
}

// SetGenerator swaps the world seed.
func (w *World) SetGenerator(seed uint64) {
	w.persistence.SetSeed(seed)
}

// Generator returns the active world generator.
func (w *World) Generator() *Generator { return w.persistence.Generator }

// UpdateGeneratorConfig validates and installs a new generation
// config, then drops every loaded chunk and reloads the
// InitialLoadRadius square around the player. Without a store those
// chunks are regenerated with the new config; with a store, chunks that
// already have a saved copy are read back from disk, not regenerated,
// and unsaved edits in the dropped chunks are discarded. An invalid
// config is rejected and the prior one stays in effect.
func (w *World) UpdateGeneratorConfig(cfg GenConfig) error {
	if err := w.persistence.Generator.UpdateConfig(cfg); err != nil {
		return err
	}
	w.ClearAllChunks()
	w.persistence.LoadChunksAround(w.manager, w.Player.Position)
	slog.Info("world regenerated with new generator config")
	return nil
}

// LoadPersistentWorld opens (or creates) the on-disk world in the
// given directory and loads the initial chunk area around spawn.
func (w *World) LoadPersistentWorld(dir string) error {
	w.manager.Ephemeral = false
	w.ClearAllChunks()

	store, err := OpenStore(dir)
	if err != nil {
		return err
	}
	w.persistence.Store = store

	meta := store.LoadMetadata(w.persistence.Generator.Seed)
	w.persistence.SetSeed(meta.Seed)
	w.TotalPlayTimeSeconds = meta.PlayTimeSeconds
	w.sessionStart = time.Now()

	if meta.PlayerData != nil {
		w.Player = meta.PlayerData
		slog.Info("restored player data",
			"slots_used", w.Player.Inventory.UsedSlotCount(),
			"health", w.Player.Health.Current,
			"hunger", w.Player.Hunger.Current)
	} else {
		w.Player.Position = mgl32.Vec2{meta.SpawnPoint[0], meta.SpawnPoint[1]}
		slog.Info("new world, player at spawn", "x", meta.SpawnPoint[0], "y", meta.SpawnPoint[1])
	}

	w.persistence.LoadChunksAround(w.manager, w.Player.Position)

	w.manager.UpdateActiveChunks(int32(w.Player.Position.X()), int32(w.Player.Position.Y()), ActiveChunkRadius)
	w.light.Recompute(w.manager, w.materials, w.manager.ActiveChunks)

	slog.Info("loaded persistent world", "seed", meta.Seed, "world_id", meta.WorldID)
	return nil
}

// DisablePersistence switches to ephemeral mode: chunks are never
// read from or written to disk, and dynamic loading stops so demo
// level chunks stay untouched.
func (w *World) DisablePersistence() {
	if w.persistence.Store != nil {
		if err := w.persistence.Store.Close(); err != nil {
			slog.Error("close chunk store", "err", err)
		}
		w.persistence.Store = nil
	}
	w.manager.Ephemeral = true
	slog.Info("persistence disabled, using ephemeral chunks")
}

// SaveAllDirty writes dirty chunks plus metadata with player data and
// accumulated play time.
func (w *World) SaveAllDirty() {
	session := uint64(time.Since(w.sessionStart).Seconds())
	w.persistence.SaveAll(w.manager, w.Player, w.TotalPlayTimeSeconds+session)
}

// SaveDirtyChunks writes dirty chunks only (the periodic auto-save).
func (w *World) SaveDirtyChunks() int {
	return w.persistence.SaveDirty(w.manager)
}

// GrowthProgressPercent returns progress through the growth cycle.
func (w *World) GrowthProgressPercent() float32 {
	return w.light.GrowthProgressPercent()
}

// Light returns the light system (day/night phase driver).
func (w *World) Light() *LightSystem { return w.light }

// Structural returns the structural integrity checker.
func (w *World) Structural() *StructuralSystem { return w.structural }

// GenerateTestWorld builds the fixed development scenario: a bedrock
// floor, stone ground, a sand pile, and a pool of water in a 15x15
// chunk grid around the origin.
func (w *World) GenerateTestWorld() {
	for cy := int32(-7); cy <= 7; cy++ {
		for cx := int32(-7); cx <= 7; cx++ {
			c := NewChunk(cx, cy)
			switch {
			case cy == -2:
				for y := 0; y < ChunkSize; y++ {
					for x := 0; x < ChunkSize; x++ {
						c.SetMaterial(x, y, material.Bedrock)
					}
				}
			case cy == -1:
				for y := 0; y < 8; y++ {
					for x := 0; x < ChunkSize; x++ {
						c.SetMaterial(x, y, material.Bedrock)
					}
				}
				for y := 8; y < 32; y++ {
					for x := 0; x < ChunkSize; x++ {
						c.SetMaterial(x, y, material.Stone)
					}
				}
			case cy >= 0:
				for y := 0; y < 32; y++ {
					for x := 0; x < ChunkSize; x++ {
						c.SetMaterial(x, y, material.Stone)
					}
				}
				if cy == 0 && cx == 0 {
					for x := 20; x < 44; x++ {
						for y := 32; y < 40; y++ {
							c.SetMaterial(x, y, material.Sand)
						}
					}
				}
				if cy == 0 && cx == 1 {
					for x := 10; x < 30; x++ {
						for y := 35; y < 50; y++ {
							c.SetMaterial(x, y, material.Water)
						}
					}
				}
			}
			w.manager.Insert(c)
		}
	}
	slog.Info("generated test world", "chunks", len(w.manager.Chunks))
}
