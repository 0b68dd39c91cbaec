package world

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"sunaba/internal/material"
)

// DebrisPixel is one cell of a falling chunk, stored as an offset from
// the chunk origin plus its material.
type DebrisPixel struct {
	DX, DY   int32
	Material material.ID
}

// FallingChunk is an ephemeral kinematic body: a rigid group of pixels
// detached from the world that falls until it rests, then re-deposits.
type FallingChunk struct {
	ID       uint64
	Pixels   []DebrisPixel
	Position mgl32.Vec2
	Velocity mgl32.Vec2
}

// SolidQuery answers collision queries against the static world.
type SolidQuery interface {
	IsSolidAt(wx, wy int32) bool
}

// DebrisSystem integrates falling chunks with constant gravity and a
// shrinking-step sweep against the static world.
type DebrisSystem struct {
	chunks []*FallingChunk
	nextID uint64

	// Gravity is negative in simulation space (y up).
	Gravity float32
}

// NewDebrisSystem creates the debris stepper.
func NewDebrisSystem() *DebrisSystem {
	return &DebrisSystem{Gravity: -300}
}

// Count returns the number of airborne falling chunks.
func (ds *DebrisSystem) Count() int { return len(ds.chunks) }

// Chunks exposes the live falling chunks (rendering reads these).
func (ds *DebrisSystem) Chunks() []*FallingChunk { return ds.chunks }

// Create packages a set of world cells into a falling chunk. The
// origin is the region's minimum corner; pixels are stored sorted so
// iteration stays deterministic.
func (ds *DebrisSystem) Create(cells map[[2]int32]material.ID) uint64 {
	if len(cells) == 0 {
		return 0
	}

	minX := int32(math.MaxInt32)
	minY := int32(math.MaxInt32)
	for pos := range cells {
		if pos[0] < minX {
			minX = pos[0]
		}
		if pos[1] < minY {
			minY = pos[1]
		}
	}

	pixels := make([]DebrisPixel, 0, len(cells))
	for pos, id := range cells {
		pixels = append(pixels, DebrisPixel{DX: pos[0] - minX, DY: pos[1] - minY, Material: id})
	}
	sort.Slice(pixels, func(i, j int) bool {
		if pixels[i].DY != pixels[j].DY {
			return pixels[i].DY < pixels[j].DY
		}
		return pixels[i].DX < pixels[j].DX
	})

	ds.nextID++
	ds.chunks = append(ds.chunks, &FallingChunk{
		ID:       ds.nextID,
		Pixels:   pixels,
		Position: mgl32.Vec2{float32(minX), float32(minY)},
	})
	return ds.nextID
}

// Update advances all falling chunks by dt and returns the ones that
// settled this step. Settled chunks are removed from the system; the
// caller re-deposits their pixels.
func (ds *DebrisSystem) Update(dt float32, world SolidQuery) []*FallingChunk {
	var settled []*FallingChunk

	alive := ds.chunks[:0]
	for _, fc := range ds.chunks {
		fc.Velocity[1] += ds.Gravity * dt
		if ds.step(fc, dt, world) {
			settled = append(settled, fc)
		} else {
			alive = append(alive, fc)
		}
	}
	ds.chunks = alive
	return settled
}

// step attempts to move the chunk by velocity*dt, halving the step on
// collision until a minimum step, and reports whether the chunk came
// to rest.
func (ds *DebrisSystem) step(fc *FallingChunk, dt float32, world SolidQuery) bool {
	const minStep = 1.0 / 8.0

	move := fc.Velocity.Mul(dt)
	for move.Len() >= minStep {
		target := fc.Position.Add(move)
		if !ds.collides(fc, target, world) {
			fc.Position = target
			return false
		}
		move = move.Mul(0.5)
	}

	// No step fits. If the chunk cannot move down at all, it rests.
	probe := fc.Position.Add(mgl32.Vec2{0, -minStep})
	if ds.collides(fc, probe, world) {
		fc.Velocity = mgl32.Vec2{}
		return true
	}
	return false
}

// collides tests every constituent cell at the candidate position
// against the static world.
func (ds *DebrisSystem) collides(fc *FallingChunk, at mgl32.Vec2, world SolidQuery) bool {
	baseX := int32(math.Floor(float64(at.X())))
	baseY := int32(math.Floor(float64(at.Y())))
	for _, p := range fc.Pixels {
		if world.IsSolidAt(baseX+p.DX, baseY+p.DY) {
			return true
		}
	}
	return false
}

// Reconstruct writes a settled falling chunk's pixels back into the
// world. Occupied targets displace to the nearest air cell above
// within a small search radius; cells with no room are dropped.
func (ds *DebrisSystem) Reconstruct(cm *ChunkManager, fc *FallingChunk) {
	const displaceRadius = 8

	baseX := int32(math.Floor(float64(fc.Position.X())))
	baseY := int32(math.Floor(float64(fc.Position.Y())))

	for _, p := range fc.Pixels {
		wx := baseX + p.DX
		wy := baseY + p.DY

		placed := false
		for dy := int32(0); dy <= displaceRadius; dy++ {
			if cell, ok := cm.GetPixel(wx, wy+dy); ok && cell.IsEmpty() {
				cm.SetPixel(wx, wy+dy, NewPixel(p.Material))
				cm.MarkActiveAt(wx, wy+dy)
				placed = true
				break
			}
		}
		_ = placed // cells with no room within the radius are dropped
	}
}
