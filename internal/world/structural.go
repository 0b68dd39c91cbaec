package world

import (
	"log/slog"

	"sunaba/internal/material"
)

// StructuralSystem queues positions where a player-placed structural
// solid was removed and, at the end of each tick, BFS-checks whether
// the remaining connected region still reaches a support. Unsupported
// regions are cut out of the world and handed to the debris system.
type StructuralSystem struct {
	pending map[[2]int32]struct{}
	order   [][2]int32

	// MaxChecksPerTick bounds worst-case latency; excess checks stay
	// queued for the next tick.
	MaxChecksPerTick int
	// MaxRegionSize aborts runaway flood fills; oversized regions are
	// treated as supported.
	MaxRegionSize int
}

// NewStructuralSystem creates the checker with default bounds.
func NewStructuralSystem() *StructuralSystem {
	return &StructuralSystem{
		pending:          make(map[[2]int32]struct{}),
		MaxChecksPerTick: 8,
		MaxRegionSize:    2048,
	}
}

// ScheduleCheck enqueues a structural check at the given position.
// Duplicate positions collapse into one check.
func (ss *StructuralSystem) ScheduleCheck(wx, wy int32) {
	key := [2]int32{wx, wy}
	if _, ok := ss.pending[key]; ok {
		return
	}
	ss.pending[key] = struct{}{}
	ss.order = append(ss.order, key)
}

// PendingCount returns the number of queued checks.
func (ss *StructuralSystem) PendingCount() int { return len(ss.order) }

// ProcessChecks drains up to MaxChecksPerTick queued checks against
// the world and returns how many ran.
func (ss *StructuralSystem) ProcessChecks(w *World) int {
	n := len(ss.order)
	if n > ss.MaxChecksPerTick {
		n = ss.MaxChecksPerTick
	}
	if n == 0 {
		return 0
	}

	batch := ss.order[:n]
	ss.order = ss.order[n:]
	for _, pos := range batch {
		delete(ss.pending, pos)
		ss.checkAt(w, pos[0], pos[1])
	}
	return n
}

// checkAt flood-fills the player-placed structural solids around the
// removal point. The region is supported when any cell touches
// bedrock, a non-player-placed structural solid, or the world's lower
// bound. Unsupported regions become a falling chunk.
func (ss *StructuralSystem) checkAt(w *World, wx, wy int32) {
	visited := make(map[[2]int32]bool)
	var region [][2]int32
	var queue [][2]int32
	supported := false

	isRegionCell := func(x, y int32) (bool, bool) {
		px, ok := w.manager.GetPixel(x, y)
		if !ok || px.IsEmpty() {
			return false, false
		}
		mat := w.materials.Get(px.Material)
		if mat.Category != material.Solid || !mat.Structural {
			return false, false
		}
		if px.Material == material.Bedrock {
			return false, true // support
		}
		if !px.PlayerPlaced() {
			return false, true // natural structural solid is a support
		}
		return true, false
	}

	// Seed from the removal point's neighbors.
	for _, d := range neighborOffsets {
		x, y := wx+d[0], wy+d[1]
		inRegion, _ := isRegionCell(x, y)
		if inRegion && !visited[[2]int32{x, y}] {
			visited[[2]int32{x, y}] = true
			queue = append(queue, [2]int32{x, y})
		}
	}

	for head := 0; head < len(queue); head++ {
		cell := queue[head]
		region = append(region, cell)

		if len(region) > ss.MaxRegionSize {
			slog.Debug("structural region too large, treated as supported",
				"x", wx, "y", wy, "size", len(region))
			return
		}
		if cell[1] <= WorldFloorY {
			supported = true
		}

		for _, d := range neighborOffsets {
			x, y := cell[0]+d[0], cell[1]+d[1]
			key := [2]int32{x, y}
			if visited[key] {
				continue
			}
			inRegion, isSupport := isRegionCell(x, y)
			if isSupport {
				supported = true
				continue
			}
			if inRegion {
				visited[key] = true
				queue = append(queue, key)
			}
		}
	}

	if supported || len(region) == 0 {
		return
	}

	slog.Debug("structural collapse", "x", wx, "y", wy, "pixels", len(region))
	w.CreateDebris(region)
}
