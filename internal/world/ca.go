package world

import "sunaba/internal/material"

// Cellular-automaton movement rules. A tick scans every active chunk
// that NeedsCAUpdate reports, bottom-to-top, alternating x direction
// per row. Pixels carrying the updated flag were already moved this
// tick and are skipped. Neighbor chunks are addressed transparently
// through the manager; an unloaded neighbor acts as a solid wall.

func (w *World) updateChunkCA(pos ChunkCoord, stats StatsSink, rng *Rand) {
	for y := 0; y < ChunkSize; y++ {
		if y%2 == 0 {
			for x := 0; x < ChunkSize; x++ {
				w.updatePixel(pos, x, y, stats, rng)
			}
		} else {
			for x := ChunkSize - 1; x >= 0; x-- {
				w.updatePixel(pos, x, y, stats, rng)
			}
		}
	}
}

func (w *World) updatePixel(pos ChunkCoord, x, y int, stats StatsSink, rng *Rand) {
	chunk := w.manager.GetChunk(pos)
	if chunk == nil {
		return
	}

	px := chunk.GetPixel(x, y)
	if px.IsEmpty() || px.Updated() {
		return
	}

	wx, wy := ChunkToWorld(pos, x, y)

	// Fire is its own lifecycle: heat, spread, extinguish, rise.
	if px.Material == material.Fire {
		w.updateFire(wx, wy, stats, rng)
		return
	}

	if !px.Burning() {
		w.checkIgnition(wx, wy)
	}
	if p, ok := w.manager.GetPixel(wx, wy); ok && p.Burning() {
		if w.updateBurning(wx, wy, rng) {
			return // consumed
		}
	}

	mat := w.materials.Get(px.Material)
	switch mat.Category {
	case material.Powder:
		w.updatePowder(wx, wy, mat, pos, stats, rng)
	case material.Liquid:
		w.updateLiquid(wx, wy, mat, stats, rng)
	case material.Gas:
		w.updateGas(wx, wy, mat, stats, rng)
	case material.Solid:
		// Solids don't move.
	}

	w.checkPixelReactions(wx, wy, stats, rng)
}

// canDisplace reports whether a mover of the given density may take
// the target cell. Empty cells always qualify; liquids and gases are
// displaced by denser movers (they swap upward).
func (w *World) canDisplace(moverDensity float32, target Pixel, targetLoaded bool) bool {
	if !targetLoaded {
		return false // unloaded neighbor is a wall
	}
	if target.IsEmpty() {
		return true
	}
	tm := w.materials.Get(target.Material)
	if tm.Category != material.Liquid && tm.Category != material.Gas {
		return false
	}
	return tm.Density < moverDensity
}

// swapPixels exchanges the cells at src and dst, marks both with the
// updated flag, and flags both owning chunks simulation-active.
func (w *World) swapPixels(srcX, srcY, dstX, dstY int32, stats StatsSink) {
	src, _ := w.manager.GetPixel(srcX, srcY)
	dst, _ := w.manager.GetPixel(dstX, dstY)

	src.Flags |= FlagUpdated
	dst.Flags |= FlagUpdated
	w.manager.SetPixel(dstX, dstY, src)
	w.manager.SetPixel(srcX, srcY, dst)

	w.manager.MarkActiveAt(srcX, srcY)
	w.manager.MarkActiveAt(dstX, dstY)
	stats.RecordMoves(1)
}

func (w *World) updatePowder(wx, wy int32, mat *material.Material, pos ChunkCoord, stats StatsSink, rng *Rand) {
	below, belowOK := w.manager.GetPixel(wx, wy-1)
	if w.canDisplace(mat.Density, below, belowOK) {
		w.swapPixels(wx, wy, wx, wy-1, stats)
		return
	}

	// Diagonal slide: random first side, tie-broken by chunk parity.
	first := int32(1)
	if rng.Bool() {
		first = -1
	}
	if (pos.X+pos.Y)&1 == 1 {
		first = -first
	}
	for _, dx := range [2]int32{first, -first} {
		diag, diagOK := w.manager.GetPixel(wx+dx, wy-1)
		if !w.canDisplace(mat.Density, diag, diagOK) {
			continue
		}
		// Require the side cell to be passable too so powder does not
		// clip through walls.
		side, sideOK := w.manager.GetPixel(wx+dx, wy)
		if !w.canDisplace(mat.Density, side, sideOK) {
			continue
		}
		w.swapPixels(wx, wy, wx+dx, wy-1, stats)
		return
	}
}

func (w *World) updateLiquid(wx, wy int32, mat *material.Material, stats StatsSink, rng *Rand) {
	below, belowOK := w.manager.GetPixel(wx, wy-1)
	if w.canDisplace(mat.Density, below, belowOK) {
		w.swapPixels(wx, wy, wx, wy-1, stats)
		return
	}

	first := int32(1)
	if w.tickCount&1 == 1 {
		first = -1
	}
	for _, dx := range [2]int32{first, -first} {
		diag, diagOK := w.manager.GetPixel(wx+dx, wy-1)
		if !w.canDisplace(mat.Density, diag, diagOK) {
			continue
		}
		side, sideOK := w.manager.GetPixel(wx+dx, wy)
		if !w.canDisplace(mat.Density, side, sideOK) {
			continue
		}
		w.swapPixels(wx, wy, wx+dx, wy-1, stats)
		return
	}

	// Horizontal spread when the way down is blocked. Viscosity lowers
	// the flow probability.
	if !rng.Chance(1 - mat.Viscosity) {
		return
	}
	for _, dx := range [2]int32{first, -first} {
		side, sideOK := w.manager.GetPixel(wx+dx, wy)
		if sideOK && side.IsEmpty() {
			w.swapPixels(wx, wy, wx+dx, wy, stats)
			return
		}
	}
}

func (w *World) updateGas(wx, wy int32, mat *material.Material, stats StatsSink, rng *Rand) {
	if rng.Chance(mat.DissipateChance) {
		w.manager.SetPixel(wx, wy, NewPixel(material.Air))
		w.manager.MarkActiveAt(wx, wy)
		stats.RecordMoves(1)
		return
	}

	// Inverse gravity: up, then the upward diagonals, then sideways.
	above, aboveOK := w.manager.GetPixel(wx, wy+1)
	if aboveOK && above.IsEmpty() {
		w.swapPixels(wx, wy, wx, wy+1, stats)
		return
	}

	first := int32(1)
	if rng.Bool() {
		first = -1
	}
	for _, dx := range [2]int32{first, -first} {
		diag, diagOK := w.manager.GetPixel(wx+dx, wy+1)
		if diagOK && diag.IsEmpty() {
			w.swapPixels(wx, wy, wx+dx, wy+1, stats)
			return
		}
	}
	for _, dx := range [2]int32{first, -first} {
		side, sideOK := w.manager.GetPixel(wx+dx, wy)
		if sideOK && side.IsEmpty() && rng.Chance(0.3) {
			w.swapPixels(wx, wy, wx+dx, wy, stats)
			return
		}
	}
}
