package world

import "sunaba/internal/material"

// computePressure rebuilds the per-pixel pressure field over the
// active chunks. Solids contribute zero and reset the column; stacked
// liquids and gases accumulate density down each column. Columns carry
// across chunk borders by seeding from the chunk above's bottom row,
// so the value stays monotone in column height.
func computePressure(cm *ChunkManager, materials *material.Registry, active []ChunkCoord) {
	// Descending chunk Y so the chunk above a column is done first.
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
		chunk := cm.Chunks[pos]
		above := cm.GetChunk(ChunkCoord{X: pos.X, Y: pos.Y + 1})

		for lx := 0; lx < ChunkSize; lx++ {
			var carry float32
			if above != nil {
				bottom := above.Pixels[pixelIndex(lx, 0)]
				m := materials.Get(bottom.Material)
				if m.Category == material.Liquid || m.Category == material.Gas {
					carry = above.Pressure[pixelIndex(lx, 0)]
				}
			}

			for ly := ChunkSize - 1; ly >= 0; ly-- {
				idx := pixelIndex(lx, ly)
				m := materials.Get(chunk.Pixels[idx].Material)
				switch m.Category {
				case material.Liquid, material.Gas:
					if chunk.Pixels[idx].Material != material.Air {
						carry += m.Density
					}
					chunk.Pressure[idx] = carry
				default:
					carry = 0
					chunk.Pressure[idx] = 0
				}
			}
		}
	}
}
