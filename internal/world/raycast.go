package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"sunaba/internal/material"
)

const raycastStep = 0.5

// Raycast marches from a point along a direction and returns the first
// non-empty cell hit, as (wx, wy, material, true). A clear path
// returns ok=false.
func (w *World) Raycast(from, direction mgl32.Vec2, maxDistance float32) (int32, int32, material.ID, bool) {
	if direction.Len() == 0 {
		return 0, 0, material.Air, false
	}
	dir := direction.Normalize()

	steps := int(maxDistance / raycastStep)
	for i := 0; i <= steps; i++ {
		pos := from.Add(dir.Mul(float32(i) * raycastStep))
		wx := floorF(pos.X())
		wy := floorF(pos.Y())
		if px, ok := w.manager.GetPixel(wx, wy); ok && !px.IsEmpty() {
			return wx, wy, px.Material, true
		}
	}
	return 0, 0, material.Air, false
}

// GetBlockingPixel marches a thick ray and returns the first solid
// cell within radius of the ray, or ok=false when the path is clear.
func (w *World) GetBlockingPixel(from, direction mgl32.Vec2, radius, maxDistance float32) (int32, int32, material.ID, bool) {
	if direction.Len() == 0 {
		return 0, 0, material.Air, false
	}
	dir := direction.Normalize()
	// Perpendicular offsets sample the ray's width.
	perp := mgl32.Vec2{-dir.Y(), dir.X()}.Mul(radius)
	offsets := [3]mgl32.Vec2{{0, 0}, perp, perp.Mul(-1)}

	steps := int(maxDistance / raycastStep)
	for i := 0; i <= steps; i++ {
		center := from.Add(dir.Mul(float32(i) * raycastStep))
		for _, off := range offsets {
			pos := center.Add(off)
			wx := floorF(pos.X())
			wy := floorF(pos.Y())
			px, ok := w.manager.GetPixel(wx, wy)
			if !ok {
				continue
			}
			if px.IsEmpty() {
				continue
			}
			if w.materials.Get(px.Material).Category != material.Solid {
				continue
			}
			return wx, wy, px.Material, true
		}
	}
	return 0, 0, material.Air, false
}

func floorF(v float32) int32 {
	i := int32(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}
