package world

import (
	"math"

	"sunaba/internal/material"
)

// Collision queries for bodies (player, creatures). Solids and powders
// both block bodies; liquids and gases do not. Unloaded chunks count
// as solid so nothing walks off the loaded world.

// blocksBody reports whether the cell at world coordinates stops a
// moving body.
func (w *World) blocksBody(wx, wy int32) bool {
	px, ok := w.manager.GetPixel(wx, wy)
	if !ok {
		return true
	}
	if px.IsEmpty() {
		return false
	}
	cat := w.materials.Get(px.Material).Category
	return cat == material.Solid || cat == material.Powder
}

// CheckSolidCollision reports whether the axis-aligned rectangle with
// bottom-left corner (x, y) overlaps any body-blocking cell.
func (w *World) CheckSolidCollision(x, y, width, height float32) bool {
	minX := int32(math.Floor(float64(x)))
	maxX := int32(math.Ceil(float64(x+width))) - 1
	minY := int32(math.Floor(float64(y)))
	maxY := int32(math.Ceil(float64(y+height))) - 1

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			if w.blocksBody(cx, cy) {
				return true
			}
		}
	}
	return false
}

// IsRectGrounded reports whether the rectangle rests on a blocking
// cell: the strip one pixel below its bottom edge contains a blocker.
func (w *World) IsRectGrounded(x, y, width float32) bool {
	minX := int32(math.Floor(float64(x)))
	maxX := int32(math.Ceil(float64(x+width))) - 1
	below := int32(math.Floor(float64(y))) - 1

	for cx := minX; cx <= maxX; cx++ {
		if w.blocksBody(cx, below) {
			return true
		}
	}
	return false
}

// CheckCircleCollision reports whether a circle overlaps any blocking
// cell. Used for creature body parts.
func (w *World) CheckCircleCollision(x, y, radius float32) bool {
	minX := int32(math.Floor(float64(x - radius)))
	maxX := int32(math.Ceil(float64(x + radius)))
	minY := int32(math.Floor(float64(y - radius)))
	maxY := int32(math.Ceil(float64(y + radius)))

	r2 := float64(radius * radius)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			// Distance from circle center to cell center.
			dx := float64(cx) + 0.5 - float64(x)
			dy := float64(cy) + 0.5 - float64(y)
			if dx*dx+dy*dy > r2 {
				continue
			}
			if w.blocksBody(cx, cy) {
				return true
			}
		}
	}
	return false
}

// IsCreatureGrounded reports whether any body part touches a blocking
// cell just below it.
func (w *World) IsCreatureGrounded(parts []BodyPart) bool {
	for _, part := range parts {
		below := part.Center.Y() - part.Radius - 1
		minX := int32(math.Floor(float64(part.Center.X() - part.Radius)))
		maxX := int32(math.Ceil(float64(part.Center.X() + part.Radius)))
		cy := int32(math.Floor(float64(below)))
		for cx := minX; cx <= maxX; cx++ {
			if w.blocksBody(cx, cy) {
				return true
			}
		}
	}
	return false
}
