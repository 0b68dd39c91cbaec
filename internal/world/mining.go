package world

import (
	"log/slog"
	"math"

	"sunaba/internal/item"
	"sunaba/internal/material"
)

// MiningBaseTime is the base seconds in the mining time formula.
const MiningBaseTime = 1.0

// CalculateMiningTime returns the seconds required to mine a material:
// base * hardness * hardness_multiplier / tool_speed. Materials
// without hardness are unmineable and return +Inf. Without a tool the
// speed is 0.5.
func CalculateMiningTime(base float32, mat *material.Material, tool *item.ToolDef) float32 {
	if mat.Hardness == nil {
		return float32(math.Inf(1))
	}
	toolSpeed := float32(0.5)
	if tool != nil {
		toolSpeed = tool.MiningSpeed(mat)
	}
	return base * float32(*mat.Hardness) * mat.HardnessMultiplier / toolSpeed
}

// StartMining begins timed mining of the pixel at world coordinates.
// Refused (no state change) for unloaded chunks, air, and unmineable
// materials. Returns whether mining started.
func (w *World) StartMining(wx, wy int32) bool {
	px, ok := w.manager.GetPixel(wx, wy)
	if !ok || px.IsEmpty() {
		return false
	}
	mat := w.materials.Get(px.Material)
	if !mat.Mineable() {
		return false
	}

	tool := w.Player.EquippedToolDef(w.tools)
	required := CalculateMiningTime(MiningBaseTime, mat, tool)
	w.Player.Mining.Start(wx, wy, required)

	slog.Debug("started mining", "material", mat.Name, "x", wx, "y", wy, "required_s", required)
	return true
}

// UpdateMining advances mining progress; on completion the pixel is
// removed, its material lands in the inventory, and the equipped tool
// takes durability damage. Returns true when mining completed this
// frame.
func (w *World) UpdateMining(dt float32) bool {
	target := w.Player.Mining.Target
	if !w.Player.Mining.Update(dt) {
		return false
	}
	if target == nil {
		return false
	}
	w.completeMining(target[0], target[1])
	return true
}

func (w *World) completeMining(wx, wy int32) {
	px, ok := w.manager.GetPixel(wx, wy)
	if !ok || px.IsEmpty() {
		slog.Warn("mining completed against missing pixel", "x", wx, "y", wy)
		return
	}

	if !w.Player.MineMaterial(px.Material) {
		slog.Debug("inventory full, mined material lost target", "x", wx, "y", wy)
		return
	}

	if w.Player.EquippedTool != nil {
		toolID := *w.Player.EquippedTool
		if w.Player.Inventory.DamageTool(toolID, 1) {
			if def := w.tools.Get(toolID); def != nil {
				slog.Info("tool broke", "tool", def.Name)
			}
			w.Player.UnequipTool()
		}
	}

	w.SetPixel(wx, wy, material.Air)
}

// MinePixel immediately mines a single pixel into the inventory (no
// timer). Air and bedrock are refused, as is a full inventory.
func (w *World) MinePixel(wx, wy int32) bool {
	px, ok := w.manager.GetPixel(wx, wy)
	if !ok || px.IsEmpty() || px.Material == material.Bedrock {
		return false
	}
	if !w.Player.MineMaterial(px.Material) {
		return false
	}
	w.SetPixel(wx, wy, material.Air)
	return true
}

// brushCells enumerates the air cells of a circular brush centered at
// (wx, wy) in loaded chunks, in deterministic scan order.
func (w *World) brushCells(wx, wy int32, radius int32) [][2]int32 {
	var cells [][2]int32
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := wx+dx, wy+dy
			if p, ok := w.manager.GetPixel(x, y); ok && p.IsEmpty() {
				cells = append(cells, [2]int32{x, y})
			}
		}
	}
	return cells
}

// PlaceMaterialFromInventory places material in a circular brush,
// consuming from the inventory. The operation is atomic: when the
// inventory holds fewer units than the brush covers, nothing is placed.
// Returns the number of pixels placed.
func (w *World) PlaceMaterialFromInventory(wx, wy int32, id material.ID, brushRadius int32) uint32 {
	cells := w.brushCells(wx, wy, brushRadius)
	if len(cells) == 0 {
		return 0
	}

	needed := uint32(len(cells))
	if !w.Player.Inventory.HasItem(id, needed) {
		slog.Debug("placement rejected, insufficient material",
			"material", w.materials.Get(id).Name, "needed", needed,
			"have", w.Player.Inventory.CountItem(id))
		return 0
	}
	w.Player.Inventory.RemoveItem(id, needed)

	for _, cell := range cells {
		px := NewPixel(id)
		px.Flags |= FlagPlayerPlaced
		w.SetPixelFull(cell[0], cell[1], px)
	}
	return needed
}

// PlaceMaterialDebug places like PlaceMaterialFromInventory but skips
// inventory consumption. Used for authoring.
func (w *World) PlaceMaterialDebug(wx, wy int32, id material.ID, brushRadius int32) uint32 {
	cells := w.brushCells(wx, wy, brushRadius)
	for _, cell := range cells {
		px := NewPixel(id)
		px.Flags |= FlagPlayerPlaced
		w.SetPixelFull(cell[0], cell[1], px)
	}
	return uint32(len(cells))
}

// DebugMineCircle instantly mines every mineable pixel in a circle,
// adding each to the inventory. Unmineable materials are skipped.
func (w *World) DebugMineCircle(wx, wy int32, radius int32) int {
	mined := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := wx+dx, wy+dy
			px, ok := w.manager.GetPixel(x, y)
			if !ok || px.IsEmpty() {
				continue
			}
			if !w.materials.Get(px.Material).Mineable() {
				continue
			}
			if !w.Player.MineMaterial(px.Material) {
				continue
			}
			w.SetPixel(x, y, material.Air)
			mined++
		}
	}
	return mined
}
