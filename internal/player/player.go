package player

import (
	"github.com/go-gl/mathgl/mgl32"

	"sunaba/internal/inventory"
	"sunaba/internal/item"
	"sunaba/internal/material"
)

// Physical constants for the player body and platformer feel.
const (
	Width  = 6.0
	Height = 12.0

	Gravity      = 800.0
	JumpVelocity = 300.0
	MaxFallSpeed = 600.0
	FlightThrust = 1200.0

	CoyoteTime = 0.1
	JumpBuffer = 0.1
)

// InputState carries the host's per-frame input sample.
type InputState struct {
	Left        bool
	Right       bool
	Up          bool
	Down        bool
	JumpPressed bool
}

// Health tracks current and maximum hit points.
type Health struct {
	Current float32 `json:"current"`
	Max     float32 `json:"max"`
}

// NewHealth creates a full health pool.
func NewHealth(max float32) Health {
	return Health{Current: max, Max: max}
}

// TakeDamage reduces health and reports whether it reached zero.
func (h *Health) TakeDamage(amount float32) bool {
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	return false
}

// Heal restores health up to the maximum.
func (h *Health) Heal(amount float32) {
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// IsDead reports whether health is exhausted.
func (h *Health) IsDead() bool { return h.Current <= 0 }

// Hunger drains over time and deals starvation damage once empty.
type Hunger struct {
	Current          float32 `json:"current"`
	Max              float32 `json:"max"`
	DrainRate        float32 `json:"drain_rate"`
	StarvationDamage float32 `json:"starvation_damage"`
}

// NewHunger creates a full hunger pool with the given drain and
// starvation damage rates (both per second).
func NewHunger(max, drainRate, starvationDamage float32) Hunger {
	return Hunger{Current: max, Max: max, DrainRate: drainRate, StarvationDamage: starvationDamage}
}

// Update drains hunger and returns the starvation damage to apply this
// frame (zero while any hunger remains).
func (hu *Hunger) Update(dt float32) float32 {
	hu.Current -= hu.DrainRate * dt
	if hu.Current > 0 {
		return 0
	}
	hu.Current = 0
	return hu.StarvationDamage * dt
}

// Eat restores hunger up to the maximum.
func (hu *Hunger) Eat(value float32) {
	hu.Current += value
	if hu.Current > hu.Max {
		hu.Current = hu.Max
	}
}

// Set overrides the current hunger level.
func (hu *Hunger) Set(v float32) { hu.Current = v }

// IsStarving reports whether hunger is exhausted.
func (hu *Hunger) IsStarving() bool { return hu.Current <= 0 }

// MiningProgress tracks the one pixel the player is currently mining.
type MiningProgress struct {
	Target       *[2]int32 `json:"target,omitempty"`
	Progress     float32   `json:"progress"`
	RequiredTime float32   `json:"required_time"`
}

// Start begins mining a new target pixel.
func (mp *MiningProgress) Start(x, y int32, requiredTime float32) {
	mp.Target = &[2]int32{x, y}
	mp.Progress = 0
	mp.RequiredTime = requiredTime
}

// Update advances progress and reports completion. Completion resets
// the tracker.
func (mp *MiningProgress) Update(dt float32) bool {
	if mp.Target == nil || mp.RequiredTime <= 0 {
		return false
	}
	mp.Progress += dt / mp.RequiredTime
	if mp.Progress >= 1.0 {
		mp.Reset()
		return true
	}
	return false
}

// Reset cancels any mining in progress.
func (mp *MiningProgress) Reset() {
	mp.Target = nil
	mp.Progress = 0
	mp.RequiredTime = 0
}

// IsMining reports whether a target is being mined.
func (mp *MiningProgress) IsMining() bool { return mp.Target != nil }

// Percentage returns progress as 0-100.
func (mp *MiningProgress) Percentage() float32 {
	p := mp.Progress * 100
	if p > 100 {
		p = 100
	}
	return p
}

// Player is the player entity: kinematics, survival stats, inventory,
// and mining state.
type Player struct {
	Position mgl32.Vec2 `json:"position"`
	Velocity mgl32.Vec2 `json:"velocity"`
	Grounded bool       `json:"grounded"`

	// Jump grace timers in seconds.
	CoyoteTimer float32 `json:"coyote_timer"`
	JumpBuffer  float32 `json:"jump_buffer"`

	Health Health `json:"health"`
	Hunger Hunger `json:"hunger"`
	IsDead bool   `json:"is_dead"`

	Inventory    *inventory.Inventory `json:"inventory"`
	SelectedSlot int                  `json:"selected_slot"`
	EquippedTool *uint16              `json:"equipped_tool,omitempty"`

	Mining MiningProgress `json:"mining"`
}

// New creates a player at the given position with the starting stock
// of materials.
func New(pos mgl32.Vec2) *Player {
	p := &Player{
		Position:  pos,
		Health:    NewHealth(100),
		Hunger:    NewHunger(100, 0.1, 1.0),
		Inventory: inventory.New(),
	}
	p.Inventory.AddItem(material.Stone, 100)
	p.Inventory.AddItem(material.Sand, 100)
	p.Inventory.AddItem(material.Water, 50)
	p.Inventory.AddItem(material.Wood, 50)
	return p
}

// Update advances survival stats and returns true if the player died
// this frame.
func (p *Player) Update(dt float32) bool {
	if p.IsDead {
		return false
	}
	if dmg := p.Hunger.Update(dt); dmg > 0 {
		if p.Health.TakeDamage(dmg) {
			p.IsDead = true
			return true
		}
	}
	return false
}

// MoveBy translates the player position.
func (p *Player) MoveBy(delta mgl32.Vec2) {
	p.Position = p.Position.Add(delta)
}

// MineMaterial adds one mined pixel's material to the inventory and
// reports whether it fit.
func (p *Player) MineMaterial(id material.ID) bool {
	return p.Inventory.AddItem(id, 1) == 0
}

// ConsumeMaterial removes one unit of a material for placement.
func (p *Player) ConsumeMaterial(id material.ID) bool {
	return p.Inventory.RemoveItem(id, 1) > 0
}

// EatFood consumes one unit of an edible material and restores hunger
// by its nutritional value.
func (p *Player) EatFood(id material.ID, nutritionalValue float32) bool {
	if p.Inventory.RemoveItem(id, 1) == 0 {
		return false
	}
	p.Hunger.Eat(nutritionalValue)
	return true
}

// EquipTool selects a tool definition for mining; the tool must be in
// the inventory.
func (p *Player) EquipTool(defID uint16) bool {
	if p.Inventory.FindTool(defID) < 0 {
		return false
	}
	p.EquippedTool = &defID
	return true
}

// UnequipTool clears the equipped tool.
func (p *Player) UnequipTool() { p.EquippedTool = nil }

// EquippedToolDef resolves the equipped tool's definition, or nil.
func (p *Player) EquippedToolDef(tools *item.ToolRegistry) *item.ToolDef {
	if p.EquippedTool == nil {
		return nil
	}
	return tools.Get(*p.EquippedTool)
}

// SelectedMaterial returns the material of the selected hotbar slot.
func (p *Player) SelectedMaterial() (material.ID, bool) {
	slot := p.Inventory.Slot(p.SelectedSlot)
	if slot == nil || slot.Stack == nil {
		return 0, false
	}
	return slot.Stack.Material, true
}

// SelectNextSlot cycles the hotbar selection forward.
func (p *Player) SelectNextSlot() {
	p.SelectedSlot = (p.SelectedSlot + 1) % inventory.HotbarSize
}

// SelectPrevSlot cycles the hotbar selection backward.
func (p *Player) SelectPrevSlot() {
	p.SelectedSlot = (p.SelectedSlot + inventory.HotbarSize - 1) % inventory.HotbarSize
}

// SelectSlot selects a specific slot, clamped to the inventory size.
func (p *Player) SelectSlot(slot int) {
	if slot < 0 {
		slot = 0
	}
	if slot >= inventory.MaxSlots {
		slot = inventory.MaxSlots - 1
	}
	p.SelectedSlot = slot
}

// Respawn resets kinematics and survival stats, keeping the inventory.
func (p *Player) Respawn(spawn mgl32.Vec2) {
	p.Position = spawn
	p.Velocity = mgl32.Vec2{}
	p.Health = NewHealth(100)
	p.Hunger = NewHunger(100, 0.1, 1.0)
	p.IsDead = false
	p.Mining.Reset()
}
