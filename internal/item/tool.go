package item

import "sunaba/internal/material"

// ToolType identifies the kind of tool.
type ToolType uint8

const (
	Pickaxe ToolType = iota
	Shovel
	Axe
)

// ToolTier sets the base mining speed of a tool.
type ToolTier uint8

const (
	TierWood ToolTier = iota
	TierStone
	TierIron
)

// Speed returns the base mining speed for the tier.
func (t ToolTier) Speed() float32 {
	switch t {
	case TierWood:
		return 1.0
	case TierStone:
		return 2.0
	case TierIron:
		return 3.0
	default:
		return 1.0
	}
}

// ToolDef is an immutable tool definition in the tool registry.
type ToolDef struct {
	ID            uint16
	Name          string
	Type          ToolType
	Tier          ToolTier
	CanHarvest    []material.Tag
	MaxDurability uint16
}

// MiningSpeed returns the effective speed of this tool against the
// given material. Tools lose half their speed against materials whose
// tags they cannot harvest, and harder alloys slow every tool down via
// the hardness multiplier.
func (t *ToolDef) MiningSpeed(mat *material.Material) float32 {
	speed := t.Tier.Speed()
	if !t.canHarvest(mat) {
		speed *= 0.5
	}
	if mat.HardnessMultiplier > 0 {
		speed /= mat.HardnessMultiplier
	}
	return speed
}

func (t *ToolDef) canHarvest(mat *material.Material) bool {
	for _, tag := range t.CanHarvest {
		if mat.HasTag(tag) {
			return true
		}
	}
	return false
}

// Tool is a tool instance held in an inventory slot. Tools never stack.
type Tool struct {
	Def        uint16 `json:"def"`
	Durability uint16 `json:"durability"`
}

// Damage reduces durability by amount and reports whether the tool broke.
func (t *Tool) Damage(amount uint16) bool {
	if amount >= t.Durability {
		t.Durability = 0
		return true
	}
	t.Durability -= amount
	return false
}

// ToolRegistry is the immutable catalog of tool definitions.
type ToolRegistry struct {
	byID map[uint16]*ToolDef
}

// NewToolRegistry creates an empty tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{byID: make(map[uint16]*ToolDef)}
}

// Register adds a tool definition.
func (r *ToolRegistry) Register(def *ToolDef) {
	r.byID[def.ID] = def
}

// Get returns the tool definition for id, or nil if unregistered.
func (r *ToolRegistry) Get(id uint16) *ToolDef {
	return r.byID[id]
}

// Tool IDs live above the material id space so hotbar code can tell
// them apart at a glance in logs.
const (
	WoodPickaxe uint16 = 1000 + iota
	StonePickaxe
	IronPickaxe
	WoodShovel
)

// DefaultTools builds the registry with the built-in tool set.
func DefaultTools() *ToolRegistry {
	r := NewToolRegistry()
	harvest := []material.Tag{material.TagMineral, material.TagOre}
	r.Register(&ToolDef{ID: WoodPickaxe, Name: "wood pickaxe", Type: Pickaxe, Tier: TierWood, CanHarvest: harvest, MaxDurability: 60})
	r.Register(&ToolDef{ID: StonePickaxe, Name: "stone pickaxe", Type: Pickaxe, Tier: TierStone, CanHarvest: harvest, MaxDurability: 130})
	r.Register(&ToolDef{ID: IronPickaxe, Name: "iron pickaxe", Type: Pickaxe, Tier: TierIron, CanHarvest: harvest, MaxDurability: 250})
	r.Register(&ToolDef{ID: WoodShovel, Name: "wood shovel", Type: Shovel, Tier: TierWood, CanHarvest: []material.Tag{material.TagMineral}, MaxDurability: 60})
	return r
}
