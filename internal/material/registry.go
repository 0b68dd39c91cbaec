package material

import (
	"encoding/json"
	"fmt"
	"io"
)

// Registry is the immutable catalog of material definitions. It is
// populated once at startup and read-only afterwards.
type Registry struct {
	byID   map[ID]*Material
	byName map[string]ID
	// unknown is returned for lookups of unregistered ids.
	unknown *Material
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[ID]*Material),
		byName: make(map[string]ID),
		unknown: &Material{
			ID:                 0xFFFF,
			Name:               "unknown",
			Category:           Solid,
			HardnessMultiplier: 1.0,
		},
	}
}

// Register adds a material definition to the registry.
func (r *Registry) Register(def *Material) {
	if def.HardnessMultiplier == 0 {
		def.HardnessMultiplier = 1.0
	}
	r.byID[def.ID] = def
	r.byName[def.Name] = def.ID
}

// Get returns the definition for the given id. Unregistered ids return
// a placeholder definition rather than nil so hot paths never branch.
func (r *Registry) Get(id ID) *Material {
	if def, ok := r.byID[id]; ok {
		return def
	}
	return r.unknown
}

// Lookup resolves a material by name.
func (r *Registry) Lookup(name string) (ID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Count returns the number of registered materials.
func (r *Registry) Count() int {
	return len(r.byID)
}

// LoadJSON registers material definitions read from external data.
func (r *Registry) LoadJSON(src io.Reader) error {
	var defs []Material
	if err := json.NewDecoder(src).Decode(&defs); err != nil {
		return fmt.Errorf("decode materials: %w", err)
	}
	for i := range defs {
		r.Register(&defs[i])
	}
	return nil
}

// Default builds the registry with the built-in material set.
func Default() *Registry {
	r := NewRegistry()

	r.Register(&Material{
		ID: Air, Name: "air", Category: Gas,
		Color: [4]uint8{0, 0, 0, 0}, Density: 0.001,
		HeatConductivity: 0.1,
	})
	r.Register(&Material{
		ID: Bedrock, Name: "bedrock", Category: Solid,
		Color: [4]uint8{30, 30, 35, 255}, Density: 10.0,
		HeatConductivity: 0.05, Structural: true,
		StructuralStrength: ptrF32(1e9),
	})
	r.Register(&Material{
		ID: Stone, Name: "stone", Category: Solid,
		Color: [4]uint8{128, 128, 130, 255}, Density: 2.6,
		Hardness: ptrU8(5), HardnessMultiplier: 1.0,
		Friction: 0.8, HeatConductivity: 0.3,
		MeltingPoint: ptrF32(1200), MeltsTo: ptrID(Lava),
		Structural: true, StructuralStrength: ptrF32(100),
		Tags: []Tag{TagMineral},
	})
	r.Register(&Material{
		ID: Sand, Name: "sand", Category: Powder,
		Color: [4]uint8{212, 192, 125, 255}, Density: 1.6,
		Hardness: ptrU8(1), HardnessMultiplier: 1.0,
		Friction: 0.4, HeatConductivity: 0.2,
		MeltingPoint: ptrF32(1700), MeltsTo: ptrID(Glass),
		Tags: []Tag{TagMineral},
	})
	r.Register(&Material{
		ID: Water, Name: "water", Category: Liquid,
		Color: [4]uint8{40, 90, 220, 180}, Density: 1.0,
		Hardness: ptrU8(1), HardnessMultiplier: 1.0,
		Viscosity: 0.1, HeatConductivity: 0.6,
		BoilingPoint: ptrF32(100), BoilsTo: ptrID(Steam),
		FreezingPoint: ptrF32(0), FreezesTo: ptrID(Ice),
		Tags: []Tag{TagFluid},
	})
	r.Register(&Material{
		ID: Wood, Name: "wood", Category: Solid,
		Color: [4]uint8{120, 80, 40, 255}, Density: 0.7,
		Hardness: ptrU8(3), HardnessMultiplier: 1.0,
		Friction: 0.6, HeatConductivity: 0.15,
		IgnitionTemp: ptrF32(300), Flammable: true,
		BurnRate: 0.4, BurnsTo: ptrID(Ash),
		FuelValue: ptrF32(15), Structural: true,
		StructuralStrength: ptrF32(40),
		Tags:               []Tag{TagOrganic},
	})
	r.Register(&Material{
		ID: Dirt, Name: "dirt", Category: Powder,
		Color: [4]uint8{110, 80, 50, 255}, Density: 1.3,
		Hardness: ptrU8(1), HardnessMultiplier: 1.0,
		Friction: 0.5, HeatConductivity: 0.2,
		Tags: []Tag{TagMineral},
	})
	r.Register(&Material{
		ID: Grass, Name: "grass", Category: Solid,
		Color: [4]uint8{70, 160, 60, 255}, Density: 1.2,
		Hardness: ptrU8(1), HardnessMultiplier: 1.0,
		Friction: 0.5, HeatConductivity: 0.2,
		IgnitionTemp: ptrF32(250), Flammable: true,
		BurnRate: 0.8, BurnsTo: ptrID(Ash),
		Tags: []Tag{TagOrganic},
	})
	r.Register(&Material{
		ID: Lava, Name: "lava", Category: Liquid,
		Color: [4]uint8{230, 90, 20, 255}, Density: 3.1,
		Viscosity: 0.85, HeatConductivity: 0.8,
		LightEmission: 15, HeatEmission: 400,
		Tags: []Tag{TagFluid},
	})
	r.Register(&Material{
		ID: Fire, Name: "fire", Category: Gas,
		Color: [4]uint8{255, 140, 30, 220}, Density: 0.0005,
		HeatConductivity: 1.0, LightEmission: 14,
	})
	r.Register(&Material{
		ID: Smoke, Name: "smoke", Category: Gas,
		Color: [4]uint8{60, 60, 60, 140}, Density: 0.0008,
		HeatConductivity: 0.1, DissipateChance: 0.02,
	})
	r.Register(&Material{
		ID: Steam, Name: "steam", Category: Gas,
		Color: [4]uint8{200, 200, 210, 120}, Density: 0.0006,
		HeatConductivity: 0.4, DissipateChance: 0.01,
		FreezingPoint: ptrF32(99), FreezesTo: ptrID(Water),
	})
	r.Register(&Material{
		ID: Ice, Name: "ice", Category: Solid,
		Color: [4]uint8{170, 210, 240, 255}, Density: 0.92,
		Hardness: ptrU8(2), HardnessMultiplier: 1.0,
		Friction: 0.05, HeatConductivity: 0.5,
		MeltingPoint: ptrF32(0), MeltsTo: ptrID(Water),
		Tags: []Tag{TagMineral},
	})
	r.Register(&Material{
		ID: Oil, Name: "oil", Category: Liquid,
		Color: [4]uint8{40, 35, 25, 230}, Density: 0.85,
		Hardness: ptrU8(1), HardnessMultiplier: 1.0,
		Viscosity: 0.4, HeatConductivity: 0.2,
		IgnitionTemp: ptrF32(250), Flammable: true,
		BurnRate: 0.9, BurnsTo: ptrID(Smoke),
		FuelValue: ptrF32(40),
		Tags:      []Tag{TagFluid},
	})
	r.Register(&Material{
		ID: Ash, Name: "ash", Category: Powder,
		Color: [4]uint8{90, 88, 85, 255}, Density: 0.4,
		Hardness: ptrU8(1), HardnessMultiplier: 1.0,
		Friction: 0.3, HeatConductivity: 0.1,
	})
	r.Register(&Material{
		ID: IronOre, Name: "iron_ore", Category: Solid,
		Color: [4]uint8{150, 120, 110, 255}, Density: 4.0,
		Hardness: ptrU8(5), HardnessMultiplier: 2.0,
		Friction: 0.8, HeatConductivity: 0.7,
		MeltingPoint: ptrF32(1500), MeltsTo: ptrID(Lava),
		Structural:   true, StructuralStrength: ptrF32(150),
		Tags: []Tag{TagMineral, TagOre},
	})
	r.Register(&Material{
		ID: Coal, Name: "coal", Category: Solid,
		Color: [4]uint8{40, 40, 40, 255}, Density: 1.4,
		Hardness: ptrU8(3), HardnessMultiplier: 1.5,
		Friction: 0.7, HeatConductivity: 0.2,
		IgnitionTemp: ptrF32(400), Flammable: true,
		BurnRate: 0.1, BurnsTo: ptrID(Ash),
		FuelValue: ptrF32(80),
		Tags:      []Tag{TagMineral, TagOre},
	})
	r.Register(&Material{
		ID: Berry, Name: "berry", Category: Solid,
		Color: [4]uint8{190, 40, 70, 255}, Density: 0.5,
		Hardness: ptrU8(1), HardnessMultiplier: 1.0,
		HeatConductivity: 0.2,
		NutritionalValue: ptrF32(25),
		IgnitionTemp:     ptrF32(200), Flammable: true,
		BurnRate: 1.0,
		Tags:     []Tag{TagEdible, TagOrganic},
	})
	r.Register(&Material{
		ID: Plant, Name: "plant", Category: Solid,
		Color: [4]uint8{50, 180, 70, 255}, Density: 0.4,
		Hardness: ptrU8(1), HardnessMultiplier: 1.0,
		HeatConductivity: 0.2,
		IgnitionTemp:     ptrF32(220), Flammable: true,
		BurnRate: 1.0, BurnsTo: ptrID(Ash),
		Tags: []Tag{TagOrganic},
	})
	r.Register(&Material{
		ID: Acid, Name: "acid", Category: Liquid,
		Color: [4]uint8{120, 220, 40, 210}, Density: 1.2,
		Hardness: ptrU8(1), HardnessMultiplier: 1.0,
		Viscosity: 0.15, HeatConductivity: 0.3,
		Toxicity: ptrF32(0.8),
		Tags:     []Tag{TagFluid},
	})
	r.Register(&Material{
		ID: Glass, Name: "glass", Category: Solid,
		Color: [4]uint8{200, 220, 230, 90}, Density: 2.5,
		Hardness: ptrU8(2), HardnessMultiplier: 1.0,
		Friction: 0.3, HeatConductivity: 0.4,
		MeltingPoint: ptrF32(1700), MeltsTo: ptrID(Lava),
		Tags: []Tag{TagMineral},
	})

	return r
}
