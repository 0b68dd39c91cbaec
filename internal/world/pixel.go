package world

import "sunaba/internal/material"

// Pixel flag bits.
const (
	// FlagBurning marks a pixel undergoing combustion.
	FlagBurning uint8 = 1 << iota
	// FlagPlayerPlaced marks cells placed by the player; required for
	// structural collapse eligibility.
	FlagPlayerPlaced
	// FlagUpdated marks pixels already stepped this tick. Cleared at
	// the start of every tick so a moved pixel is not stepped twice.
	FlagUpdated
)

// Pixel is one cell of the world grid.
type Pixel struct {
	Material material.ID
	Flags    uint8
}

// NewPixel creates a pixel of the given material with no flags set.
func NewPixel(id material.ID) Pixel {
	return Pixel{Material: id}
}

// IsEmpty reports whether the pixel is air.
func (p Pixel) IsEmpty() bool { return p.Material == material.Air }

// Burning reports whether the burning flag is set.
func (p Pixel) Burning() bool { return p.Flags&FlagBurning != 0 }

// PlayerPlaced reports whether the player placed this pixel.
func (p Pixel) PlayerPlaced() bool { return p.Flags&FlagPlayerPlaced != 0 }

// Updated reports whether the pixel was already stepped this tick.
func (p Pixel) Updated() bool { return p.Flags&FlagUpdated != 0 }
