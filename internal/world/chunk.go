package world

import "sunaba/internal/material"

const (
	// ChunkSize is the chunk edge length in pixels.
	ChunkSize = 64
	// ChunkArea is the number of pixels in a chunk.
	ChunkArea = ChunkSize * ChunkSize
	// TempGridSize is the temperature sample grid edge length; each
	// sample covers an 8x8 pixel block.
	TempGridSize = 8
	// TempBlockSize is the pixel edge length of one temperature sample.
	TempBlockSize = ChunkSize / TempGridSize
	// Ambient is the environmental baseline temperature in Celsius.
	Ambient = 20.0
)

// Chunk is a 64x64 tile of pixels plus the auxiliary fields layered on
// them: an 8x8 temperature grid, per-pixel light levels (0-15), and a
// per-pixel pressure scalar.
type Chunk struct {
	X, Y int32

	Pixels      [ChunkArea]Pixel
	Temperature [TempGridSize * TempGridSize]float32
	Light       [ChunkArea]uint8
	Pressure    [ChunkArea]float32

	// Dirty is set on any pixel change and cleared after a disk save.
	Dirty bool

	// simulationActive is set in any tick where a pixel in this chunk
	// moved; it drives the neighbor-propagation update schedule.
	simulationActive bool
}

// NewChunk creates an empty chunk at the given chunk coordinates with
// all temperature samples at ambient. Fresh chunks start simulation
// active so they get one settling scan.
func NewChunk(cx, cy int32) *Chunk {
	c := &Chunk{X: cx, Y: cy, simulationActive: true}
	for i := range c.Temperature {
		c.Temperature[i] = Ambient
	}
	return c
}

func pixelIndex(x, y int) int { return y*ChunkSize + x }

func tempIndex(x, y int) int {
	return (y/TempBlockSize)*TempGridSize + x/TempBlockSize
}

// GetPixel returns the pixel at local coordinates. Out-of-range
// coordinates return air.
func (c *Chunk) GetPixel(x, y int) Pixel {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize {
		return Pixel{}
	}
	return c.Pixels[pixelIndex(x, y)]
}

// SetPixel writes the pixel at local coordinates, marking the chunk
// dirty and waking its simulation so the CA re-examines the
// neighborhood next tick.
func (c *Chunk) SetPixel(x, y int, p Pixel) {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize {
		return
	}
	c.Pixels[pixelIndex(x, y)] = p
	c.Dirty = true
	c.simulationActive = true
}

// GetMaterial returns the material id at local coordinates.
func (c *Chunk) GetMaterial(x, y int) material.ID {
	return c.GetPixel(x, y).Material
}

// SetMaterial writes a bare pixel of the given material.
func (c *Chunk) SetMaterial(x, y int, id material.ID) {
	c.SetPixel(x, y, NewPixel(id))
}

// TemperatureAt returns the temperature sample covering the local
// pixel coordinates.
func (c *Chunk) TemperatureAt(x, y int) float32 {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize {
		return Ambient
	}
	return c.Temperature[tempIndex(x, y)]
}

// AddHeat adds delta to the temperature sample covering the local
// pixel coordinates.
func (c *Chunk) AddHeat(x, y int, delta float32) {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize {
		return
	}
	c.Temperature[tempIndex(x, y)] += delta
}

// LightAt returns the light level at local coordinates.
func (c *Chunk) LightAt(x, y int) uint8 {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize {
		return 0
	}
	return c.Light[pixelIndex(x, y)]
}

// SetLight writes the light level at local coordinates.
func (c *Chunk) SetLight(x, y int, level uint8) {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize {
		return
	}
	c.Light[pixelIndex(x, y)] = level
}

// PressureAt returns the pressure scalar at local coordinates.
func (c *Chunk) PressureAt(x, y int) float32 {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize {
		return 0
	}
	return c.Pressure[pixelIndex(x, y)]
}

// ClearUpdateFlags strips the per-tick updated bit from every pixel.
func (c *Chunk) ClearUpdateFlags() {
	for i := range c.Pixels {
		c.Pixels[i].Flags &^= FlagUpdated
	}
}

// SimulationActive reports whether a pixel moved here last tick.
func (c *Chunk) SimulationActive() bool { return c.simulationActive }

// SetSimulationActive sets the activity marker.
func (c *Chunk) SetSimulationActive(v bool) { c.simulationActive = v }

// CountNonAir returns the number of non-air pixels.
func (c *Chunk) CountNonAir() int {
	n := 0
	for i := range c.Pixels {
		if c.Pixels[i].Material != material.Air {
			n++
		}
	}
	return n
}

// Equal reports whether two chunks hold identical data (coordinates,
// pixels, and all auxiliary fields).
func (c *Chunk) Equal(other *Chunk) bool {
	return c.X == other.X && c.Y == other.Y &&
		c.Pixels == other.Pixels &&
		c.Temperature == other.Temperature &&
		c.Light == other.Light &&
		c.Pressure == other.Pressure
}
