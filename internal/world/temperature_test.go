package world

import (
	"testing"

	"sunaba/internal/material"
)

func TestTemperatureQueryUnloaded(t *testing.T) {
	w := New()
	w.DisablePersistence()
	if got := w.GetTemperature(1000, 1000); got != Ambient {
		t.Errorf("unloaded temperature = %g, want ambient %g", got, Ambient)
	}
}

func TestTemperatureDiffusesOutward(t *testing.T) {
	w := scenarioWorld(t, 0, 0, 63, 63)

	// Fill with stone so conductivity is meaningful.
	for y := int32(0); y < 64; y++ {
		for x := int32(0); x < 64; x++ {
			w.SetPixel(x, y, material.Stone)
		}
	}
	w.SetTemperature(32, 32, 1000)
	before := w.GetTemperature(32+TempBlockSize, 32)

	// Two ticks fire one temperature step (30 Hz cadence).
	rng := NewRand(1)
	stepN(w, 2, rng)

	center := w.GetTemperature(32, 32)
	neighbor := w.GetTemperature(32+TempBlockSize, 32)

	if center >= 1000 {
		t.Errorf("hot block did not cool: %g", center)
	}
	if neighbor <= before {
		t.Errorf("neighbor block did not warm: %g -> %g", before, neighbor)
	}
}

func TestTemperatureCadence(t *testing.T) {
	w := scenarioWorld(t, 0, 0, 63, 63)
	for y := int32(0); y < 64; y++ {
		for x := int32(0); x < 64; x++ {
			w.SetPixel(x, y, material.Stone)
		}
	}
	w.SetTemperature(32, 32, 1000)

	// A single tick (odd cadence counter) leaves the field untouched.
	w.StepOnce(&TickStats{}, NewRand(2))
	if got := w.GetTemperature(32, 32); got != 1000 {
		t.Errorf("temperature stepped on the off-cadence tick: %g", got)
	}
}

func TestBurningEmitsHeat(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	w.SetPixel(0, 0, material.Wood)
	w.SetTemperature(0, 0, 350) // above ignition, wood starts burning

	rng := NewRand(3)
	w.StepOnce(&TickStats{}, rng)

	px, _ := w.GetPixel(0, 0)
	if px.Material == material.Wood && !px.Burning() {
		t.Fatal("wood did not ignite")
	}
	// The first tick skips diffusion, so the burning pixel's emission
	// lifts the block above its starting 350.
	if got := w.GetTemperature(0, 0); got <= 350 {
		t.Errorf("burning block temperature = %g", got)
	}
}
