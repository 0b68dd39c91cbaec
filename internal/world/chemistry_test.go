package world

import (
	"testing"

	"sunaba/internal/material"
)

func TestWoodBurnsWhenHot(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	w.SetPixel(0, 0, material.Wood)
	w.SetTemperature(0, 0, 600)

	rng := NewRand(13)
	stats := &TickStats{}
	sawBurning := false
	consumed := false

	for i := 0; i < 2000; i++ {
		// Keep the block hot against diffusion so ignition conditions
		// hold for the whole scenario.
		if w.GetTemperature(0, 0) < 400 {
			w.SetTemperature(0, 0, 600)
		}
		w.StepOnce(stats, rng)

		px, _ := w.GetPixel(0, 0)
		if px.Material == material.Wood && px.Burning() {
			sawBurning = true
		}
		if px.Material != material.Wood {
			consumed = true
			break
		}
	}

	if !sawBurning {
		t.Error("burning flag was never observed on the wood pixel")
	}
	if !consumed {
		t.Fatal("wood was never consumed")
	}
	if m, _ := w.GetPixelMaterial(0, 0); m != material.Air && m != material.Ash {
		t.Errorf("wood burned into %d, want air or ash", m)
	}
}

func TestIgnitionRequiresOxygen(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	// Wood fully enclosed in stone: hot but airless, must not ignite.
	w.SetPixel(0, 0, material.Wood)
	for _, d := range neighborOffsets {
		w.SetPixel(0+d[0], 0+d[1], material.Stone)
	}
	w.SetTemperature(0, 0, 600)

	rng := NewRand(17)
	for i := 0; i < 60; i++ {
		w.SetTemperature(0, 0, 600)
		w.StepOnce(&TickStats{}, rng)
	}

	px, _ := w.GetPixel(0, 0)
	if px.Burning() {
		t.Error("airless wood must not ignite")
	}
}

func TestIceMeltsAndWaterBoils(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	// Stone cup holding ice.
	for x := int32(-1); x <= 1; x++ {
		w.SetPixel(x, 9, material.Stone)
	}
	w.SetPixel(-1, 10, material.Stone)
	w.SetPixel(1, 10, material.Stone)
	w.SetPixel(0, 10, material.Ice)

	// Ambient 20C is above ice's melting point: one sweep melts it.
	w.StepOnce(&TickStats{}, NewRand(19))
	if m, _ := w.GetPixelMaterial(0, 10); m != material.Water {
		t.Fatalf("ice at 20C should melt to water, got %d", m)
	}

	// Now superheat the block: water boils to steam.
	w.SetTemperature(0, 10, 150)
	w.StepOnce(&TickStats{}, NewRand(19))
	found := false
	for y := int32(10); y <= 12 && !found; y++ {
		if m, _ := w.GetPixelMaterial(0, y); m == material.Steam {
			found = true
		}
	}
	if !found {
		t.Error("superheated water did not boil to steam")
	}
}

func TestStateChangeCountsAsActivity(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)
	w.SetPixel(0, 10, material.Ice)

	stats := &TickStats{}
	w.StepOnce(stats, NewRand(23))
	if stats.StateChanges == 0 {
		t.Error("melt did not count as a state change")
	}

	coord, _, _ := WorldToChunk(0, 10)
	if !w.GetChunk(coord.X, coord.Y).SimulationActive() {
		t.Error("state change did not mark the chunk simulation active")
	}
}

func TestWaterLavaReaction(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	// Floor, then adjacent water and lava columns.
	for x := int32(-3); x <= 3; x++ {
		w.SetPixel(x, 9, material.Stone)
	}
	w.SetPixel(0, 10, material.Water)
	w.SetPixel(1, 10, material.Lava)

	rng := NewRand(29)
	stats := &TickStats{}
	for i := 0; i < 120; i++ {
		w.StepOnce(stats, rng)
	}

	if stats.Reactions == 0 {
		t.Fatal("water touching lava never reacted")
	}
	stone := countMaterial(w, material.Stone, -3, 10, 3, 12)
	if stone == 0 {
		t.Error("reaction produced no stone")
	}
}

func TestMissingTransitionLeavesPixel(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	// Bedrock has no thermal transitions; heat must not change it.
	w.SetPixel(0, 0, material.Bedrock)
	w.SetTemperature(0, 0, 5000)
	for i := 0; i < 10; i++ {
		w.SetTemperature(0, 0, 5000)
		w.StepOnce(&TickStats{}, NewRand(31))
	}

	if m, _ := w.GetPixelMaterial(0, 0); m != material.Bedrock {
		t.Errorf("bedrock changed to %d without a transition defined", m)
	}
}
