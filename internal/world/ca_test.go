package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"sunaba/internal/material"
)

// scenarioWorld builds an ephemeral world with empty chunks covering
// the area and the player parked at the scene center so the active set
// includes it.
func scenarioWorld(t *testing.T, minX, minY, maxX, maxY int32) *World {
	t.Helper()
	w := New()
	w.DisablePersistence()
	w.EnsureChunksForArea(minX, minY, maxX, maxY)
	w.Player.Position = mgl32.Vec2{
		float32(minX+maxX) / 2,
		float32(minY+maxY) / 2,
	}
	return w
}

func stepN(w *World, n int, rng *Rand) *TickStats {
	stats := &TickStats{}
	for i := 0; i < n; i++ {
		w.StepOnce(stats, rng)
	}
	return stats
}

func countMaterial(w *World, id material.ID, minX, minY, maxX, maxY int32) int {
	n := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if m, ok := w.GetPixelMaterial(x, y); ok && m == id {
				n++
			}
		}
	}
	return n
}

func TestSandFallsStraightDown(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	for x := int32(-2); x <= 2; x++ {
		w.SetPixel(x, 0, material.Stone) // floor
	}
	w.SetPixel(0, 10, material.Sand)

	stepN(w, 30, NewRand(1))

	if m, _ := w.GetPixelMaterial(0, 1); m != material.Sand {
		t.Errorf("sand should rest at (0,1), found %d there", m)
	}
	if m, _ := w.GetPixelMaterial(0, 10); m != material.Air {
		t.Error("sand origin should be empty")
	}
}

func TestSandColumnRestsWithoutLateralRoom(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	// Stone floor and confining walls: the 1-wide shaft leaves no
	// lateral room, so the column must not drift.
	for x := int32(-2); x <= 2; x++ {
		w.SetPixel(x, 19, material.Stone)
	}
	for y := int32(20); y <= 36; y++ {
		w.SetPixel(-1, y, material.Stone)
		w.SetPixel(1, y, material.Stone)
	}
	for y := int32(20); y <= 35; y++ {
		w.SetPixel(0, y, material.Sand)
	}

	stepN(w, 200, NewRand(7))

	for y := int32(20); y <= 35; y++ {
		if m, _ := w.GetPixelMaterial(0, y); m != material.Sand {
			t.Fatalf("sand missing at (0,%d): found %d", y, m)
		}
	}
	if got := countMaterial(w, material.Sand, -3, 15, 3, 40); got != 16 {
		t.Errorf("sand count = %d, want 16", got)
	}
}

func TestWaterSpreadsIntoPuddle(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	// Stone basin: floor at wy=9, walls at wx=±5.
	for x := int32(-5); x <= 5; x++ {
		w.SetPixel(x, 9, material.Stone)
	}
	for y := int32(10); y <= 20; y++ {
		w.SetPixel(-5, y, material.Stone)
		w.SetPixel(5, y, material.Stone)
	}
	for y := int32(10); y <= 17; y++ {
		w.SetPixel(0, y, material.Water)
	}

	stepN(w, 120, NewRand(3))

	total := countMaterial(w, material.Water, -4, 10, 4, 20)
	if total != 8 {
		t.Fatalf("water count = %d, want 8 (conservation)", total)
	}
	if above := countMaterial(w, material.Water, -4, 14, 4, 20); above != 0 {
		t.Errorf("%d water pixels above wy=13", above)
	}
	bottomSpread := 0
	for x := int32(-4); x <= 4; x++ {
		if m, _ := w.GetPixelMaterial(x, 10); m == material.Water {
			bottomSpread++
		}
	}
	if bottomSpread < 5 {
		t.Errorf("water spread at wy=10 covers %d cells, want >= 5", bottomSpread)
	}
}

func TestGasRises(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)
	w.SetPixel(0, 0, material.Smoke)

	stepN(w, 40, NewRand(5))

	// The gas either rose or dissipated; it must not remain at origin.
	if m, _ := w.GetPixelMaterial(0, 0); m == material.Smoke {
		t.Error("smoke never moved from origin")
	}
}

func TestUnloadedNeighborActsAsWall(t *testing.T) {
	w := New()
	w.DisablePersistence()
	// One lone chunk; everything outside is unloaded.
	w.EnsureChunksForArea(0, 0, 63, 63)
	w.Player.Position = mgl32.Vec2{32, 32}

	// Sand on the chunk floor: the row below (wy=-1) is unloaded and
	// must act as a solid wall, not silently swallow pixels.
	w.SetPixel(0, 0, material.Sand)
	w.SetPixel(32, 0, material.Water)

	stepN(w, 60, NewRand(9))

	if got := countMaterial(w, material.Sand, 0, 0, 63, 63); got != 1 {
		t.Errorf("sand pixels = %d, want 1 (no silent drops at border)", got)
	}
	if got := countMaterial(w, material.Water, 0, 0, 63, 63); got != 1 {
		t.Errorf("water pixels = %d, want 1 (no silent drops at border)", got)
	}
}

func TestLiquidStackingByDensity(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	// Basin with oil below water: denser water must end up beneath.
	for x := int32(-2); x <= 2; x++ {
		w.SetPixel(x, 9, material.Stone)
	}
	for y := int32(10); y <= 14; y++ {
		w.SetPixel(-2, y, material.Stone)
		w.SetPixel(2, y, material.Stone)
	}
	w.SetPixel(0, 10, material.Oil)
	w.SetPixel(0, 11, material.Water)

	stepN(w, 120, NewRand(11))

	// Water (density 1.0) sinks below oil (0.85) in the basin.
	waterBottom := countMaterial(w, material.Water, -1, 10, 1, 10)
	if waterBottom != 1 {
		t.Errorf("expected water on the basin floor, got %d", waterBottom)
	}
}

func TestSimulationActivityPropagates(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)
	for x := int32(-2); x <= 2; x++ {
		w.SetPixel(x, 0, material.Stone)
	}
	w.SetPixel(0, 30, material.Sand)

	stats := stepN(w, 5, NewRand(2))
	if stats.Moves == 0 {
		t.Fatal("falling sand recorded no moves")
	}

	// Once everything settles, the world goes quiet.
	stepN(w, 120, NewRand(2))
	quiet := stepN(w, 5, NewRand(2))
	if quiet.Moves != 0 {
		t.Errorf("settled world still recorded %d moves", quiet.Moves)
	}
}
