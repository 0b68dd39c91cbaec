package world

import (
	"testing"

	"sunaba/internal/material"
)

// buildFloatingPlatform places a 3x3 player-placed stone platform with
// no supports at {-1..1}x{30..32} above a stone ground row at wy=19.
func buildFloatingPlatform(t *testing.T) *World {
	t.Helper()
	w := scenarioWorld(t, -64, -64, 127, 127)

	for x := int32(-10); x <= 10; x++ {
		w.SetPixel(x, 19, material.Stone)
	}
	for y := int32(30); y <= 32; y++ {
		for x := int32(-1); x <= 1; x++ {
			px := NewPixel(material.Stone)
			px.Flags |= FlagPlayerPlaced
			w.SetPixelFull(x, y, px)
		}
	}
	return w
}

func TestStructuralCollapse(t *testing.T) {
	w := buildFloatingPlatform(t)

	// Mine out the center-bottom cell of the platform.
	if !w.MinePixel(0, 30) {
		t.Fatal("mining the platform cell failed")
	}
	if w.Structural().PendingCount() == 0 {
		t.Fatal("removing a player-placed structural solid must schedule a check")
	}

	rng := NewRand(41)
	w.StepOnce(&TickStats{}, rng)

	if w.FallingChunkCount() != 1 {
		t.Fatalf("falling chunks = %d, want 1", w.FallingChunkCount())
	}
	if got := len(w.FallingChunks()[0].Pixels); got != 8 {
		t.Errorf("falling chunk has %d pixels, want 8", got)
	}

	// The collapsed region is air now.
	for y := int32(30); y <= 32; y++ {
		for x := int32(-1); x <= 1; x++ {
			if m, _ := w.GetPixelMaterial(x, y); m != material.Air {
				t.Errorf("(%d,%d) still holds %d after collapse", x, y, m)
			}
		}
	}

	// Within 60 ticks the stones land on the ground row.
	for i := 0; i < 60 && w.FallingChunkCount() > 0; i++ {
		w.StepOnce(&TickStats{}, rng)
	}
	if w.FallingChunkCount() != 0 {
		t.Fatal("debris never settled")
	}

	landed := countMaterial(w, material.Stone, -5, 20, 5, 25)
	if landed != 8 {
		t.Errorf("landed stones = %d, want 8", landed)
	}
	if back := countMaterial(w, material.Stone, -1, 30, 1, 32); back != 0 {
		t.Errorf("%d stones remain at pre-collapse locations", back)
	}
}

func TestSupportedPlatformStays(t *testing.T) {
	w := buildFloatingPlatform(t)

	// Add a natural stone pillar from the ground to the platform.
	for y := int32(20); y <= 29; y++ {
		w.SetPixel(1, y, material.Stone)
	}

	if !w.MinePixel(0, 30) {
		t.Fatal("mining failed")
	}
	w.StepOnce(&TickStats{}, NewRand(43))

	if w.FallingChunkCount() != 0 {
		t.Error("supported platform must not collapse")
	}
	if got := countMaterial(w, material.Stone, -1, 30, 1, 32); got != 8 {
		t.Errorf("platform pixels = %d, want 8", got)
	}
}

func TestNaturalSolidNeverCollapses(t *testing.T) {
	w := scenarioWorld(t, -64, -64, 127, 127)

	// A floating natural (non-player-placed) stone blob: mining into it
	// must not schedule structural checks.
	for x := int32(0); x <= 2; x++ {
		w.SetPixel(x, 40, material.Stone)
	}
	if !w.MinePixel(1, 40) {
		t.Fatal("mining failed")
	}
	if w.Structural().PendingCount() != 0 {
		t.Error("natural solids must not schedule structural checks")
	}
}

func TestCheckCapKeepsExcessQueued(t *testing.T) {
	ss := NewStructuralSystem()
	ss.MaxChecksPerTick = 2
	for i := int32(0); i < 5; i++ {
		ss.ScheduleCheck(i*100, 0)
	}
	// Duplicates collapse.
	ss.ScheduleCheck(0, 0)
	if ss.PendingCount() != 5 {
		t.Fatalf("pending = %d, want 5", ss.PendingCount())
	}

	w := scenarioWorld(t, 0, 0, 63, 63)
	if ran := ss.ProcessChecks(w); ran != 2 {
		t.Errorf("processed %d, want 2", ran)
	}
	if ss.PendingCount() != 3 {
		t.Errorf("pending after batch = %d, want 3", ss.PendingCount())
	}
}
