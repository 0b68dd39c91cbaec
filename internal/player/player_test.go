package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"sunaba/internal/material"
)

func TestNewPlayerStartingStock(t *testing.T) {
	p := New(mgl32.Vec2{100, 200})
	if p.Position != (mgl32.Vec2{100, 200}) {
		t.Errorf("position = %v", p.Position)
	}
	if p.Inventory.CountItem(material.Stone) != 100 {
		t.Error("starting stone missing")
	}
	if p.Health.Current != 100 || p.Hunger.Current != 100 {
		t.Error("starting stats wrong")
	}
}

func TestHungerStarvation(t *testing.T) {
	p := New(mgl32.Vec2{})

	// Deplete hunger entirely (drain 0.1/s).
	p.Update(1000)
	if !p.Hunger.IsStarving() {
		t.Fatal("hunger should be exhausted")
	}

	// Starvation damage (1/s) eats into health.
	p.Update(50)
	if p.Health.Current >= 100 {
		t.Error("no starvation damage applied")
	}

	for i := 0; i < 1000 && !p.IsDead; i++ {
		p.Update(1)
	}
	if !p.IsDead {
		t.Error("player never starved to death")
	}
}

func TestEatFood(t *testing.T) {
	p := New(mgl32.Vec2{})
	p.Inventory.Clear()
	p.Inventory.AddItem(material.Berry, 3)
	p.Hunger.Set(50)

	if !p.EatFood(material.Berry, 30) {
		t.Fatal("eat failed")
	}
	if p.Hunger.Current != 80 {
		t.Errorf("hunger = %g, want 80", p.Hunger.Current)
	}
	if p.Inventory.CountItem(material.Berry) != 2 {
		t.Error("berry not consumed")
	}
	if p.EatFood(material.Lava, 10) {
		t.Error("cannot eat what you do not hold")
	}
}

func TestHotbarSelection(t *testing.T) {
	p := New(mgl32.Vec2{})
	p.SelectNextSlot()
	if p.SelectedSlot != 1 {
		t.Errorf("slot = %d", p.SelectedSlot)
	}
	p.SelectSlot(9)
	p.SelectNextSlot()
	if p.SelectedSlot != 0 {
		t.Errorf("hotbar must wrap: %d", p.SelectedSlot)
	}
	p.SelectPrevSlot()
	if p.SelectedSlot != 9 {
		t.Errorf("reverse wrap: %d", p.SelectedSlot)
	}
	p.SelectSlot(999)
	if p.SelectedSlot != 49 {
		t.Errorf("clamp: %d", p.SelectedSlot)
	}
}

func TestRespawnKeepsInventory(t *testing.T) {
	p := New(mgl32.Vec2{})
	p.Inventory.AddItem(material.Coal, 7)
	p.Health.TakeDamage(90)
	p.Hunger.Set(5)
	p.IsDead = true

	p.Respawn(mgl32.Vec2{500, 500})

	if p.Position != (mgl32.Vec2{500, 500}) || p.IsDead {
		t.Error("respawn state wrong")
	}
	if p.Health.Current != 100 || p.Hunger.Current != 100 {
		t.Error("stats not restored")
	}
	if p.Inventory.CountItem(material.Coal) != 7 {
		t.Error("inventory must survive respawn")
	}
}

func TestMiningProgress(t *testing.T) {
	var mp MiningProgress
	if mp.IsMining() {
		t.Error("fresh progress is idle")
	}

	mp.Start(10, 20, 5.0)
	if !mp.IsMining() || mp.RequiredTime != 5.0 {
		t.Error("start state wrong")
	}
	if mp.Update(1.0) {
		t.Error("completed too early")
	}
	if mp.Percentage() != 20 {
		t.Errorf("percentage = %g, want 20", mp.Percentage())
	}
	if !mp.Update(4.0) {
		t.Error("should complete at 5s total")
	}
	if mp.IsMining() {
		t.Error("completion must reset progress")
	}
}

func stepPhysicsNoCollide(p *Player, in InputState, dt float32, grounded bool) {
	StepPhysics(p, in, dt, 200,
		func() bool { return grounded },
		func(x, y, w, h float32) bool { return false })
}

func TestPhysicsGroundedAndCoyote(t *testing.T) {
	p := New(mgl32.Vec2{100, 100})
	dt := float32(1.0 / 60.0)

	stepPhysicsNoCollide(p, InputState{}, dt, true)
	if !p.Grounded || p.CoyoteTimer != CoyoteTime {
		t.Error("grounded frame must refill coyote time")
	}

	stepPhysicsNoCollide(p, InputState{}, dt, false)
	if p.CoyoteTimer >= CoyoteTime || p.CoyoteTimer <= 0 {
		t.Errorf("coyote timer = %g, want decaying", p.CoyoteTimer)
	}
}

func TestPhysicsJumpConsumesBuffers(t *testing.T) {
	p := New(mgl32.Vec2{100, 100})
	dt := float32(1.0 / 60.0)

	stepPhysicsNoCollide(p, InputState{JumpPressed: true}, dt, true)
	if p.Velocity.Y() != JumpVelocity {
		t.Errorf("jump velocity = %g, want %g", p.Velocity.Y(), JumpVelocity)
	}
	if p.CoyoteTimer != 0 || p.JumpBuffer != 0 {
		t.Error("jump must consume coyote time and jump buffer")
	}
}

func TestPhysicsGravityAndTerminal(t *testing.T) {
	p := New(mgl32.Vec2{100, 100})
	dt := float32(1.0 / 60.0)

	stepPhysicsNoCollide(p, InputState{}, dt, false)
	if p.Velocity.Y() >= 0 {
		t.Error("gravity must pull airborne players down")
	}

	p.Velocity[1] = -10000
	stepPhysicsNoCollide(p, InputState{}, dt, false)
	if p.Velocity.Y() < -MaxFallSpeed {
		t.Errorf("fall speed %g exceeds terminal %g", p.Velocity.Y(), MaxFallSpeed)
	}
}

func TestPhysicsHorizontalMovementAndFriction(t *testing.T) {
	p := New(mgl32.Vec2{100, 100})
	dt := float32(1.0 / 60.0)

	stepPhysicsNoCollide(p, InputState{Right: true}, dt, true)
	if p.Velocity.X() != 200 || p.Position.X() <= 100 {
		t.Error("right input must move the player")
	}

	stepPhysicsNoCollide(p, InputState{}, dt, true)
	if p.Velocity.X() >= 200 {
		t.Error("ground friction must slow the player without input")
	}
}

func TestPhysicsCollisionBlocksAxis(t *testing.T) {
	p := New(mgl32.Vec2{100, 100})
	p.Velocity[1] = -100
	dt := float32(1.0 / 60.0)

	StepPhysics(p, InputState{}, dt, 200,
		func() bool { return false },
		func(x, y, w, h float32) bool { return y < 100 })

	if p.Position.Y() != 100 {
		t.Errorf("blocked axis moved: y = %g", p.Position.Y())
	}
	if p.Velocity.Y() != 0 {
		t.Error("vertical velocity must zero on collision")
	}
}
