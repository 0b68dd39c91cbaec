package player

import "github.com/go-gl/mathgl/mgl32"

// Ground friction deceleration when no horizontal input is held.
const deceleration = 800.0

// CollideFunc reports whether a rectangle at (x, y) with the given size
// overlaps solid world material.
type CollideFunc func(x, y, w, h float32) bool

// StepPhysics advances the player one frame: grounded check, coyote
// time, jump buffering, horizontal movement with ground friction,
// gravity with flight thrust, and axis-separated collision. The world
// is reached only through the callbacks, keeping this package free of
// a world dependency.
func StepPhysics(p *Player, input InputState, dt, speed float32, isGrounded func() bool, collides CollideFunc) {
	p.Grounded = isGrounded()

	if p.Grounded {
		p.CoyoteTimer = CoyoteTime
	} else {
		p.CoyoteTimer = maxF(p.CoyoteTimer-dt, 0)
	}

	if input.JumpPressed {
		p.JumpBuffer = JumpBuffer
	} else {
		p.JumpBuffer = maxF(p.JumpBuffer-dt, 0)
	}

	var horizontal float32
	if input.Left {
		horizontal -= 1
	}
	if input.Right {
		horizontal += 1
	}

	if horizontal != 0 {
		p.Velocity[0] = horizontal * speed
	} else if p.Grounded {
		friction := deceleration * dt
		if absF(p.Velocity[0]) < friction {
			p.Velocity[0] = 0
		} else if p.Velocity[0] > 0 {
			p.Velocity[0] -= friction
		} else {
			p.Velocity[0] += friction
		}
	}
	// No friction in air: momentum is preserved for jump control.

	switch {
	case p.JumpBuffer > 0 && p.CoyoteTimer > 0:
		p.Velocity[1] = JumpVelocity
		p.JumpBuffer = 0
		p.CoyoteTimer = 0
	case !p.Grounded:
		if input.Up {
			p.Velocity[1] += FlightThrust * dt
		}
		p.Velocity[1] -= Gravity * dt
		p.Velocity[1] = clampF(p.Velocity[1], -MaxFallSpeed, MaxFallSpeed)
	default:
		p.Velocity[1] = 0
	}

	movement := p.Velocity.Mul(dt)

	canMoveX := !collides(p.Position.X()+movement.X(), p.Position.Y(), Width, Height)
	canMoveY := !collides(p.Position.X(), p.Position.Y()+movement.Y(), Width, Height)

	final := mgl32.Vec2{}
	if canMoveX {
		final[0] = movement.X()
	}
	if canMoveY {
		final[1] = movement.Y()
	} else {
		p.Velocity[1] = 0
	}

	// Nudge out of tight spaces when fully wedged and the player is
	// actively trying to move.
	if !canMoveX && !canMoveY && (input.Left || input.Right || input.Up || input.Down) {
		const offset = 0.5
		attempts := [4][2]float32{{offset, 0}, {-offset, 0}, {0, offset}, {0, -offset}}
		for _, a := range attempts {
			tx := p.Position.X() + a[0]
			ty := p.Position.Y() + a[1]
			if !collides(tx, ty, Width, Height) {
				p.Position = mgl32.Vec2{tx, ty}
				return
			}
		}
	}

	p.MoveBy(final)
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
