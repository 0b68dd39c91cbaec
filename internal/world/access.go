package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"sunaba/internal/material"
)

// StatsSink receives per-tick simulation counters and recoverable
// error events. The tick itself never fails; everything surfaces here
// or through Boolean returns on mutators.
type StatsSink interface {
	RecordMoves(n int)
	RecordStateChanges(n int)
	RecordReactions(n int)
	RecordEvent(kind, message string)
}

// NoopStats discards everything.
type NoopStats struct{}

func (NoopStats) RecordMoves(int)          {}
func (NoopStats) RecordStateChanges(int)   {}
func (NoopStats) RecordReactions(int)      {}
func (NoopStats) RecordEvent(_, _ string)  {}

// TickStats accumulates counters, handy for hosts and tests.
type TickStats struct {
	Moves        int
	StateChanges int
	Reactions    int
	Events       []string
}

func (s *TickStats) RecordMoves(n int)        { s.Moves += n }
func (s *TickStats) RecordStateChanges(n int) { s.StateChanges += n }
func (s *TickStats) RecordReactions(n int)    { s.Reactions += n }
func (s *TickStats) RecordEvent(kind, message string) {
	s.Events = append(s.Events, kind+": "+message)
}

// BodyPart is one collision circle of a creature body.
type BodyPart struct {
	Center mgl32.Vec2
	Radius float32
}

// Access is the read capability set handed to creatures and other
// consumers that must not mutate the world.
type Access interface {
	GetPixel(wx, wy int32) (Pixel, bool)
	GetTemperature(wx, wy int32) float32
	GetLight(wx, wy int32) (uint8, bool)
	GetPressure(wx, wy int32) float32
	IsSolidAt(wx, wy int32) bool
	CheckCircleCollision(x, y, radius float32) bool
	IsCreatureGrounded(parts []BodyPart) bool
	Raycast(from, direction mgl32.Vec2, maxDistance float32) (int32, int32, material.ID, bool)
	GetBlockingPixel(from, direction mgl32.Vec2, radius, maxDistance float32) (int32, int32, material.ID, bool)
	Materials() *material.Registry
}

// MutAccess adds the write capability, intended for the creature hook
// running inside the simulation step.
type MutAccess interface {
	Access
	SetPixel(wx, wy int32, id material.ID)
	SetPixelFull(wx, wy int32, p Pixel)
}

// CreatureHook is the external creature-system entry point invoked at
// the end of each simulation step.
type CreatureHook func(w MutAccess, dt float32)
