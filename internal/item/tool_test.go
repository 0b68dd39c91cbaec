package item

import (
	"testing"

	"sunaba/internal/material"
)

func TestMiningSpeedTiersAndTags(t *testing.T) {
	reg := material.Default()
	tools := DefaultTools()

	stone := reg.Get(material.Stone)     // mult 1.0, tag mineral
	ironOre := reg.Get(material.IronOre) // mult 2.0, tags mineral+ore
	wood := reg.Get(material.Wood)       // tag organic, no harvest match

	woodPick := tools.Get(WoodPickaxe)
	ironPick := tools.Get(IronPickaxe)

	if got := woodPick.MiningSpeed(stone); got != 1.0 {
		t.Errorf("wood pickaxe on stone = %g, want 1.0", got)
	}
	if got := woodPick.MiningSpeed(ironOre); got != 0.5 {
		t.Errorf("wood pickaxe on iron ore = %g, want 0.5", got)
	}
	if got := ironPick.MiningSpeed(ironOre); got != 1.5 {
		t.Errorf("iron pickaxe on iron ore = %g, want 1.5", got)
	}
	// No harvest-tag match halves the speed.
	if got := woodPick.MiningSpeed(wood); got != 0.5 {
		t.Errorf("wood pickaxe on wood = %g, want 0.5", got)
	}
}

func TestToolDamage(t *testing.T) {
	tool := Tool{Def: WoodPickaxe, Durability: 3}
	if tool.Damage(1) {
		t.Error("tool broke too early")
	}
	if tool.Durability != 2 {
		t.Errorf("durability = %d, want 2", tool.Durability)
	}
	if !tool.Damage(5) {
		t.Error("tool must break when damage exceeds durability")
	}
	if tool.Durability != 0 {
		t.Errorf("durability = %d, want 0", tool.Durability)
	}
}

func TestStackAddRemove(t *testing.T) {
	s := NewStack(material.Stone, 990)
	if overflow := s.Add(20); overflow != 11 {
		t.Errorf("overflow = %d, want 11", overflow)
	}
	if !s.IsFull() || s.Count != MaxStackSize {
		t.Errorf("stack = %d, want full at %d", s.Count, MaxStackSize)
	}

	if removed := s.Remove(2000); removed != MaxStackSize {
		t.Errorf("removed = %d, want %d", removed, MaxStackSize)
	}
	if !s.IsEmpty() {
		t.Error("stack must be empty")
	}
}
