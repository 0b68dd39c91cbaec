package inventory

import (
	"testing"

	"sunaba/internal/item"
	"sunaba/internal/material"
)

func TestAddItemStacks(t *testing.T) {
	inv := New()

	if rest := inv.AddItem(material.Stone, 50); rest != 0 {
		t.Fatalf("overflow = %d", rest)
	}
	inv.AddItem(material.Stone, 100)
	if got := inv.CountItem(material.Stone); got != 150 {
		t.Errorf("count = %d, want 150", got)
	}
	if got := inv.UsedSlotCount(); got != 1 {
		t.Errorf("used slots = %d, want 1 (identical ids combine)", got)
	}
}

func TestAddItemSpillsAcrossSlots(t *testing.T) {
	inv := New()
	if rest := inv.AddItem(material.Sand, 2000); rest != 0 {
		t.Fatalf("overflow = %d", rest)
	}
	if got := inv.UsedSlotCount(); got != 3 {
		t.Errorf("used slots = %d, want 3 (999+999+2)", got)
	}
}

func TestAddItemFullInventory(t *testing.T) {
	inv := New()
	for i := 0; i < MaxSlots; i++ {
		inv.AddItem(material.ID(100+i), item.MaxStackSize)
	}
	if rest := inv.AddItem(material.Stone, 10); rest != 10 {
		t.Errorf("full inventory accepted %d items", 10-int(rest))
	}
}

func TestRemoveItemAcrossStacks(t *testing.T) {
	inv := New()
	inv.AddItem(material.Water, 1500) // 999 + 501

	if removed := inv.RemoveItem(material.Water, 1200); removed != 1200 {
		t.Fatalf("removed = %d", removed)
	}
	if got := inv.CountItem(material.Water); got != 300 {
		t.Errorf("count = %d, want 300", got)
	}
	if got := inv.UsedSlotCount(); got != 1 {
		t.Errorf("used slots = %d, want 1 (emptied stack frees slot)", got)
	}
}

func TestHasItem(t *testing.T) {
	inv := New()
	inv.AddItem(material.Wood, 100)
	if !inv.HasItem(material.Wood, 100) {
		t.Error("has 100")
	}
	if inv.HasItem(material.Wood, 101) {
		t.Error("does not have 101")
	}
}

func TestToolsNeverStack(t *testing.T) {
	inv := New()
	inv.AddTool(item.Tool{Def: item.WoodPickaxe, Durability: 60})
	inv.AddTool(item.Tool{Def: item.WoodPickaxe, Durability: 60})
	if got := inv.UsedSlotCount(); got != 2 {
		t.Errorf("used slots = %d, want 2 (tools occupy one slot each)", got)
	}
}

func TestDamageToolRemovesBroken(t *testing.T) {
	inv := New()
	inv.AddTool(item.Tool{Def: item.IronPickaxe, Durability: 1})

	if !inv.DamageTool(item.IronPickaxe, 1) {
		t.Fatal("tool should break")
	}
	if inv.FindTool(item.IronPickaxe) >= 0 {
		t.Error("broken tool must leave the inventory")
	}
}

func TestSlotBounds(t *testing.T) {
	inv := New()
	if inv.Slot(-1) != nil || inv.Slot(MaxSlots) != nil {
		t.Error("out-of-range slots must be nil")
	}
	if inv.Slot(0) == nil {
		t.Error("slot 0 must exist")
	}
}
