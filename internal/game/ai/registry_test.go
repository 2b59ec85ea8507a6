package ai_test

import (
	"testing"

	"github.com/cory-johannsen/dungeon/internal/game/ai"
)

func TestRegistry_Register_And_PlannerFor(t *testing.T) {
	reg := ai.NewRegistry()
	if err := reg.Register(hunterDomain(), &mockScriptCaller{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	planner, ok := reg.PlannerFor("hunter")
	if !ok || planner == nil || planner.Domain().ID != "hunter" {
		t.Fatal("expected planner for hunter")
	}
	if got := reg.Domains(); len(got) != 1 || got[0] != "hunter" {
		t.Fatalf("unexpected domains %v", got)
	}
}

func TestRegistry_Register_CollisionError(t *testing.T) {
	reg := ai.NewRegistry()
	caller := &mockScriptCaller{}
	_ = reg.Register(hunterDomain(), caller)
	if err := reg.Register(hunterDomain(), caller); err == nil {
		t.Fatal("expected collision error on second Register")
	}
}

func TestRegistry_PlannerFor_NotFound(t *testing.T) {
	reg := ai.NewRegistry()
	if _, ok := reg.PlannerFor("missing"); ok {
		t.Fatal("expected not found")
	}
}
