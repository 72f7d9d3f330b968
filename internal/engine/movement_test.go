package engine

import (
	"testing"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

func TestMovementApproaches(t *testing.T) {
	m := NewMovementController()
	self := testFighter("self", -2)
	self.Phase = game.PhaseMoving
	opp := testFighter("opp", 2)

	x := m.Step(&self, &opp, 10, 1)
	if x <= -2 {
		t.Fatalf("mover did not advance: %v", x)
	}
	if x >= 2 {
		t.Fatalf("mover overshot the opponent: %v", x)
	}
}

func TestMovementKeepsSeparation(t *testing.T) {
	m := NewMovementController()
	self := testFighter("self", -0.5)
	self.Phase = game.PhaseMoving
	opp := testFighter("opp", 0)

	for i := 0; i < 100; i++ {
		self.PositionX = m.Step(&self, &opp, 1, 1.3)
	}
	if d := Distance(&self, &opp); d < minSeparation-1e-9 {
		t.Fatalf("separation %v below minimum %v", d, minSeparation)
	}
}

func TestMovementKnockbackDecaysAndClamps(t *testing.T) {
	m := NewMovementController()
	self := testFighter("self", 4.5)
	opp := testFighter("opp", -2)
	m.ApplyKnockback(1, 2.0)

	var last float64
	for i := 0; i < 60; i++ {
		last = m.Step(&self, &opp, 1, 1)
		self.PositionX = last
		if last > ringHalfWidth || last < -ringHalfWidth {
			t.Fatalf("position %v escaped the ring", last)
		}
	}
	if m.knockback != 0 {
		t.Fatalf("knockback %v never decayed to rest", m.knockback)
	}
}

func TestFacingSign(t *testing.T) {
	s := &game.MatchState{}
	s.Agents[0] = testFighter("a", -1)
	s.Agents[1] = testFighter("b", 1)

	if FacingSign(s, 0) != 1 {
		t.Fatal("left fighter should face right")
	}
	if FacingSign(s, 1) != -1 {
		t.Fatal("right fighter should face left")
	}
}
