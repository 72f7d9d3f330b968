package engine

import (
	"testing"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

func testFighter(name string, x float64) game.AgentState {
	return game.AgentState{
		ID: name, Name: name,
		Health: 100, MaxHealth: 100,
		Stamina: 100, MaxStamina: 100,
		PositionX: x,
		Phase:     game.PhaseIdle,
		PsychProfile: game.PsychProfile{
			BaseConfidence: 0.5, Composure: 0.5, Adaptability: 0.5,
			Aggression: 0.5, Showmanship: 0.5, RiskTolerance: 0.5, KillerInstinct: 0.5,
		},
	}
}

func TestResolveOutOfRangeMisses(t *testing.T) {
	r := NewCombatResolver(NewRand(1))
	atk := testFighter("a", 0)
	def := testFighter("d", 3.0)
	move := testMoves()[0] // jab, range 1.2

	res := r.Resolve(&atk, &def, move, NeutralModifiers(), NeutralModifiers())
	if res.Hit || res.Reversed {
		t.Fatalf("attack from 3.0 with range 1.2 connected: %+v", res)
	}
}

func TestResolveNoWindowNeverReversed(t *testing.T) {
	var sweep game.MoveDef
	for _, m := range testMoves() {
		if m.ID == "leg_sweep" {
			sweep = m
		}
	}
	if sweep.ReversalWindow != 0 {
		t.Fatalf("fixture changed: leg_sweep window = %d", sweep.ReversalWindow)
	}

	atk := testFighter("a", 0)
	def := testFighter("d", 0.8)
	def.PsychProfile.Adaptability = 1
	for seed := int64(0); seed < 50; seed++ {
		r := NewCombatResolver(NewRand(seed))
		for i := 0; i < 40; i++ {
			if res := r.Resolve(&atk, &def, sweep, NeutralModifiers(), NeutralModifiers()); res.Reversed {
				t.Fatalf("seed %d: unreversable move was reversed", seed)
			}
		}
	}
}

func TestResolveStunnedDefenderCannotEvade(t *testing.T) {
	atk := testFighter("a", 0)
	def := testFighter("d", 0.8)
	def.Phase = game.PhaseStunned
	move := testMoves()[0]

	for seed := int64(0); seed < 30; seed++ {
		r := NewCombatResolver(NewRand(seed))
		res := r.Resolve(&atk, &def, move, NeutralModifiers(), NeutralModifiers())
		if !res.Hit {
			t.Fatalf("seed %d: stunned defender evaded: %+v", seed, res)
		}
	}
}

func TestResolveBlockReducesDamageAndStun(t *testing.T) {
	atk := testFighter("a", 0)
	open := testFighter("d", 0.8)
	open.Phase = game.PhaseStunned
	blocking := testFighter("d", 0.8)
	blocking.Phase = game.PhaseBlocking
	move := testMoves()[2] // body_slam, damage 14

	// Same seed: identical rolls, only the defender phase differs.
	openRes := NewCombatResolver(NewRand(7)).Resolve(&atk, &open, move, NeutralModifiers(), NeutralModifiers())
	blockRes := NewCombatResolver(NewRand(7)).Resolve(&atk, &blocking, move, NeutralModifiers(), NeutralModifiers())

	if !openRes.Hit || !blockRes.Hit || !blockRes.Blocked {
		t.Fatalf("unexpected outcomes: open=%+v block=%+v", openRes, blockRes)
	}
	if blockRes.Damage >= openRes.Damage {
		t.Fatalf("blocked damage %v not below clean damage %v", blockRes.Damage, openRes.Damage)
	}
	if blockRes.StunFrames != 0 {
		t.Fatalf("blocked hit still stunned for %d frames", blockRes.StunFrames)
	}
	if openRes.StunFrames < int(stunBase) {
		t.Fatalf("clean hit stun %d below floor %v", openRes.StunFrames, stunBase)
	}
}

func TestResolveDamageAlwaysAtLeastOne(t *testing.T) {
	atk := testFighter("a", 0)
	atk.Stamina = 1 // near-empty tank floors the stamina modifier
	def := testFighter("d", 0.8)
	def.Phase = game.PhaseBlocking
	move := testMoves()[0]

	for seed := int64(0); seed < 30; seed++ {
		r := NewCombatResolver(NewRand(seed))
		res := r.Resolve(&atk, &def, move, NeutralModifiers(), NeutralModifiers())
		if res.Hit && res.Damage < 1 {
			t.Fatalf("seed %d: damage %v below floor", seed, res.Damage)
		}
	}
}

func TestResolveFinisherIgnoresEvasion(t *testing.T) {
	atk := testFighter("a", 0)
	def := testFighter("d", 0.8)
	fin := testFinishers()[0]

	for seed := int64(0); seed < 30; seed++ {
		r := NewCombatResolver(NewRand(seed))
		res := r.ResolveFinisher(&atk, &def, fin, NeutralModifiers())
		if !res.Hit || res.Reversed {
			t.Fatalf("seed %d: finisher did not connect cleanly: %+v", seed, res)
		}
		if res.Damage < fin.Damage {
			t.Fatalf("seed %d: finisher damage %v below base %v", seed, res.Damage, fin.Damage)
		}
	}
}

func TestResolveFinisherForcesKnockdownAtLowHealth(t *testing.T) {
	r := NewCombatResolver(NewRand(3))
	atk := testFighter("a", 0)
	def := testFighter("d", 0.8)
	def.Health = 20

	res := r.ResolveFinisher(&atk, &def, testFinishers()[0], NeutralModifiers())
	if !res.KnockdownForced {
		t.Fatalf("finisher on 20 health did not force a knockdown: %+v", res)
	}
}

func TestResolveClash(t *testing.T) {
	r := NewCombatResolver(NewRand(11))
	jab := testMoves()[0]  // windup 6
	slam := testMoves()[2] // windup 18

	if got := r.ResolveClash(jab, slam); got != 0 {
		t.Fatalf("faster windup lost the clash: got %d", got)
	}
	if got := r.ResolveClash(slam, jab); got != 1 {
		t.Fatalf("faster windup lost the clash: got %d", got)
	}

	// Exact ties split roughly evenly over many draws.
	wins := [2]int{}
	for i := 0; i < 400; i++ {
		wins[r.ResolveClash(jab, jab)]++
	}
	if wins[0] == 0 || wins[1] == 0 {
		t.Fatalf("tie clash never flipped: %v", wins)
	}
}
