package engine

import (
	"testing"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

func reducerState() *game.MatchState {
	s := &game.MatchState{TimeLimit: 120}
	s.Agents[0] = testFighter("a", 0)
	s.Agents[1] = testFighter("b", 1)
	return s
}

func TestReducerDamageClampsAtZero(t *testing.T) {
	var r Reducer
	s := reducerState()

	r.Apply(s, ApplyDamage{Target: 1, Attacker: 0, Amount: 250, Region: game.RegionHead})
	if s.Agents[1].Health != 0 {
		t.Fatalf("health = %v, want 0", s.Agents[1].Health)
	}
	if s.Agents[1].RegionDamage.Head != 250 {
		t.Fatalf("head region damage = %v, want 250", s.Agents[1].RegionDamage.Head)
	}
	if s.Agents[0].Stats.DamageDealt != 250 || s.Agents[1].Stats.DamageTaken != 250 {
		t.Fatalf("damage counters: dealt=%v taken=%v", s.Agents[0].Stats.DamageDealt, s.Agents[1].Stats.DamageTaken)
	}
}

func TestReducerMomentumClamps(t *testing.T) {
	var r Reducer
	s := reducerState()

	r.Apply(s, AddMomentum{Agent: 0, Amount: 250})
	if s.Agents[0].Momentum != 100 {
		t.Fatalf("momentum = %v, want 100", s.Agents[0].Momentum)
	}
	r.Apply(s, AddMomentum{Agent: 0, Amount: -500})
	if s.Agents[0].Momentum != 0 {
		t.Fatalf("momentum = %v, want 0", s.Agents[0].Momentum)
	}
}

func TestReducerStaminaClamps(t *testing.T) {
	var r Reducer
	s := reducerState()

	r.Apply(s, SpendStamina{Agent: 0, Amount: 500})
	if s.Agents[0].Stamina != 0 {
		t.Fatalf("stamina = %v, want 0", s.Agents[0].Stamina)
	}
	r.Apply(s, RegenStamina{Agent: 0, Amount: 500})
	if s.Agents[0].Stamina != s.Agents[0].MaxStamina {
		t.Fatalf("stamina = %v, want max %v", s.Agents[0].Stamina, s.Agents[0].MaxStamina)
	}
}

func TestReducerComebackLifecycle(t *testing.T) {
	var r Reducer
	s := reducerState()

	r.Apply(s, StartComeback{Agent: 0})
	if !s.Agents[0].ComebackActive || s.Agents[0].ComebackTicksLeft != ComebackDurationTicks {
		t.Fatalf("start: active=%v ticks=%d", s.Agents[0].ComebackActive, s.Agents[0].ComebackTicksLeft)
	}

	r.Apply(s, AdvanceTick{DTSeconds: 1.0 / 60})
	if s.Agents[0].ComebackTicksLeft != ComebackDurationTicks-1 {
		t.Fatalf("tick did not decrement buff: %d", s.Agents[0].ComebackTicksLeft)
	}

	r.Apply(s, EndComeback{Agent: 0, CooldownTicks: ComebackCooldownTicks})
	if s.Agents[0].ComebackActive || s.ComebackCooldown != ComebackCooldownTicks {
		t.Fatalf("end: active=%v cooldown=%d", s.Agents[0].ComebackActive, s.ComebackCooldown)
	}

	r.Apply(s, AdvanceTick{DTSeconds: 1.0 / 60})
	if s.ComebackCooldown != ComebackCooldownTicks-1 {
		t.Fatalf("tick did not decrement cooldown: %d", s.ComebackCooldown)
	}
}

func TestReducerLogStampsTickAndElapsed(t *testing.T) {
	var r Reducer
	s := reducerState()
	for i := 0; i < 5; i++ {
		r.Apply(s, AdvanceTick{DTSeconds: 1.0 / 60})
	}
	r.Apply(s, AppendLog{Type: game.LogMoveHit, Detail: "x"})

	if len(s.Log) != 1 {
		t.Fatalf("log length = %d, want 1", len(s.Log))
	}
	if s.Log[0].Tick != 5 {
		t.Fatalf("log tick = %d, want 5", s.Log[0].Tick)
	}
	if s.Log[0].Elapsed <= 0 {
		t.Fatalf("log elapsed = %v, want > 0", s.Log[0].Elapsed)
	}
}

func TestReducerIgnoresBadIndexes(t *testing.T) {
	var r Reducer
	s := reducerState()
	r.Apply(s, ApplyDamage{Target: 5, Attacker: 0, Amount: 10, Region: game.RegionBody})
	r.Apply(s, AddMomentum{Agent: -1, Amount: 10})
	if s.Agents[0].Momentum != 0 || s.Agents[1].Health != 100 {
		t.Fatal("out-of-range index mutated state")
	}
}

func TestReducerFinishStopsMatch(t *testing.T) {
	var r Reducer
	s := reducerState()
	r.Apply(s, StartMatch{})
	if !s.Running {
		t.Fatal("start did not flip running")
	}
	r.Apply(s, FinishMatch{Result: game.MatchResult{WinnerID: "a", LoserID: "b", Method: game.MethodKnockout}})
	if s.Running {
		t.Fatal("finish left the match running")
	}
	if s.Result == nil || s.Result.WinnerID != "a" {
		t.Fatalf("result = %+v", s.Result)
	}
}
