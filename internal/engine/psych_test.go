package engine

import (
	"testing"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

func TestInitialPsychStartsCalm(t *testing.T) {
	profile := testArchetypes()["brawler"].PsychProfile
	p := InitialPsych(profile)
	if p.Emotion != game.EmotionCalm {
		t.Fatalf("initial emotion = %s, want %s", p.Emotion, game.EmotionCalm)
	}
	if p.Confidence != profile.BaseConfidence {
		t.Fatalf("initial confidence = %v, want %v", p.Confidence, profile.BaseConfidence)
	}
}

func TestEmotionHysteresisBlocksEarlySwitch(t *testing.T) {
	profile := game.PsychProfile{BaseConfidence: 0.5, Composure: 0.5, Adaptability: 0}
	m := NewEmotionMachine(profile)
	rng := NewRand(1)

	self := testFighter("self", 0)
	self.Health = 10 // panic territory
	opp := testFighter("opp", 1)

	p := InitialPsych(profile)
	p, changed := m.Evaluate(p, &self, &opp, EmotionContext{DTTicks: 10}, rng)
	if changed {
		t.Fatalf("emotion switched after 10 ticks, hysteresis floor is %d", emotionMinDuration)
	}
	if p.Emotion != game.EmotionCalm {
		t.Fatalf("emotion = %s, want %s", p.Emotion, game.EmotionCalm)
	}
}

func TestEmotionPanicsAtLowHealth(t *testing.T) {
	profile := game.PsychProfile{BaseConfidence: 0.3, Composure: 0.1, Adaptability: 0}
	m := NewEmotionMachine(profile)
	rng := NewRand(1)

	self := testFighter("self", 0)
	self.Health = 5
	opp := testFighter("opp", 1)

	p := InitialPsych(profile)
	for i := 0; i < 5; i++ {
		m.Ingest(PsychEvent{Kind: PsychHitTaken, Damage: 10})
	}
	for i := 0; i < 12; i++ {
		p, _ = m.Evaluate(p, &self, &opp, EmotionContext{DTTicks: 10}, rng)
	}
	if p.Emotion != game.EmotionPanicking {
		t.Fatalf("emotion = %s, want %s", p.Emotion, game.EmotionPanicking)
	}
}

func TestEmotionDominatingOnHitStreak(t *testing.T) {
	profile := game.PsychProfile{BaseConfidence: 0.6, Composure: 0.3, Adaptability: 0.5}
	m := NewEmotionMachine(profile)
	rng := NewRand(2)

	self := testFighter("self", 0)
	self.Momentum = 70
	opp := testFighter("opp", 1)
	opp.Health = 40

	p := InitialPsych(profile)
	for i := 0; i < 6; i++ {
		m.Ingest(PsychEvent{Kind: PsychHitLanded, Damage: 8})
	}
	for i := 0; i < 12; i++ {
		p, _ = m.Evaluate(p, &self, &opp, EmotionContext{DTTicks: 10}, rng)
	}
	if p.Emotion != game.EmotionDominating && p.Emotion != game.EmotionClutch {
		t.Fatalf("emotion = %s, want dominating or clutch", p.Emotion)
	}
}

func TestEmotionDesperateNeedsLateMatch(t *testing.T) {
	profile := game.PsychProfile{BaseConfidence: 0.2, Composure: 0.6, Adaptability: 0}
	m := NewEmotionMachine(profile)

	self := testFighter("self", 0)
	self.Health = 10
	opp := testFighter("opp", 1)
	p := game.AgentPsychState{Emotion: game.EmotionCalm, Confidence: 0.2}

	if s := m.score(game.EmotionDesperate, p, &self, &opp, EmotionContext{TimeFrac: 0.3}); s >= 0 {
		t.Fatalf("desperate scored %v in the early match", s)
	}
	if s := m.score(game.EmotionDesperate, p, &self, &opp, EmotionContext{TimeFrac: 0.9}); s < 0 {
		t.Fatalf("desperate gated out in the late match: %v", s)
	}
}

func TestEvaluateUpdatesStreaksAndConfidence(t *testing.T) {
	profile := game.PsychProfile{BaseConfidence: 0.5, Composure: 0.5}
	m := NewEmotionMachine(profile)
	rng := NewRand(3)

	self := testFighter("self", 0)
	opp := testFighter("opp", 1)

	p := InitialPsych(profile)
	m.Ingest(PsychEvent{Kind: PsychHitTaken, Damage: 20})
	m.Ingest(PsychEvent{Kind: PsychHitTaken, Damage: 20})
	p, _ = m.Evaluate(p, &self, &opp, EmotionContext{DTTicks: 1}, rng)

	if p.TakenStreak != 2 || p.HitStreak != 0 {
		t.Fatalf("streaks = hit %d taken %d, want 0/2", p.HitStreak, p.TakenStreak)
	}
	if p.Confidence >= 0.5 {
		t.Fatalf("confidence %v did not drop from 0.5", p.Confidence)
	}

	m.Ingest(PsychEvent{Kind: PsychHitLanded, Damage: 10})
	p, _ = m.Evaluate(p, &self, &opp, EmotionContext{DTTicks: 1}, rng)
	if p.TakenStreak != 0 || p.HitStreak != 1 {
		t.Fatalf("streaks after landing = hit %d taken %d, want 1/0", p.HitStreak, p.TakenStreak)
	}
}

func TestConfidenceStaysClamped(t *testing.T) {
	profile := game.PsychProfile{BaseConfidence: 0.9}
	m := NewEmotionMachine(profile)
	rng := NewRand(4)

	self := testFighter("self", 0)
	opp := testFighter("opp", 1)
	p := InitialPsych(profile)

	for i := 0; i < 50; i++ {
		m.Ingest(PsychEvent{Kind: PsychKnockdownScored})
	}
	p, _ = m.Evaluate(p, &self, &opp, EmotionContext{DTTicks: 1}, rng)
	if p.Confidence > 1 {
		t.Fatalf("confidence %v above 1", p.Confidence)
	}
	if p.CrowdHeat > 1 {
		t.Fatalf("crowd heat %v above 1", p.CrowdHeat)
	}
}
