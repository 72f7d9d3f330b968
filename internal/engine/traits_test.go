package engine

import (
	"testing"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

func modifierBoundsOK(m EffectiveModifiers) bool {
	return m.Aggression >= 0.5 && m.Aggression <= 1.8 &&
		m.Defense >= 0.5 && m.Defense <= 1.6 &&
		m.SpecialMove >= 0.5 && m.SpecialMove <= 2.0 &&
		m.MistakeChance >= 0 && m.MistakeChance <= 0.3 &&
		m.Damage >= 0.7 && m.Damage <= 1.6 &&
		m.Reversal >= 0.5 && m.Reversal <= 1.8 &&
		m.Crit >= 0.5 && m.Crit <= 2.0 &&
		m.Speed >= 0.8 && m.Speed <= 1.3 &&
		m.IdleTendency >= 0 && m.IdleTendency <= 2.0 &&
		m.FinisherBoost >= 0 && m.FinisherBoost <= 1.0
}

func TestModifiersClampedForExtremeTraits(t *testing.T) {
	emotions := []game.Emotion{
		game.EmotionCalm, game.EmotionDominating, game.EmotionFrustrated,
		game.EmotionPanicking, game.EmotionDesperate, game.EmotionOverconfident,
		game.EmotionClutch,
	}
	profiles := []game.PsychProfile{
		{}, // all zero
		{BaseConfidence: 1, Composure: 1, Adaptability: 1, Aggression: 1, Showmanship: 1, RiskTolerance: 1, KillerInstinct: 1},
		testArchetypes()["brawler"].PsychProfile,
	}
	contexts := []ContextFactors{
		{},
		{SelfHealthFrac: 1, OppHealthFrac: 1, StaminaFrac: 1},
		{MomentumFrac: 1, TimeFrac: 1, ComebackActive: true, OppVulnerable: true},
	}
	for _, prof := range profiles {
		for _, em := range emotions {
			for _, ctx := range contexts {
				psych := game.AgentPsychState{Emotion: em, Confidence: 1}
				m := ComputeEffectiveModifiers(prof, psych, ctx)
				if !modifierBoundsOK(m) {
					t.Fatalf("out-of-bounds modifiers for emotion %s: %+v", em, m)
				}
			}
		}
	}
}

func TestComebackZeroesIdleTendency(t *testing.T) {
	prof := testArchetypes()["highflyer"].PsychProfile
	psych := game.AgentPsychState{Emotion: game.EmotionCalm, Confidence: 0.5}

	normal := ComputeEffectiveModifiers(prof, psych, ContextFactors{StaminaFrac: 0.5})
	cb := ComputeEffectiveModifiers(prof, psych, ContextFactors{StaminaFrac: 0.5, ComebackActive: true})

	if normal.IdleTendency <= 0 {
		t.Fatalf("normal idle tendency = %v, want > 0", normal.IdleTendency)
	}
	if cb.IdleTendency != 0 {
		t.Fatalf("comeback idle tendency = %v, want 0", cb.IdleTendency)
	}
	if cb.FinisherBoost <= normal.FinisherBoost {
		t.Fatalf("comeback finisher boost %v not above normal %v", cb.FinisherBoost, normal.FinisherBoost)
	}
}

func TestUnknownEmotionFallsBackToCalm(t *testing.T) {
	prof := testArchetypes()["brawler"].PsychProfile
	calm := ComputeEffectiveModifiers(prof, game.AgentPsychState{Emotion: game.EmotionCalm, Confidence: 0.5}, ContextFactors{StaminaFrac: 1})
	unknown := ComputeEffectiveModifiers(prof, game.AgentPsychState{Emotion: "bogus", Confidence: 0.5}, ContextFactors{StaminaFrac: 1})
	if calm != unknown {
		t.Fatalf("unknown emotion diverged from calm: %+v vs %+v", unknown, calm)
	}
}
