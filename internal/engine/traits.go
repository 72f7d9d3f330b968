package engine

import "github.com/MdAyman7/wweagentsfun-sub000/internal/game"

// EffectiveModifiers is the derived per-tick, per-agent bundle consumed by
// the decision brain and the combat resolver. It is always recomputed from
// trait x emotion x context, never persisted. Every field is independently
// clamped so no trait combination produces unbounded gameplay effects.
type EffectiveModifiers struct {
	Aggression    float64 // [0.5, 1.8]
	Defense       float64 // [0.5, 1.6]
	SpecialMove   float64 // [0.5, 2.0]
	MistakeChance float64 // [0.0, 0.3]
	Damage        float64 // [0.7, 1.6]
	Reversal      float64 // [0.5, 1.8]
	Crit          float64 // [0.5, 2.0]
	Speed         float64 // [0.8, 1.3]
	IdleTendency  float64 // [0.0, 2.0]
	FinisherBoost float64 // [0.0, 1.0]
}

// NeutralModifiers is the bundle used when psychology is disabled or a
// fighter has no profile.
func NeutralModifiers() EffectiveModifiers {
	return EffectiveModifiers{
		Aggression:  1, Defense: 1, SpecialMove: 1,
		Damage: 1, Reversal: 1, Crit: 1, Speed: 1, IdleTendency: 1,
	}
}

// emotionMods is the per-emotion multiplier bundle. MistakeChance and
// FinisherBoost are additive bases, the rest multiply the trait-derived
// factor.
type emotionModsT struct {
	aggression, defense, special, damage, reversal, crit, speed, idle float64
	mistake, finisher                                                 float64
}

var emotionMods = map[game.Emotion]emotionModsT{
	game.EmotionCalm:          {aggression: 1.0, defense: 1.0, special: 1.0, damage: 1.0, reversal: 1.0, crit: 1.0, speed: 1.0, idle: 1.0, mistake: 0.02, finisher: 0.05},
	game.EmotionDominating:    {aggression: 1.3, defense: 1.0, special: 1.3, damage: 1.15, reversal: 1.0, crit: 1.2, speed: 1.05, idle: 0.7, mistake: 0.02, finisher: 0.15},
	game.EmotionFrustrated:    {aggression: 1.25, defense: 0.85, special: 0.9, damage: 1.05, reversal: 0.85, crit: 1.0, speed: 1.0, idle: 0.8, mistake: 0.12, finisher: 0.05},
	game.EmotionPanicking:     {aggression: 0.8, defense: 0.75, special: 0.7, damage: 0.85, reversal: 0.7, crit: 0.9, speed: 1.1, idle: 1.3, mistake: 0.2, finisher: 0.0},
	game.EmotionDesperate:     {aggression: 1.4, defense: 0.7, special: 1.2, damage: 1.2, reversal: 1.1, crit: 1.3, speed: 1.1, idle: 0.5, mistake: 0.15, finisher: 0.25},
	game.EmotionOverconfident: {aggression: 1.2, defense: 0.8, special: 1.4, damage: 1.1, reversal: 0.9, crit: 1.15, speed: 1.0, idle: 1.1, mistake: 0.1, finisher: 0.1},
	game.EmotionClutch:        {aggression: 1.15, defense: 1.15, special: 1.5, damage: 1.25, reversal: 1.3, crit: 1.4, speed: 1.15, idle: 0.4, mistake: 0.01, finisher: 0.35},
}

// ContextFactors carries the live match context feeding the formulas.
type ContextFactors struct {
	SelfHealthFrac float64
	OppHealthFrac  float64
	StaminaFrac    float64
	MomentumFrac   float64
	TimeFrac       float64
	ComebackActive bool
	OppVulnerable  bool
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ComputeEffectiveModifiers is the single place that turns traits, the
// current emotion and the live context into the gameplay modifier bundle.
func ComputeEffectiveModifiers(profile game.PsychProfile, psych game.AgentPsychState, ctx ContextFactors) EffectiveModifiers {
	em, ok := emotionMods[psych.Emotion]
	if !ok {
		em = emotionMods[game.EmotionCalm]
	}
	conf := clampF(psych.Confidence, 0, 1)

	var m EffectiveModifiers

	aggr := (0.6 + 0.8*profile.Aggression) * em.aggression
	if ctx.OppVulnerable {
		aggr *= 1.1
	}
	m.Aggression = clampF(aggr, 0.5, 1.8)

	def := (0.7 + 0.6*profile.Composure) * em.defense
	def *= 1 + 0.2*(1-ctx.SelfHealthFrac)*profile.Composure
	m.Defense = clampF(def, 0.5, 1.6)

	special := (0.6 + 0.8*profile.RiskTolerance) * em.special
	special *= 1 + 0.3*ctx.MomentumFrac
	m.SpecialMove = clampF(special, 0.5, 2.0)

	mistake := 0.05*(1-profile.Composure) + em.mistake*(1-0.5*profile.Composure)
	mistake *= 1 + 0.3*ctx.TimeFrac
	mistake *= 1.2 - 0.4*conf
	m.MistakeChance = clampF(mistake, 0, 0.3)

	dmg := (0.85 + 0.3*profile.Aggression) * em.damage
	dmg *= 0.9 + 0.2*conf
	m.Damage = clampF(dmg, 0.7, 1.6)

	rev := (0.6 + 0.8*profile.Adaptability) * em.reversal
	m.Reversal = clampF(rev, 0.5, 1.8)

	crit := (0.7 + 0.6*profile.KillerInstinct) * em.crit
	m.Crit = clampF(crit, 0.5, 2.0)

	speed := (0.92 + 0.12*profile.Adaptability) * em.speed
	m.Speed = clampF(speed, 0.8, 1.3)

	idle := (1.2 - 0.8*profile.Aggression) * em.idle
	idle *= 1 + (1 - ctx.StaminaFrac)
	if ctx.ComebackActive {
		idle = 0
	}
	m.IdleTendency = clampF(idle, 0, 2.0)

	fin := profile.KillerInstinct*0.4 + em.finisher + 0.2*ctx.MomentumFrac
	if ctx.ComebackActive {
		fin += 0.15
	}
	m.FinisherBoost = clampF(fin, 0, 1.0)

	return m
}
