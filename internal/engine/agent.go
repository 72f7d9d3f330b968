package engine

import (
	"math"
	"sort"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

// AgentActionType enumerates the intents a decision can produce.
type AgentActionType string

const (
	ActMove    AgentActionType = "move"
	ActBlock   AgentActionType = "block"
	ActIdle    AgentActionType = "idle"
	ActTaunt   AgentActionType = "taunt"
	ActAttack  AgentActionType = "attack"
	ActMistake AgentActionType = "mistake"
	ActNone    AgentActionType = ""
)

// AgentAction is the intended action emitted by one decision.
type AgentAction struct {
	Type   AgentActionType
	MoveID string
}

// SpatialContext is the spatial slice of the world a decision sees.
type SpatialContext struct {
	Distance float64
}

// Decision tuning.
const (
	baseBlockChance   = 0.04
	telegraphBlockAdd = 0.25
	baseIdleChance    = 0.02
	tauntChance       = 0.2
	tauntMinMomentum  = 60.0
	signatureGate     = 50.0
	rangeFitPeak      = 0.7
)

// Agent is the per-fighter decision brain. Deterministic given the shared
// stream and the current states: the priority ladder is strict and the move
// pick is a weighted roulette draw, never an argmax, so variety itself is
// reproducible per seed.
type Agent struct {
	rng    *Rand
	moves  *MoveRegistry
	combos *ComboRegistry
}

// NewAgent returns a brain bound to the match stream and content tables.
func NewAgent(rng *Rand, moves *MoveRegistry, combos *ComboRegistry) *Agent {
	return &Agent{rng: rng, moves: moves, combos: combos}
}

// Decide evaluates the priority ladder top to bottom; the first rule that
// fires wins.
func (a *Agent) Decide(self, opp *game.AgentState, sc SpatialContext, mods EffectiveModifiers) AgentAction {
	affordable := a.affordableMoves(self)
	engage := engagementRange(affordable)

	// 1. Close distance when beyond the engagement envelope.
	if engage > 0 && sc.Distance > engage {
		return AgentAction{Type: ActMove}
	}

	// 2. Psychology-driven whiff, only once already in range.
	if a.rng.Chance(mods.MistakeChance * 0.25) {
		return AgentAction{Type: ActMistake}
	}

	// 3. Block, scaling with the opponent's telegraph and own trouble.
	block := baseBlockChance
	if opp.Phase == game.PhaseAttackWindup {
		block += telegraphBlockAdd
	}
	block += 0.1 * (1 - self.HealthFrac())
	block += 0.1 * (1 - self.StaminaFrac())
	block *= mods.Defense
	if self.ComebackActive {
		block *= 0.05
	}
	if a.rng.Chance(clampF(block, 0, 0.6)) {
		return AgentAction{Type: ActBlock}
	}

	// 4. Rest when gassed.
	idle := baseIdleChance * mods.IdleTendency * (1 + 2*(1-self.StaminaFrac()))
	if a.rng.Chance(clampF(idle, 0, 0.5)) {
		return AgentAction{Type: ActIdle}
	}

	// 5. Taunt: opponent down, momentum high, gas in the tank.
	if opp.Phase == game.PhaseKnockedDown &&
		self.Momentum >= tauntMinMomentum &&
		self.StaminaFrac() > 0.5 {
		if a.rng.Chance(tauntChance * (0.4 + self.Personality.Showboat)) {
			return AgentAction{Type: ActTaunt}
		}
	}

	// 6. Weighted move pick among affordable, in-range moves.
	if move, ok := a.pickMove(self, opp, sc, mods, affordable); ok {
		return AgentAction{Type: ActAttack, MoveID: move}
	}

	// 7. Nothing reaches or nothing affordable: keep closing.
	return AgentAction{Type: ActMove}
}

func (a *Agent) affordableMoves(self *game.AgentState) []game.MoveDef {
	all := a.moves.All()
	out := make([]game.MoveDef, 0, len(all))
	for _, m := range all {
		if m.StaminaCost <= self.Stamina {
			out = append(out, m)
		}
	}
	return out
}

// engagementRange returns the 75th-percentile reach of the affordable
// standard moves; beyond it the fighter prefers to close distance.
func engagementRange(moves []game.MoveDef) float64 {
	ranges := make([]float64, 0, len(moves))
	for _, m := range moves {
		if m.Tier != game.TierStandard {
			continue
		}
		ranges = append(ranges, m.Hitbox.Range)
	}
	if len(ranges) == 0 {
		return 0
	}
	sort.Float64s(ranges)
	idx := (len(ranges) * 3) / 4
	if idx >= len(ranges) {
		idx = len(ranges) - 1
	}
	return ranges[idx]
}

func (a *Agent) pickMove(self, opp *game.AgentState, sc SpatialContext, mods EffectiveModifiers, affordable []game.MoveDef) (string, bool) {
	candidates := make([]game.MoveDef, 0, len(affordable))
	weights := make([]float64, 0, len(affordable))
	for _, m := range affordable {
		if m.Hitbox.Range < sc.Distance {
			continue
		}
		w := a.moveWeight(self, opp, sc, mods, m)
		if w <= 0 {
			continue
		}
		candidates = append(candidates, m)
		weights = append(weights, w)
	}
	if len(candidates) == 0 {
		return "", false
	}
	idx := a.rng.WeightedIndex(weights)
	if idx < 0 {
		return "", false
	}
	return candidates[idx].ID, true
}

func (a *Agent) moveWeight(self, opp *game.AgentState, sc SpatialContext, mods EffectiveModifiers, m game.MoveDef) float64 {
	w := 1.0

	// Personality category bias.
	w *= 0.5 + 1.5*categoryPreference(self.Personality, m.Category)

	// Momentum gates for the special tier, amplified by psychology.
	if m.Tier == game.TierSignature {
		if self.Momentum < signatureGate {
			return 0
		}
		w *= mods.SpecialMove
	}

	// Stamina conservation below 40%.
	if self.StaminaFrac() < 0.4 && self.Stamina > 0 {
		w *= 1 - clampF(m.StaminaCost/self.Stamina, 0, 0.8)
	}

	// Pressure a hurt or helpless opponent.
	if opp.Phase == game.PhaseStunned || opp.Phase == game.PhaseKnockedDown {
		w *= 1.4
	}
	w *= 1 + clampF(opp.RegionDamage.Of(m.TargetRegion)*0.005, 0, 0.3)

	// Combo openers get a nudge.
	if a.combos.IsOpener(m.ID) {
		w *= 1.25
	}

	// Range fit peaks near 70% of the move's reach.
	if m.Hitbox.Range > 0 {
		fit := 1 - math.Abs(sc.Distance-rangeFitPeak*m.Hitbox.Range)/m.Hitbox.Range
		w *= 0.6 + 0.8*clampF(fit, 0, 1)
	}

	if self.ComebackActive {
		w *= 1.3
	}
	w *= mods.Aggression
	return w
}

func categoryPreference(p game.Personality, c game.MoveCategory) float64 {
	switch c {
	case game.CategoryStrike:
		return p.StrikePreference
	case game.CategoryGrapple:
		return p.GrapplePreference
	case game.CategoryAerial:
		return p.AerialPreference
	case game.CategorySubmission:
		return p.SubmissionPreference
	}
	return 0.5
}
