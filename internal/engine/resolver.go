package engine

import (
	"fmt"
	"math"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

// Resolution constants. pacingScale keeps raw move damage from ending
// matches too quickly at 60 Hz decision density.
const (
	baseDodgeChance    = 0.05
	baseReversalChance = 0.05
	reversalSkillScale = 0.18
	reversalFloor      = 0.03
	reversalCeiling    = 0.40
	reversalPayback    = 0.40

	baseCritChance = 0.08
	critMultiplier = 1.5
	pacingScale    = 0.75
	comebackDamage = 1.3
	blockedDamage  = 0.3

	stunBase     = 18.0
	stunPerPoint = 2.4
	stunCritAdd  = 24.0
	stunMax      = 150.0

	finisherMultiplier = 1.5
	finisherClutch     = 1.3
	finisherVariance   = 0.05
)

// CombatResult is the outcome of one attacker/defender interaction.
type CombatResult struct {
	Hit            bool
	Blocked        bool
	Damage         float64
	Reversed       bool
	ReversalDamage float64
	Critical       bool
	MomentumGain   float64
	StunFrames     int
	// KnockdownForced is only reported by the finisher path, when the
	// post-damage health drops below the knockdown threshold.
	KnockdownForced bool
	Description     string
}

// CombatResolver turns an attack activation into a concrete outcome. It
// draws from the shared match stream, so call order is part of the
// determinism contract.
type CombatResolver struct {
	rng *Rand
}

// NewCombatResolver returns a resolver bound to the match stream.
func NewCombatResolver(rng *Rand) *CombatResolver {
	return &CombatResolver{rng: rng}
}

func canEvade(phase game.FighterPhase) bool {
	return phase == game.PhaseIdle || phase == game.PhaseMoving
}

func categoryCritBonus(c game.MoveCategory) float64 {
	switch c {
	case game.CategoryAerial:
		return 0.04
	case game.CategoryStrike:
		return 0.02
	case game.CategoryGrapple:
		return 0.01
	}
	return 0
}

// Resolve resolves one standard attack. The order of rolls (range, dodge,
// reversal, crit, variance) is fixed.
func (r *CombatResolver) Resolve(attacker, defender *game.AgentState, move game.MoveDef, attackerMods, defenderMods EffectiveModifiers) CombatResult {
	if Distance(attacker, defender) > move.Hitbox.Range {
		return CombatResult{Description: fmt.Sprintf("%s whiffs %s (out of range)", attacker.Name, move.Name)}
	}

	// Dodge: only neutral fighters may slip a move.
	if canEvade(defender.Phase) {
		dodge := baseDodgeChance +
			0.06*defender.StaminaFrac() +
			0.10*(defenderMods.Defense-1)
		if r.rng.Chance(clampF(dodge, 0, 0.45)) {
			return CombatResult{Description: fmt.Sprintf("%s dodges %s", defender.Name, move.Name)}
		}
	}

	// Reversal: neutral defenders only, and never against moves with no
	// reversal window.
	if canEvade(defender.Phase) && move.ReversalWindow > 0 {
		windowBonus := 0.008 * math.Min(float64(move.ReversalWindow), 12)
		p := baseReversalChance +
			defender.PsychProfile.Adaptability*reversalSkillScale +
			windowBonus -
			0.08*(1-defender.StaminaFrac())
		p *= defenderMods.Reversal
		p = clampF(p, reversalFloor, reversalCeiling)
		if r.rng.Chance(p) {
			payback := math.Max(1, math.Round(move.Damage*reversalPayback))
			stun := stunFramesFor(payback, false, attackerMods.Speed)
			return CombatResult{
				Reversed:       true,
				ReversalDamage: payback,
				StunFrames:     stun,
				MomentumGain:   move.MomentumGain * 0.5,
				Description:    fmt.Sprintf("%s reverses %s", defender.Name, move.Name),
			}
		}
	}

	// Confirmed hit.
	critChance := (baseCritChance + categoryCritBonus(move.Category)) * attackerMods.Crit
	critical := r.rng.Chance(clampF(critChance, 0, 0.5))

	staminaMod := 0.5 + 0.6*attacker.StaminaFrac() // 0.5 - 1.1
	regionVuln := 1 + clampF(defender.RegionDamage.Of(move.TargetRegion)*0.01, 0, 0.5)
	variance := r.rng.Between(0.85, 1.15)

	dmg := move.Damage * staminaMod * regionVuln * variance
	if critical {
		dmg *= critMultiplier
	}
	if attacker.ComebackActive {
		dmg *= comebackDamage
	}
	dmg *= attackerMods.Damage
	dmg *= pacingScale

	blocked := defender.Phase == game.PhaseBlocking
	if blocked {
		dmg *= blockedDamage
	}
	dmg = math.Max(1, math.Round(dmg))

	stun := 0
	if !blocked {
		stun = stunFramesFor(dmg, critical, defenderMods.Speed)
	}

	desc := fmt.Sprintf("%s lands %s for %.0f", attacker.Name, move.Name, dmg)
	if critical {
		desc += " (critical)"
	}
	if blocked {
		desc = fmt.Sprintf("%s blocks %s (%.0f chip)", defender.Name, move.Name, dmg)
	}
	return CombatResult{
		Hit:          true,
		Blocked:      blocked,
		Damage:       dmg,
		Critical:     critical,
		MomentumGain: move.MomentumGain + dmg*0.25,
		StunFrames:   stun,
		Description:  desc,
	}
}

// ResolveFinisher resolves a finisher impact: no dodge, no reversal, a
// tighter variance and a clutch bonus. KnockdownForced reports whether the
// defender should go straight down.
func (r *CombatResolver) ResolveFinisher(attacker, defender *game.AgentState, fin game.FinisherDef, attackerMods EffectiveModifiers) CombatResult {
	variance := r.rng.Between(1-finisherVariance, 1+finisherVariance)
	dmg := fin.Damage * finisherMultiplier * variance
	if attacker.Psych.Emotion == game.EmotionClutch {
		dmg *= finisherClutch
	}
	if attacker.ComebackActive {
		dmg *= comebackDamage
	}
	dmg *= attackerMods.Damage
	dmg = math.Max(1, math.Round(dmg))

	after := defender.Health - dmg
	forced := after <= 0 || after < defender.MaxHealth*0.10

	return CombatResult{
		Hit:             true,
		Damage:          dmg,
		MomentumGain:    fin.MomentumThreshold * 0.1,
		StunFrames:      int(stunMax),
		KnockdownForced: forced,
		Description:     fmt.Sprintf("%s hits %s for %.0f", attacker.Name, fin.Name, dmg),
	}
}

// ResolveClash breaks a same-tick attack tie: the faster windup wins, a
// true tie is a coin flip. Returns the winning attacker index.
func (r *CombatResolver) ResolveClash(moveA, moveB game.MoveDef) int {
	if moveA.WindupFrames < moveB.WindupFrames {
		return 0
	}
	if moveB.WindupFrames < moveA.WindupFrames {
		return 1
	}
	if r.rng.Chance(0.5) {
		return 0
	}
	return 1
}

func stunFramesFor(damage float64, critical bool, defenderSpeed float64) int {
	frames := stunBase + damage*stunPerPoint
	if critical {
		frames += stunCritAdd
	}
	if defenderSpeed > 0 {
		frames /= defenderSpeed
	}
	return int(clampF(frames, stunBase, stunMax))
}
