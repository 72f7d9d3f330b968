package engine

import "github.com/MdAyman7/wweagentsfun-sub000/internal/game"

// Comeback trigger/expiry tuning. The trigger is a rare per-tick roll while
// qualifying, so a badly-behind fighter usually, but not always, gets one.
const (
	ComebackDurationTicks = 300
	ComebackCooldownTicks = 1800

	comebackBaseChance     = 0.002
	comebackHealthGate     = 0.30
	comebackDeficitGate    = 0.25
	comebackRecoveryHealth = 0.60
)

// ComebackEndReason is the fixed vocabulary for comeback_end log entries.
type ComebackEndReason string

const (
	ComebackEndExpired   ComebackEndReason = "expired"
	ComebackEndKnockdown ComebackEndReason = "knocked_down"
	ComebackEndRecovered ComebackEndReason = "recovered"
)

// ComebackSystem owns the rare-event trigger and expiry rules for the
// temporary underdog buff. Only one comeback is ever active globally.
type ComebackSystem struct {
	rng *Rand
}

// NewComebackSystem returns the system bound to the match stream.
func NewComebackSystem(rng *Rand) *ComebackSystem {
	return &ComebackSystem{rng: rng}
}

// CheckTrigger rolls the per-tick comeback chance for agent idx. The caller
// applies the state change through the reducer on success.
func (c *ComebackSystem) CheckTrigger(s *game.MatchState, idx int) bool {
	if s.ComebackCooldown > 0 {
		return false
	}
	if s.Agents[0].ComebackActive || s.Agents[1].ComebackActive {
		return false
	}
	self := &s.Agents[idx]
	opp := &s.Agents[game.Opponent(idx)]
	selfFrac := self.HealthFrac()
	if selfFrac > comebackHealthGate {
		return false
	}
	if opp.HealthFrac()-selfFrac < comebackDeficitGate {
		return false
	}

	severity := (comebackHealthGate - selfFrac) / comebackHealthGate
	timePressure := 0.0
	if s.TimeLimit > 0 {
		timePressure = clampF(s.Elapsed/s.TimeLimit, 0, 1)
	}
	crowd := self.Psych.CrowdHeat
	if crowd < 0 {
		crowd = 0
	}

	p := comebackBaseChance
	p *= 1 + 2*severity + timePressure + crowd + 0.1*float64(self.Psych.NearKnockdowns)
	switch self.Psych.Emotion {
	case game.EmotionClutch, game.EmotionDesperate:
		p *= 1.5
	case game.EmotionFrustrated:
		p *= 0.7
	}
	if self.Psych.Confidence > 0.7 {
		p *= 0.5
	}
	return c.rng.Chance(p)
}

// ShouldEnd reports whether an active comeback must terminate and why.
func (c *ComebackSystem) ShouldEnd(agent *game.AgentState) (bool, ComebackEndReason) {
	if !agent.ComebackActive {
		return false, ""
	}
	if agent.Phase == game.PhaseKnockedDown {
		return true, ComebackEndKnockdown
	}
	if agent.HealthFrac() > comebackRecoveryHealth {
		return true, ComebackEndRecovered
	}
	if agent.ComebackTicksLeft <= 0 {
		return true, ComebackEndExpired
	}
	return false, ""
}
