package engine

import "github.com/MdAyman7/wweagentsfun-sub000/internal/game"

// PsychEventKind tags combat facts fed to the emotion machine.
type PsychEventKind string

const (
	PsychHitLanded         PsychEventKind = "hit_landed"
	PsychHitTaken          PsychEventKind = "hit_taken"
	PsychReversalWon       PsychEventKind = "reversal_won"
	PsychReversalLost      PsychEventKind = "reversal_lost"
	PsychKnockdownScored   PsychEventKind = "knockdown_scored"
	PsychKnockdownSuffered PsychEventKind = "knockdown_suffered"
	PsychNearKnockdown     PsychEventKind = "near_knockdown"
	PsychComboLanded       PsychEventKind = "combo_landed"
	PsychComboReceived     PsychEventKind = "combo_received"
	PsychFinisherEscaped   PsychEventKind = "finisher_escaped"
	PsychTaunted           PsychEventKind = "taunted"
)

// PsychEvent is one combat fact ingested between evaluations.
type PsychEvent struct {
	Kind     PsychEventKind
	Damage   float64
	ComboLen int
}

// Confidence and crowd dynamics constants. Confidence mean-reverts to the
// wrestler's base; crowd heat decays toward neutral.
const (
	confidenceReversion = 0.015
	crowdHeatDecay      = 0.994
	trendSmoothing      = 0.9

	emotionMinDuration = 60
	emotionInertia     = 0.15
	emotionNoise       = 0.05
)

// emotionOrder fixes scoring iteration so ties always break toward the
// first-declared state.
var emotionOrder = []game.Emotion{
	game.EmotionCalm,
	game.EmotionDominating,
	game.EmotionFrustrated,
	game.EmotionPanicking,
	game.EmotionDesperate,
	game.EmotionOverconfident,
	game.EmotionClutch,
}

// EmotionContext is the slice of match context the machine needs per
// evaluation.
type EmotionContext struct {
	TimeFrac float64
	DTTicks  int
}

// EmotionMachine converts static traits plus live match context into the
// seven-state emotional FSM. It is the only component that produces new
// AgentPsychState values; the loop applies them through the reducer.
type EmotionMachine struct {
	profile game.PsychProfile
	pending []PsychEvent
}

// NewEmotionMachine returns a machine for one wrestler's profile.
func NewEmotionMachine(profile game.PsychProfile) *EmotionMachine {
	return &EmotionMachine{profile: profile}
}

// InitialPsych is the emotional state every wrestler starts a match in.
func InitialPsych(profile game.PsychProfile) game.AgentPsychState {
	return game.AgentPsychState{
		Emotion:    game.EmotionCalm,
		Confidence: profile.BaseConfidence,
	}
}

// Ingest queues a combat fact for the next evaluation.
func (m *EmotionMachine) Ingest(ev PsychEvent) {
	m.pending = append(m.pending, ev)
}

// minDuration is the hysteresis floor in ticks before a switch is even
// considered, shortened for adaptable wrestlers.
func (m *EmotionMachine) minDuration() int {
	d := emotionMinDuration - int(25*m.profile.Adaptability)
	if d < 10 {
		d = 10
	}
	return d
}

// Evaluate applies queued events and the continuous running formulas, then
// (once hysteresis allows) scores every candidate emotion and switches to
// the winner. Returns the updated psych state and whether the emotion
// changed.
func (m *EmotionMachine) Evaluate(psych game.AgentPsychState, self, opp *game.AgentState, ctx EmotionContext, rng *Rand) (game.AgentPsychState, bool) {
	p := psych

	pending := m.pending
	m.pending = nil
	for _, ev := range pending {
		switch ev.Kind {
		case PsychHitLanded:
			p.HitStreak++
			p.TakenStreak = 0
			p.Confidence += 0.02 + ev.Damage*0.001
			p.CrowdHeat += 0.03
		case PsychHitTaken:
			p.TakenStreak++
			p.HitStreak = 0
			p.Confidence -= 0.02 + ev.Damage*0.001
		case PsychReversalWon:
			p.Confidence += 0.05
			p.CrowdHeat += 0.08
		case PsychReversalLost:
			p.Confidence -= 0.04
		case PsychKnockdownScored:
			p.Confidence += 0.08
			p.CrowdHeat += 0.12
		case PsychKnockdownSuffered:
			p.Confidence -= 0.1
			p.CrowdHeat -= 0.05
		case PsychNearKnockdown:
			p.NearKnockdowns++
			p.CrowdHeat += 0.1
		case PsychComboLanded:
			if ev.ComboLen > p.BestComboLanded {
				p.BestComboLanded = ev.ComboLen
			}
			p.Confidence += 0.015 * float64(ev.ComboLen)
			p.CrowdHeat += 0.04
		case PsychComboReceived:
			if ev.ComboLen > p.WorstComboReceived {
				p.WorstComboReceived = ev.ComboLen
			}
			p.Confidence -= 0.01 * float64(ev.ComboLen)
		case PsychFinisherEscaped:
			p.Confidence += 0.1
			p.CrowdHeat += 0.15
		case PsychTaunted:
			p.CrowdHeat += 0.05 * (0.5 + m.profile.Showmanship)
		}
	}

	dt := ctx.DTTicks
	if dt < 1 {
		dt = 1
	}
	for i := 0; i < dt; i++ {
		p.Confidence += (m.profile.BaseConfidence - p.Confidence) * confidenceReversion
		p.CrowdHeat *= crowdHeatDecay
	}
	streakBalance := float64(p.HitStreak-p.TakenStreak) / 5.0
	p.MomentumTrend = trendSmoothing*p.MomentumTrend + (1-trendSmoothing)*clampF(streakBalance, -1, 1)
	p.Confidence = clampF(p.Confidence, 0, 1)
	p.CrowdHeat = clampF(p.CrowdHeat, -1, 1)
	p.EmotionDuration += dt

	if p.EmotionDuration < m.minDuration() {
		return p, false
	}

	best := p.Emotion
	bestScore := -1.0
	for _, candidate := range emotionOrder {
		score := m.score(candidate, p, self, opp, ctx)
		if score < 0 {
			continue
		}
		score += rng.Noise(emotionNoise)
		if candidate == p.Emotion {
			score += emotionInertia
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if best == p.Emotion {
		return p, false
	}
	p.Emotion = best
	p.EmotionDuration = 0
	return p, true
}

// score returns the candidate's fitness, or a negative value when its
// entry requirements are not met.
func (m *EmotionMachine) score(e game.Emotion, p game.AgentPsychState, self, opp *game.AgentState, ctx EmotionContext) float64 {
	selfHealth := self.HealthFrac()
	oppHealth := opp.HealthFrac()
	advantage := selfHealth - oppHealth
	momentumFrac := self.Momentum / 100.0

	switch e {
	case game.EmotionCalm:
		return 0.3 + 0.4*m.profile.Composure - 0.3*absF(advantage)
	case game.EmotionDominating:
		if advantage < 0.15 && p.HitStreak < 3 {
			return -1
		}
		return advantage*1.2 + 0.08*float64(p.HitStreak) + 0.3*momentumFrac
	case game.EmotionFrustrated:
		if p.TakenStreak == 0 {
			return -1
		}
		deficit := clampF(-advantage, 0, 0.4)
		return deficit + 0.07*float64(p.TakenStreak) + 0.3*(1-m.profile.Adaptability)
	case game.EmotionPanicking:
		if selfHealth >= 0.35 {
			return -1
		}
		return (0.35-selfHealth)*2 + 0.1*float64(p.TakenStreak) + 0.3*(1-m.profile.Composure) - 0.3*p.Confidence
	case game.EmotionDesperate:
		if selfHealth >= 0.25 || ctx.TimeFrac <= 0.5 {
			return -1
		}
		return (0.25-selfHealth)*2.5 + 0.5*ctx.TimeFrac + 0.2*(1-p.Confidence)
	case game.EmotionOverconfident:
		if advantage < 0.3 || p.Confidence < 0.7 {
			return -1
		}
		return advantage + 0.4*(p.Confidence-0.7)/0.3 + 0.3*(1-m.profile.Composure)
	case game.EmotionClutch:
		if p.Confidence <= 0.5 || self.Momentum <= 40 {
			return -1
		}
		crowd := p.CrowdHeat
		if crowd < 0 {
			crowd = 0
		}
		return (1-selfHealth)*0.5 + 0.4*p.Confidence + 0.4*momentumFrac +
			0.3*crowd + 0.4*ctx.TimeFrac + 0.2*m.profile.KillerInstinct
	}
	return -1
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
