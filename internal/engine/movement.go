package engine

import (
	"math"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

// Ring geometry and kinematics, in ring units per frame.
const (
	ringHalfWidth  = 5.0
	minSeparation  = 0.45
	approachSpeed  = 0.055
	knockbackDecay = 0.82
	knockbackFloor = 0.004
)

// MovementController integrates one fighter's position on the simulated
// axis: approach while in the moving phase, exponential knockback decay,
// separation against the opponent and boundary clamping. It never writes
// MatchState; the loop applies the returned position via the reducer.
type MovementController struct {
	knockback float64
}

// NewMovementController returns a controller at rest.
func NewMovementController() *MovementController {
	return &MovementController{}
}

// ApplyKnockback adds impulse away from the attacker. Sign is the push
// direction on the axis.
func (m *MovementController) ApplyKnockback(sign, magnitude float64) {
	m.knockback += sign * magnitude
}

// Step returns the fighter's next position given its current phase and the
// opponent's position. speedMod scales approach speed (psychology).
func (m *MovementController) Step(self, opp *game.AgentState, dtFrames int, speedMod float64) float64 {
	x := self.PositionX
	for i := 0; i < dtFrames; i++ {
		if self.Phase == game.PhaseMoving {
			dir := 1.0
			if opp.PositionX < x {
				dir = -1.0
			}
			x += dir * approachSpeed * speedMod
		}
		x += m.knockback
		m.knockback *= knockbackDecay
		if math.Abs(m.knockback) < knockbackFloor {
			m.knockback = 0
		}
		// Keep a minimum gap so fighters never occupy the same spot.
		gap := x - opp.PositionX
		if math.Abs(gap) < minSeparation {
			if gap >= 0 {
				x = opp.PositionX + minSeparation
			} else {
				x = opp.PositionX - minSeparation
			}
		}
		if x > ringHalfWidth {
			x = ringHalfWidth
		} else if x < -ringHalfWidth {
			x = -ringHalfWidth
		}
	}
	return x
}

// Distance returns the absolute gap between the two fighters.
func Distance(a, b *game.AgentState) float64 {
	return math.Abs(a.PositionX - b.PositionX)
}

// FacingSign returns the direction fighter idx faces: +1 when the opponent
// is to the right, -1 otherwise.
func FacingSign(s *game.MatchState, idx int) float64 {
	if s.Agents[game.Opponent(idx)].PositionX >= s.Agents[idx].PositionX {
		return 1
	}
	return -1
}
