package engine

import "github.com/MdAyman7/wweagentsfun-sub000/internal/game"

// Phase names handed to the debug observer, in execution order.
const (
	PhaseNameTick       = "tick"
	PhaseNamePsychology = "psychology"
	PhaseNameDecision   = "decision"
	PhaseNameFSM        = "fsm"
	PhaseNameMovement   = "movement"
	PhaseNameCombat     = "combat"
	PhaseNameReaction   = "reaction"
	PhaseNameWinCheck   = "win_check"
)

// MatchDebugger observes the tick pipeline. Attaching one is optional and
// costs nothing when absent; the state handed to OnPhase/OnTickEnd is a
// snapshot the observer may keep.
type MatchDebugger interface {
	OnTickStart(tick int)
	OnPhase(phase string, s *game.MatchState)
	OnTickEnd(s *game.MatchState)
}
