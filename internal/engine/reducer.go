package engine

import "github.com/MdAyman7/wweagentsfun-sub000/internal/game"

// Action is a typed request for a state change. The reducer is the only
// component that writes MatchState; everything else reads the state and
// emits actions.
type Action interface{ isAction() }

// StartMatch flips the state to running.
type StartMatch struct{}

// AdvanceTick moves simulated time forward and decays global counters.
type AdvanceTick struct{ DTSeconds float64 }

// SyncFighter mirrors the FSM's outputs into the agent slice.
type SyncFighter struct {
	Agent        int
	Phase        game.FighterPhase
	ActiveMoveID string
}

// SetPosition writes the movement controller's integrated position.
type SetPosition struct {
	Agent int
	X     float64
}

// ApplyDamage transfers damage from attacker to target, accumulating region
// damage and both damage counters.
type ApplyDamage struct {
	Target   int
	Attacker int
	Amount   float64
	Region   game.Region
}

// SpendStamina reduces the agent's stamina (clamped at zero).
type SpendStamina struct {
	Agent  int
	Amount float64
}

// RegenStamina restores stamina (clamped at max).
type RegenStamina struct {
	Agent  int
	Amount float64
}

// AddMomentum shifts momentum; negative amounts drain. Clamped to [0,100].
type AddMomentum struct {
	Agent  int
	Amount float64
}

// Knockdown increments the knockdown counter.
type Knockdown struct{ Agent int }

// StartComeback activates the buff for the agent.
type StartComeback struct{ Agent int }

// EndComeback deactivates the buff and arms the global cooldown.
type EndComeback struct {
	Agent         int
	CooldownTicks int
}

// SetPsych installs the emotion machine's updated psych state.
type SetPsych struct {
	Agent int
	Psych game.AgentPsychState
}

// Stat counter notes emitted by the combat and reaction phases.
type NoteHit struct {
	Attacker int
	Critical bool
}
type NoteMiss struct{ Attacker int }
type NoteReversal struct{ Defender int }
type NoteMistake struct{ Agent int }
type NoteTaunt struct{ Agent int }
type NoteComboComplete struct{ Agent int }
type NoteFinisher struct{ Attacker int }
type NoteFinisherEscape struct{ Defender int }

// AppendLog appends an audit entry; tick and elapsed are stamped from the
// current state.
type AppendLog struct {
	Type   string
	Detail string
	Data   map[string]interface{}
}

// FinishMatch stops the simulation and records the result.
type FinishMatch struct{ Result game.MatchResult }

func (StartMatch) isAction()         {}
func (AdvanceTick) isAction()        {}
func (SyncFighter) isAction()        {}
func (SetPosition) isAction()        {}
func (ApplyDamage) isAction()        {}
func (SpendStamina) isAction()       {}
func (RegenStamina) isAction()       {}
func (AddMomentum) isAction()        {}
func (Knockdown) isAction()          {}
func (StartComeback) isAction()      {}
func (EndComeback) isAction()        {}
func (SetPsych) isAction()           {}
func (NoteHit) isAction()            {}
func (NoteMiss) isAction()           {}
func (NoteReversal) isAction()       {}
func (NoteMistake) isAction()        {}
func (NoteTaunt) isAction()          {}
func (NoteComboComplete) isAction()  {}
func (NoteFinisher) isAction()       {}
func (NoteFinisherEscape) isAction() {}
func (AppendLog) isAction()          {}
func (FinishMatch) isAction()        {}

// Reducer applies actions to the match state. All numeric invariants
// (health, stamina, momentum ranges) are enforced here so no caller can
// corrupt the state.
type Reducer struct{}

// Apply mutates the state according to the action. Unknown agent indexes
// are ignored rather than panicking, matching the engine's silent-degrade
// error policy.
func (Reducer) Apply(s *game.MatchState, action Action) {
	switch a := action.(type) {
	case StartMatch:
		s.Running = true
	case AdvanceTick:
		s.Tick++
		s.Elapsed += a.DTSeconds
		if s.ComebackCooldown > 0 {
			s.ComebackCooldown--
		}
		for i := range s.Agents {
			if s.Agents[i].ComebackActive && s.Agents[i].ComebackTicksLeft > 0 {
				s.Agents[i].ComebackTicksLeft--
			}
		}
	case SyncFighter:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.Phase = a.Phase
			ag.ActiveMoveID = a.ActiveMoveID
		}
	case SetPosition:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.PositionX = a.X
		}
	case ApplyDamage:
		target := agentAt(s, a.Target)
		if target == nil || a.Amount <= 0 {
			return
		}
		target.Health = clampF(target.Health-a.Amount, 0, target.MaxHealth)
		target.Stats.DamageTaken += a.Amount
		switch a.Region {
		case game.RegionHead:
			target.RegionDamage.Head += a.Amount
		case game.RegionBody:
			target.RegionDamage.Body += a.Amount
		case game.RegionLegs:
			target.RegionDamage.Legs += a.Amount
		}
		if attacker := agentAt(s, a.Attacker); attacker != nil && a.Attacker != a.Target {
			attacker.Stats.DamageDealt += a.Amount
		}
	case SpendStamina:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.Stamina = clampF(ag.Stamina-a.Amount, 0, ag.MaxStamina)
		}
	case RegenStamina:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.Stamina = clampF(ag.Stamina+a.Amount, 0, ag.MaxStamina)
		}
	case AddMomentum:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.Momentum = clampF(ag.Momentum+a.Amount, 0, 100)
		}
	case Knockdown:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.Knockdowns++
		}
	case StartComeback:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.ComebackActive = true
			ag.ComebackTicksLeft = ComebackDurationTicks
		}
	case EndComeback:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.ComebackActive = false
			ag.ComebackTicksLeft = 0
			s.ComebackCooldown = a.CooldownTicks
		}
	case SetPsych:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.Psych = a.Psych
		}
	case NoteHit:
		if ag := agentAt(s, a.Attacker); ag != nil {
			ag.Stats.HitsLanded++
			if a.Critical {
				ag.Stats.Criticals++
			}
		}
	case NoteMiss:
		if ag := agentAt(s, a.Attacker); ag != nil {
			ag.Stats.HitsMissed++
		}
	case NoteReversal:
		if ag := agentAt(s, a.Defender); ag != nil {
			ag.Stats.Reversals++
		}
	case NoteMistake:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.Stats.Mistakes++
		}
	case NoteTaunt:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.Stats.Taunts++
		}
	case NoteComboComplete:
		if ag := agentAt(s, a.Agent); ag != nil {
			ag.Stats.CombosCompleted++
		}
	case NoteFinisher:
		if ag := agentAt(s, a.Attacker); ag != nil {
			ag.Stats.FinishersLanded++
		}
	case NoteFinisherEscape:
		if ag := agentAt(s, a.Defender); ag != nil {
			ag.Stats.FinishersEscaped++
		}
	case AppendLog:
		s.Log = append(s.Log, game.MatchLogEntry{
			Tick:    s.Tick,
			Elapsed: s.Elapsed,
			Type:    a.Type,
			Detail:  a.Detail,
			Data:    a.Data,
		})
	case FinishMatch:
		r := a.Result
		s.Result = &r
		s.Running = false
	}
}

func agentAt(s *game.MatchState, idx int) *game.AgentState {
	if idx < 0 || idx > 1 {
		return nil
	}
	return &s.Agents[idx]
}
