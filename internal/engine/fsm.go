package engine

import "github.com/MdAyman7/wweagentsfun-sub000/internal/game"

// Event kinds accepted by the fighter state machine. Requests come from the
// decision layer; reactions come from the combat phase.
type EventKind string

const (
	EventRequestAttack      EventKind = "request_attack"
	EventRequestBlock       EventKind = "request_block"
	EventRequestMove        EventKind = "request_move"
	EventRequestTaunt       EventKind = "request_taunt"
	EventRequestIdle        EventKind = "request_idle"
	EventRequestComboAttack EventKind = "request_combo_attack"
	EventRequestFinisher    EventKind = "request_finisher"
	EventFinisherLock       EventKind = "finisher_lock"

	EventHitReceived            EventKind = "hit_received"
	EventReversalReceived       EventKind = "reversal_received"
	EventKnockdown              EventKind = "knockdown"
	EventCounterFinisher        EventKind = "counter_finisher"
	EventFinisherImpactReceived EventKind = "finisher_impact_received"
	EventFinisherRelease        EventKind = "finisher_release"

	// EventComboWindow opens the follow-up window after a combo hit lands.
	EventComboWindow EventKind = "combo_window"
)

// Event is one input pushed to the FSM. Frames carries the duration for
// events that decide their own timer (stun length, combo window, finisher
// setup); Frames2 is the finisher impact duration.
type Event struct {
	Kind    EventKind
	MoveID  string
	Frames  int
	Frames2 int
}

// Side effects returned by DrainEffects for the loop to apply via the reducer.
type EffectKind string

const (
	EffectTauntEnd            EffectKind = "taunt_end"
	EffectComboWindowExpired  EffectKind = "combo_window_expired"
	EffectFinisherImpactStart EffectKind = "finisher_impact_start"
	EffectStoodUp             EffectKind = "stood_up"
)

// Effect is a side-effect descriptor produced by a timer transition.
type Effect struct {
	Kind     EffectKind
	Momentum float64
}

// stateFlags is the per-state behavior table: whether new decisions are
// accepted and which reactions can interrupt the state.
type stateFlags struct {
	acceptsInput      bool
	stunInterruptible bool
	kdInterruptible   bool
}

var fsmStateTable = map[game.FighterPhase]stateFlags{
	game.PhaseIdle:           {acceptsInput: true, stunInterruptible: true, kdInterruptible: true},
	game.PhaseMoving:         {acceptsInput: true, stunInterruptible: true, kdInterruptible: true},
	game.PhaseAttackWindup:   {stunInterruptible: true, kdInterruptible: true},
	game.PhaseAttackActive:   {stunInterruptible: true, kdInterruptible: true},
	game.PhaseAttackRecovery: {stunInterruptible: true, kdInterruptible: true},
	game.PhaseBlocking:       {stunInterruptible: true, kdInterruptible: true},
	game.PhaseStunned:        {kdInterruptible: true},
	game.PhaseKnockedDown:    {},
	game.PhaseGettingUp:      {kdInterruptible: true},
	game.PhaseTaunting:       {stunInterruptible: true, kdInterruptible: true},
	game.PhaseComboWindow:    {acceptsInput: true, stunInterruptible: true, kdInterruptible: true},
	// Finisher setup has super armor against normal stun but can still be
	// knocked down or counter-reversed.
	game.PhaseFinisherSetup:  {kdInterruptible: true},
	game.PhaseFinisherImpact: {},
	game.PhaseFinisherLocked: {},
}

// Built-in state durations in frames. Attack phase durations come from the
// move definition instead.
const (
	framesMoving      = 16
	framesBlocking    = 24
	framesTaunting    = 54
	framesKnockedDown = 120
	framesGettingUp   = 40

	// framesFinisherLockMax bounds the locked state. Every real lock ends
	// earlier via release or impact; the timer only fires if neither event
	// ever arrives, so no fighter can stay locked for the rest of a match.
	framesFinisherLockMax = 300

	tauntMomentumReward = 8
)

// FighterFSM is the per-fighter combat state machine: the single authority
// over phase, phase timer and active move. The loop syncs its outputs into
// MatchState after every update.
type FighterFSM struct {
	moves *MoveRegistry

	state        game.FighterPhase
	timer        int
	initialTimer int
	activeMoveID string
	impactFrames int

	// attackSeq increments every time an attack (or finisher impact) becomes
	// active so the combat phase resolves each activation exactly once.
	attackSeq int

	pending []Event
	effects []Effect
}

// NewFighterFSM returns an FSM in the idle state.
func NewFighterFSM(moves *MoveRegistry) *FighterFSM {
	return &FighterFSM{moves: moves, state: game.PhaseIdle}
}

// State returns the current phase.
func (f *FighterFSM) State() game.FighterPhase { return f.state }

// ActiveMoveID returns the move currently being executed, if any.
func (f *FighterFSM) ActiveMoveID() string { return f.activeMoveID }

// Timer returns the frames remaining in the current state.
func (f *FighterFSM) Timer() int { return f.timer }

// InitialTimer returns the frame count the current state started with. The
// finisher counter window is defined against this value, not a hardcoded
// threshold, so short setups keep a proportionate window.
func (f *FighterFSM) InitialTimer() int { return f.initialTimer }

// AttackSeq returns the activation counter for single-resolution bookkeeping.
func (f *FighterFSM) AttackSeq() int { return f.attackSeq }

// AcceptsInput reports whether the decision layer may issue a new request.
func (f *FighterFSM) AcceptsInput() bool {
	return fsmStateTable[f.state].acceptsInput
}

// PushEvent enqueues an event. Events are drained at the start of the next
// Update call, in push order.
func (f *FighterFSM) PushEvent(ev Event) {
	f.pending = append(f.pending, ev)
}

// DrainEffects returns and clears accumulated side-effect descriptors.
func (f *FighterFSM) DrainEffects() []Effect {
	out := f.effects
	f.effects = nil
	return out
}

// Update drains pending events and then advances the state timer by dtFrames,
// firing timer-expiry transitions. Update(0) drains events without advancing
// time; the reaction phase uses that to apply same-tick hit reactions.
func (f *FighterFSM) Update(dtFrames int) {
	pending := f.pending
	f.pending = nil
	for _, ev := range pending {
		f.apply(ev)
	}
	// Idle has no running timer: it waits on the decision layer.
	if dtFrames <= 0 || f.timer <= 0 {
		return
	}
	f.timer -= dtFrames
	if f.timer > 0 {
		return
	}
	f.timer = 0
	f.onTimerExpired()
}

func (f *FighterFSM) enter(state game.FighterPhase, frames int) {
	// Every timed state runs for at least one frame so zero-frame move data
	// cannot stall a transition chain.
	if frames < 1 && state != game.PhaseIdle {
		frames = 1
	}
	f.state = state
	f.timer = frames
	f.initialTimer = frames
	if state == game.PhaseAttackActive || state == game.PhaseFinisherImpact {
		f.attackSeq++
	}
	if state == game.PhaseIdle || state == game.PhaseMoving ||
		state == game.PhaseStunned || state == game.PhaseKnockedDown {
		f.activeMoveID = ""
	}
}

func (f *FighterFSM) apply(ev Event) {
	flags := fsmStateTable[f.state]
	switch ev.Kind {
	case EventRequestAttack, EventRequestComboAttack:
		if !flags.acceptsInput {
			return
		}
		move, ok := f.moves.Get(ev.MoveID)
		if !ok {
			return
		}
		f.activeMoveID = move.ID
		f.enter(game.PhaseAttackWindup, move.WindupFrames)
	case EventRequestBlock:
		if !flags.acceptsInput {
			return
		}
		f.enter(game.PhaseBlocking, framesBlocking)
	case EventRequestMove:
		if !flags.acceptsInput {
			return
		}
		f.enter(game.PhaseMoving, framesMoving)
	case EventRequestTaunt:
		if !flags.acceptsInput {
			return
		}
		f.enter(game.PhaseTaunting, framesTaunting)
	case EventRequestIdle:
		if !flags.acceptsInput {
			return
		}
		f.enter(game.PhaseIdle, 0)
	case EventRequestFinisher:
		if !flags.acceptsInput {
			return
		}
		f.activeMoveID = ev.MoveID
		f.impactFrames = ev.Frames2
		f.enter(game.PhaseFinisherSetup, ev.Frames)
	case EventFinisherLock:
		// A fighter running its own finisher cannot be grabbed.
		if f.state == game.PhaseFinisherSetup || f.state == game.PhaseFinisherImpact {
			return
		}
		f.enter(game.PhaseFinisherLocked, framesFinisherLockMax)
	case EventComboWindow:
		// Opened from attack states after a combo hit confirms.
		f.enter(game.PhaseComboWindow, ev.Frames)
	case EventHitReceived:
		if !flags.stunInterruptible {
			return
		}
		f.enter(game.PhaseStunned, ev.Frames)
	case EventReversalReceived:
		// A reversal always interrupts the attacker.
		f.enter(game.PhaseStunned, ev.Frames)
	case EventKnockdown:
		if !flags.kdInterruptible && f.state != game.PhaseFinisherLocked {
			return
		}
		f.enter(game.PhaseKnockedDown, framesKnockedDown)
	case EventCounterFinisher:
		if f.state != game.PhaseFinisherSetup {
			return
		}
		f.enter(game.PhaseStunned, ev.Frames)
	case EventFinisherImpactReceived:
		f.enter(game.PhaseKnockedDown, framesKnockedDown+ev.Frames)
	case EventFinisherRelease:
		if f.state != game.PhaseFinisherLocked {
			return
		}
		f.enter(game.PhaseIdle, 0)
	}
}

func (f *FighterFSM) onTimerExpired() {
	switch f.state {
	case game.PhaseMoving, game.PhaseBlocking, game.PhaseStunned, game.PhaseFinisherLocked:
		f.enter(game.PhaseIdle, 0)
	case game.PhaseTaunting:
		f.effects = append(f.effects, Effect{Kind: EffectTauntEnd, Momentum: tauntMomentumReward})
		f.enter(game.PhaseIdle, 0)
	case game.PhaseAttackWindup:
		if move, ok := f.moves.Get(f.activeMoveID); ok {
			f.enter(game.PhaseAttackActive, move.ActiveFrames)
			return
		}
		f.enter(game.PhaseIdle, 0)
	case game.PhaseAttackActive:
		if move, ok := f.moves.Get(f.activeMoveID); ok {
			f.enter(game.PhaseAttackRecovery, move.RecoveryFrames)
			return
		}
		f.enter(game.PhaseIdle, 0)
	case game.PhaseAttackRecovery:
		f.activeMoveID = ""
		f.enter(game.PhaseIdle, 0)
	case game.PhaseComboWindow:
		f.effects = append(f.effects, Effect{Kind: EffectComboWindowExpired})
		f.enter(game.PhaseIdle, 0)
	case game.PhaseKnockedDown:
		f.enter(game.PhaseGettingUp, framesGettingUp)
	case game.PhaseGettingUp:
		f.effects = append(f.effects, Effect{Kind: EffectStoodUp})
		f.enter(game.PhaseIdle, 0)
	case game.PhaseFinisherSetup:
		f.effects = append(f.effects, Effect{Kind: EffectFinisherImpactStart})
		f.enter(game.PhaseFinisherImpact, f.impactFrames)
	case game.PhaseFinisherImpact:
		f.activeMoveID = ""
		f.enter(game.PhaseIdle, 0)
	default:
		f.enter(game.PhaseIdle, 0)
	}
}
