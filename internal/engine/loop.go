package engine

import (
	"fmt"
	"math"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

// MatchLoopConfig is the external construction payload for a match.
type MatchLoopConfig struct {
	Seed      int64              `json:"seed"`
	TimeLimit float64            `json:"time_limit"`
	TickRate  int                `json:"tick_rate"`
	Wrestler1 game.WrestlerInput `json:"wrestler1"`
	Wrestler2 game.WrestlerInput `json:"wrestler2"`
}

// Content bundles the static lookup tables a match consumes.
type Content struct {
	Moves      []game.MoveDef
	Combos     []game.ComboDefinition
	Finishers  []game.FinisherDef
	Archetypes map[string]game.Archetype
}

// Loop tuning.
const (
	defaultTickRate = 60
	defaultHealth   = 100.0
	defaultStamina  = 100.0
	startSpacing    = 1.6

	// Safety ceiling: one simulated hour ends any pathological match.
	safetyCeilingSeconds = 3600

	psychEvalInterval = 10

	tkoKnockdowns       = 4
	timeoutHealthEps    = 0.02
	knockdownHeavyHit   = 12.0
	finisherBaseChance  = 0.15
	finisherOppHealth   = 0.45
	finisherRangeSlack  = 0.5
	counterWindowFrames = 8
	counterStunFrames   = 60
)

// MatchLoop orchestrates the full 8-phase deterministic tick pipeline.
type MatchLoop struct {
	cfg     MatchLoopConfig
	rng     *Rand
	reducer Reducer
	state   *game.MatchState

	moves     *MoveRegistry
	combos    *ComboRegistry
	finishers *FinisherTable

	fsm      [2]*FighterFSM
	movers   [2]*MovementController
	brains   [2]*Agent
	trackers [2]*ComboTracker
	emotions [2]*EmotionMachine
	comeback *ComebackSystem
	resolver *CombatResolver

	// Per-tick effective-modifier cache, recomputed every psychology phase.
	mods [2]EffectiveModifiers

	// lastResolved tracks FSM attack activations already resolved so an
	// active window spanning several ticks lands exactly one hit.
	lastResolved [2]int

	// Active finisher bookkeeping.
	activeFinisher  [2]*game.FinisherDef
	pendingImpact   [2]bool
	counterChecked  [2]bool
	finisherOffered [2]bool

	hitEvents []game.HitImpactEvent
	debugger  MatchDebugger

	maxTicks int
}

// NewMatchLoop validates the config, builds the registries and both fighter
// stacks, and emits the match_start log entry.
func NewMatchLoop(cfg MatchLoopConfig, content Content) (*MatchLoop, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	if cfg.TimeLimit <= 0 {
		return nil, fmt.Errorf("match config: time limit must be positive")
	}
	if len(content.Moves) == 0 {
		return nil, fmt.Errorf("match config: no moves loaded")
	}

	l := &MatchLoop{
		cfg:       cfg,
		rng:       NewRand(cfg.Seed),
		moves:     NewMoveRegistry(content.Moves),
		combos:    NewComboRegistry(content.Combos),
		finishers: NewFinisherTable(content.Finishers),
		maxTicks:  safetyCeilingSeconds * cfg.TickRate,
	}
	l.resolver = NewCombatResolver(l.rng)
	l.comeback = NewComebackSystem(l.rng)

	state := &game.MatchState{TimeLimit: cfg.TimeLimit}
	inputs := [2]game.WrestlerInput{cfg.Wrestler1, cfg.Wrestler2}
	for i, in := range inputs {
		agent, err := buildAgent(in, content.Archetypes)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			agent.PositionX = -startSpacing
		} else {
			agent.PositionX = startSpacing
		}
		state.Agents[i] = agent

		l.fsm[i] = NewFighterFSM(l.moves)
		l.movers[i] = NewMovementController()
		l.brains[i] = NewAgent(l.rng, l.moves, l.combos)
		l.trackers[i] = NewComboTracker(l.combos)
		l.emotions[i] = NewEmotionMachine(agent.PsychProfile)
		l.mods[i] = ComputeEffectiveModifiers(agent.PsychProfile, agent.Psych, ContextFactors{SelfHealthFrac: 1, OppHealthFrac: 1, StaminaFrac: 1})
	}
	if state.Agents[0].ID == state.Agents[1].ID {
		return nil, fmt.Errorf("match config: wrestler ids must differ")
	}
	l.state = state

	l.apply(StartMatch{})
	l.apply(AppendLog{
		Type:   game.LogMatchStart,
		Detail: fmt.Sprintf("%s vs %s", state.Agents[0].Name, state.Agents[1].Name),
		Data: map[string]interface{}{
			"seed":       cfg.Seed,
			"time_limit": cfg.TimeLimit,
			"wrestler1":  state.Agents[0].Name,
			"wrestler2":  state.Agents[1].Name,
		},
	})
	return l, nil
}

func buildAgent(in game.WrestlerInput, archetypes map[string]game.Archetype) (game.AgentState, error) {
	if in.ID == "" {
		return game.AgentState{}, fmt.Errorf("match config: wrestler id is required")
	}
	arch, ok := archetypes[in.Archetype]
	if !ok {
		return game.AgentState{}, fmt.Errorf("match config: unknown archetype %q", in.Archetype)
	}
	health := in.Health
	if health <= 0 {
		health = defaultHealth
	}
	stamina := in.Stamina
	if stamina <= 0 {
		stamina = defaultStamina
	}
	personality := arch.Personality
	if in.Personality != nil {
		personality = *in.Personality
	}
	profile := arch.PsychProfile
	if in.PsychProfile != nil {
		profile = *in.PsychProfile
	}
	name := in.Name
	if name == "" {
		name = in.ID
	}
	return game.AgentState{
		ID:           in.ID,
		Name:         name,
		Archetype:    in.Archetype,
		Moveset:      arch.Moveset,
		Color:        in.Color,
		Height:       in.Height,
		Build:        in.Build,
		Health:       health,
		MaxHealth:    health,
		Stamina:      stamina,
		MaxStamina:   stamina,
		Phase:        game.PhaseIdle,
		Personality:  personality,
		PsychProfile: profile,
		Psych:        InitialPsych(profile),
	}, nil
}

// State returns the live match state. Callers that keep it across ticks
// should Clone it.
func (l *MatchLoop) State() *game.MatchState { return l.state }

// AttachDebugger installs the optional phase observer.
func (l *MatchLoop) AttachDebugger(d MatchDebugger) { l.debugger = d }

// DrainHitEvents returns and clears the queued rendering impacts.
func (l *MatchLoop) DrainHitEvents() []game.HitImpactEvent {
	out := l.hitEvents
	l.hitEvents = nil
	return out
}

// GetFacingSign returns the facing direction of the given agent id, or 0
// for an unknown id.
func (l *MatchLoop) GetFacingSign(agentID string) float64 {
	idx := l.state.AgentIndex(agentID)
	if idx < 0 {
		return 0
	}
	return FacingSign(l.state, idx)
}

// RunToEnd steps until the match produces a result and returns the final
// state.
func (l *MatchLoop) RunToEnd() *game.MatchState {
	for l.Step() {
	}
	return l.state
}

func (l *MatchLoop) apply(a Action) { l.reducer.Apply(l.state, a) }

func (l *MatchLoop) observe(phase string) {
	if l.debugger != nil {
		l.debugger.OnPhase(phase, l.state.Clone())
	}
}

// Step advances exactly one tick through the fixed phase pipeline. Returns
// false once the match has ended.
func (l *MatchLoop) Step() bool {
	if !l.state.Running {
		return false
	}
	if l.debugger != nil {
		l.debugger.OnTickStart(l.state.Tick + 1)
	}

	l.tickPhase()
	l.observe(PhaseNameTick)
	l.psychologyPhase()
	l.observe(PhaseNamePsychology)
	l.decisionPhase()
	l.observe(PhaseNameDecision)
	l.fsmPhase()
	l.observe(PhaseNameFSM)
	l.movementPhase()
	l.observe(PhaseNameMovement)
	l.combatPhase()
	l.observe(PhaseNameCombat)
	l.reactionPhase()
	l.observe(PhaseNameReaction)
	l.winCheckPhase()
	l.observe(PhaseNameWinCheck)

	if l.debugger != nil {
		l.debugger.OnTickEnd(l.state.Clone())
	}
	return l.state.Running
}

// --- Phase 1: tick ------------------------------------------------------

func (l *MatchLoop) tickPhase() {
	l.apply(AdvanceTick{DTSeconds: 1.0 / float64(l.cfg.TickRate)})
	for i := 0; i < 2; i++ {
		l.trackers[i].Tick()
		l.apply(RegenStamina{Agent: i, Amount: l.staminaRegen(i)})
	}
}

func (l *MatchLoop) staminaRegen(idx int) float64 {
	a := &l.state.Agents[idx]
	var regen float64
	switch a.Phase {
	case game.PhaseIdle:
		regen = 0.08
	case game.PhaseKnockedDown, game.PhaseGettingUp, game.PhaseTaunting:
		regen = 0.05
	case game.PhaseBlocking:
		regen = 0.04
	case game.PhaseMoving:
		regen = 0.03
	default:
		regen = 0.01
	}
	regen *= 0.8 + 0.4*a.Personality.Resilience
	if a.ComebackActive {
		regen *= 1.5
	}
	return regen
}

// --- Phase 2: psychology ------------------------------------------------

func (l *MatchLoop) psychologyPhase() {
	due := l.state.Tick%psychEvalInterval == 0
	for i := 0; i < 2; i++ {
		self := &l.state.Agents[i]
		opp := &l.state.Agents[game.Opponent(i)]
		if due {
			ctx := EmotionContext{TimeFrac: l.timeFrac(), DTTicks: psychEvalInterval}
			psych, changed := l.emotions[i].Evaluate(self.Psych, self, opp, ctx, l.rng)
			l.apply(SetPsych{Agent: i, Psych: psych})
			if changed {
				l.apply(AppendLog{
					Type:   game.LogEmotionChange,
					Detail: fmt.Sprintf("%s is now %s", self.Name, psych.Emotion),
					Data:   map[string]interface{}{"agent": self.ID, "emotion": string(psych.Emotion)},
				})
			}
		}
		l.mods[i] = ComputeEffectiveModifiers(self.PsychProfile, self.Psych, ContextFactors{
			SelfHealthFrac: self.HealthFrac(),
			OppHealthFrac:  opp.HealthFrac(),
			StaminaFrac:    self.StaminaFrac(),
			MomentumFrac:   self.Momentum / 100,
			TimeFrac:       l.timeFrac(),
			ComebackActive: self.ComebackActive,
			OppVulnerable:  opp.Phase == game.PhaseStunned || opp.Phase == game.PhaseKnockedDown,
		})
	}
}

func (l *MatchLoop) timeFrac() float64 {
	if l.state.TimeLimit <= 0 {
		return 0
	}
	return clampF(l.state.Elapsed/l.state.TimeLimit, 0, 1)
}

// --- Phase 3: decision --------------------------------------------------

func (l *MatchLoop) decisionPhase() {
	for i := 0; i < 2; i++ {
		fsm := l.fsm[i]
		if fsm == nil || !fsm.AcceptsInput() {
			continue
		}
		self := &l.state.Agents[i]
		opp := &l.state.Agents[game.Opponent(i)]

		// Auto-chain the expected follow-up while the combo window is open.
		if fsm.State() == game.PhaseComboWindow {
			if next := l.trackers[i].NextMoveID(); next != "" {
				if move, ok := l.moves.Get(next); ok && move.StaminaCost*l.trackers[i].StaminaScale() <= self.Stamina {
					l.apply(SpendStamina{Agent: i, Amount: move.StaminaCost * l.trackers[i].StaminaScale()})
					fsm.PushEvent(Event{Kind: EventRequestComboAttack, MoveID: next})
					continue
				}
			}
		}

		if l.tryFinisher(i) {
			continue
		}

		sc := SpatialContext{Distance: Distance(self, opp)}
		action := l.brains[i].Decide(self, opp, sc, l.mods[i])
		switch action.Type {
		case ActMove:
			fsm.PushEvent(Event{Kind: EventRequestMove})
		case ActBlock:
			fsm.PushEvent(Event{Kind: EventRequestBlock})
		case ActIdle:
			fsm.PushEvent(Event{Kind: EventRequestIdle})
		case ActTaunt:
			fsm.PushEvent(Event{Kind: EventRequestTaunt})
			l.apply(NoteTaunt{Agent: i})
			l.emotions[i].Ingest(PsychEvent{Kind: PsychTaunted})
		case ActMistake:
			l.apply(NoteMistake{Agent: i})
			l.apply(SpendStamina{Agent: i, Amount: 2})
			l.apply(AppendLog{
				Type:   game.LogMistake,
				Detail: fmt.Sprintf("%s loses composure and fumbles", self.Name),
				Data:   map[string]interface{}{"agent": self.ID},
			})
			fsm.PushEvent(Event{Kind: EventRequestIdle})
		case ActAttack:
			move, ok := l.moves.Get(action.MoveID)
			if !ok {
				continue
			}
			l.apply(SpendStamina{Agent: i, Amount: move.StaminaCost * l.trackers[i].StaminaScale()})
			fsm.PushEvent(Event{Kind: EventRequestAttack, MoveID: move.ID})
		}
	}
}

// tryFinisher evaluates the finisher trigger for agent idx and starts the
// sequence on success.
func (l *MatchLoop) tryFinisher(idx int) bool {
	self := &l.state.Agents[idx]
	oppIdx := game.Opponent(idx)
	opp := &l.state.Agents[oppIdx]

	fin, ok := l.finishers.ForMoveset(self.Moveset)
	if !ok {
		return false
	}
	if l.fsm[idx].State() == game.PhaseFinisherLocked || l.fsm[oppIdx].State() == game.PhaseFinisherLocked {
		return false
	}
	// Only one finisher can be in flight. The FSM lock is not visible until
	// events drain, so a same-tick trigger by the opponent must be caught
	// here, not in the state check above.
	if l.activeFinisher[idx] != nil || l.activeFinisher[oppIdx] != nil {
		return false
	}
	if self.Momentum < fin.MomentumThreshold {
		return false
	}
	if opp.HealthFrac() >= finisherOppHealth && self.Psych.Emotion != game.EmotionClutch {
		return false
	}
	if self.Stamina < fin.StaminaCost {
		return false
	}
	if Distance(self, opp) > fin.Hitbox.Range+finisherRangeSlack {
		return false
	}

	chance := finisherBaseChance + l.mods[idx].FinisherBoost*0.4
	if self.ComebackActive {
		chance += 0.1
	}
	if self.Psych.Emotion == game.EmotionClutch {
		chance += 0.1
	}
	if l.finisherOffered[idx] {
		chance += 0.1
	}
	if !l.rng.Chance(clampF(chance, 0, 0.8)) {
		return false
	}

	finCopy := fin
	l.activeFinisher[idx] = &finCopy
	l.counterChecked[idx] = false
	l.apply(SpendStamina{Agent: idx, Amount: fin.StaminaCost})
	l.apply(AddMomentum{Agent: idx, Amount: -fin.MomentumThreshold})
	l.fsm[idx].PushEvent(Event{Kind: EventRequestFinisher, MoveID: fin.ID, Frames: fin.SetupFrames, Frames2: fin.ImpactFrames})
	l.fsm[oppIdx].PushEvent(Event{Kind: EventFinisherLock})
	l.apply(AppendLog{
		Type:   game.LogFinisherStart,
		Detail: fmt.Sprintf("%s sets up %s", self.Name, fin.Name),
		Data:   map[string]interface{}{"agent": self.ID, "finisher": fin.ID},
	})
	return true
}

// --- Phase 4: FSM advance -----------------------------------------------

func (l *MatchLoop) fsmPhase() {
	for i := 0; i < 2; i++ {
		l.fsm[i].Update(1)
		l.syncFighter(i)
		l.handleEffects(i)
		l.clearStaleFinisher(i)
	}
}

// clearStaleFinisher drops in-flight finisher bookkeeping when the setup
// was interrupted before the impact resolved; a stale entry would veto every
// later trigger by either fighter.
func (l *MatchLoop) clearStaleFinisher(idx int) {
	if l.activeFinisher[idx] == nil || l.pendingImpact[idx] {
		return
	}
	switch l.fsm[idx].State() {
	case game.PhaseFinisherSetup, game.PhaseFinisherImpact:
	default:
		l.activeFinisher[idx] = nil
	}
}

func (l *MatchLoop) syncFighter(idx int) {
	l.apply(SyncFighter{
		Agent:        idx,
		Phase:        l.fsm[idx].State(),
		ActiveMoveID: l.fsm[idx].ActiveMoveID(),
	})
}

func (l *MatchLoop) handleEffects(idx int) {
	for _, eff := range l.fsm[idx].DrainEffects() {
		switch eff.Kind {
		case EffectTauntEnd:
			l.apply(AddMomentum{Agent: idx, Amount: eff.Momentum})
		case EffectComboWindowExpired:
			if id, active := l.trackers[idx].OnComboBreak(BreakWindowExpired); active {
				l.logComboBreak(idx, id, BreakWindowExpired)
			}
		case EffectFinisherImpactStart:
			l.pendingImpact[idx] = true
		case EffectStoodUp:
			// Standing back up restores a sliver of fight.
			l.apply(RegenStamina{Agent: idx, Amount: 5})
		}
	}
}

func (l *MatchLoop) logComboBreak(idx int, comboID string, reason ComboBreakReason) {
	l.apply(AppendLog{
		Type:   game.LogComboBreak,
		Detail: fmt.Sprintf("%s's combo breaks (%s)", l.state.Agents[idx].Name, reason),
		Data:   map[string]interface{}{"agent": l.state.Agents[idx].ID, "combo": comboID, "reason": string(reason)},
	})
}

// --- Phase 5: movement --------------------------------------------------

func (l *MatchLoop) movementPhase() {
	for i := 0; i < 2; i++ {
		self := &l.state.Agents[i]
		opp := &l.state.Agents[game.Opponent(i)]
		x := l.movers[i].Step(self, opp, 1, l.mods[i].Speed)
		l.apply(SetPosition{Agent: i, X: x})
	}
}

// --- Phase 6: combat ----------------------------------------------------

func (l *MatchLoop) combatPhase() {
	// Counter window: the defender can escape a finisher only during the
	// first frames of the setup.
	for i := 0; i < 2; i++ {
		l.checkFinisherCounter(i)
	}

	order := l.attackOrder()
	for _, i := range order {
		l.resolveAttack(i)
	}

	for i := 0; i < 2; i++ {
		if l.pendingImpact[i] {
			l.pendingImpact[i] = false
			l.resolveFinisherImpact(i)
		}
	}
}

// attackOrder returns the attacker indexes with unresolved active windows,
// clash-ordered when both activate the same tick.
func (l *MatchLoop) attackOrder() []int {
	var ready []int
	for i := 0; i < 2; i++ {
		if l.fsm[i].State() == game.PhaseAttackActive && l.fsm[i].AttackSeq() != l.lastResolved[i] {
			ready = append(ready, i)
		}
	}
	if len(ready) < 2 {
		return ready
	}
	moveA, okA := l.moves.Get(l.fsm[0].ActiveMoveID())
	moveB, okB := l.moves.Get(l.fsm[1].ActiveMoveID())
	if !okA || !okB {
		return ready
	}
	if l.resolver.ResolveClash(moveA, moveB) == 1 {
		return []int{1, 0}
	}
	return []int{0, 1}
}

func (l *MatchLoop) resolveAttack(idx int) {
	fsm := l.fsm[idx]
	move, ok := l.moves.Get(fsm.ActiveMoveID())
	if !ok {
		l.lastResolved[idx] = fsm.AttackSeq()
		return
	}
	oppIdx := game.Opponent(idx)
	self := &l.state.Agents[idx]
	opp := &l.state.Agents[oppIdx]

	result := l.resolver.Resolve(self, opp, move, l.mods[idx], l.mods[oppIdx])
	l.lastResolved[idx] = fsm.AttackSeq()

	switch {
	case result.Reversed:
		l.applyReversal(idx, oppIdx, move, result)
	case result.Hit:
		l.applyHit(idx, oppIdx, move, result)
	default:
		l.applyMiss(idx, move, result)
	}
}

func (l *MatchLoop) applyMiss(idx int, move game.MoveDef, result CombatResult) {
	self := &l.state.Agents[idx]
	l.apply(NoteMiss{Attacker: idx})
	l.apply(AppendLog{
		Type:   game.LogMoveMiss,
		Detail: result.Description,
		Data:   map[string]interface{}{"agent": self.ID, "move": move.ID},
	})
	if id, active := l.trackers[idx].OnComboBreak(BreakMiss); active {
		l.logComboBreak(idx, id, BreakMiss)
	}
}

func (l *MatchLoop) applyReversal(idx, oppIdx int, move game.MoveDef, result CombatResult) {
	self := &l.state.Agents[idx]
	opp := &l.state.Agents[oppIdx]

	l.apply(NoteReversal{Defender: oppIdx})
	l.apply(ApplyDamage{Target: idx, Attacker: oppIdx, Amount: result.ReversalDamage, Region: game.RegionBody})
	l.apply(AddMomentum{Agent: oppIdx, Amount: result.MomentumGain + 6})
	l.apply(AddMomentum{Agent: idx, Amount: -8})
	l.fsm[idx].PushEvent(Event{Kind: EventReversalReceived, Frames: result.StunFrames})
	l.apply(AppendLog{
		Type:   game.LogReversal,
		Detail: result.Description,
		Data: map[string]interface{}{
			"agent":    opp.ID,
			"move":     move.ID,
			"damage":   result.ReversalDamage,
			"reversed": self.ID,
		},
	})
	if id, active := l.trackers[idx].OnComboBreak(BreakReversed); active {
		l.logComboBreak(idx, id, BreakReversed)
	}
	l.emotions[idx].Ingest(PsychEvent{Kind: PsychReversalLost})
	l.emotions[oppIdx].Ingest(PsychEvent{Kind: PsychReversalWon})
	l.movers[idx].ApplyKnockback(-FacingSign(l.state, idx), 0.05+result.ReversalDamage*0.008)
	l.pushHitEvent(oppIdx, idx, result.ReversalDamage, false, true, false)
}

func (l *MatchLoop) applyHit(idx, oppIdx int, move game.MoveDef, result CombatResult) {
	self := &l.state.Agents[idx]
	opp := &l.state.Agents[oppIdx]

	// Combo scaling applies before any effect lands.
	damage := math.Max(1, math.Round(result.Damage*l.trackers[idx].DamageScale()))
	momentum := result.MomentumGain + l.trackers[idx].MomentumBonus()

	l.apply(NoteHit{Attacker: idx, Critical: result.Critical})
	l.apply(ApplyDamage{Target: oppIdx, Attacker: idx, Amount: damage, Region: move.TargetRegion})
	l.apply(AddMomentum{Agent: idx, Amount: momentum})
	l.apply(AddMomentum{Agent: oppIdx, Amount: -damage * 0.15})

	logType := game.LogMoveHit
	data := map[string]interface{}{
		"agent":    self.ID,
		"target":   opp.ID,
		"move":     move.ID,
		"damage":   damage,
		"critical": result.Critical,
		"blocked":  result.Blocked,
		"region":   string(move.TargetRegion),
	}

	var combo ComboHitOutcome
	if !result.Blocked {
		combo = l.trackers[idx].OnHitLanded(move.ID, damage)
	} else if id, active := l.trackers[idx].OnComboBreak(BreakMiss); active {
		// A blocked hit never advances a chain. The combo_break reason
		// vocabulary is closed, so a block goes out as "miss".
		l.logComboBreak(idx, id, BreakMiss)
	}
	if combo.Broke {
		l.logComboBreak(idx, combo.BrokeComboID, BreakWrongMove)
	}

	l.apply(AppendLog{Type: logType, Detail: result.Description, Data: data})

	switch {
	case combo.Completed:
		l.apply(NoteComboComplete{Agent: idx})
		l.apply(AddMomentum{Agent: idx, Amount: 10})
		l.apply(AppendLog{
			Type:   game.LogComboComplete,
			Detail: fmt.Sprintf("%s completes a %d-hit combo", self.Name, combo.HitCount),
			Data:   map[string]interface{}{"agent": self.ID, "combo": combo.ComboID, "hits": combo.HitCount},
		})
		l.emotions[idx].Ingest(PsychEvent{Kind: PsychComboLanded, ComboLen: combo.HitCount})
		l.emotions[oppIdx].Ingest(PsychEvent{Kind: PsychComboReceived, ComboLen: combo.HitCount})
		if combo.FinisherUnlocked {
			l.finisherOffered[idx] = true
		}
	case combo.Started:
		l.apply(AppendLog{
			Type:   game.LogComboStart,
			Detail: fmt.Sprintf("%s opens a combo", self.Name),
			Data:   map[string]interface{}{"agent": self.ID, "combo": combo.ComboID},
		})
	case combo.Advanced:
		l.apply(AppendLog{
			Type:   game.LogComboHit,
			Detail: fmt.Sprintf("%s chains hit %d", self.Name, combo.HitCount),
			Data:   map[string]interface{}{"agent": self.ID, "combo": combo.ComboID, "hits": combo.HitCount},
		})
	}

	// Keep the chain alive through the follow-up window.
	if l.trackers[idx].Active() {
		if frames := l.trackers[idx].WindowFrames(); frames > 0 {
			l.fsm[idx].PushEvent(Event{Kind: EventComboWindow, Frames: frames})
		}
	}

	// Defender reactions.
	if id, active := l.trackers[oppIdx].OnComboBreak(BreakHitReceived); active {
		l.logComboBreak(oppIdx, id, BreakHitReceived)
	}
	l.emotions[idx].Ingest(PsychEvent{Kind: PsychHitLanded, Damage: damage})
	l.emotions[oppIdx].Ingest(PsychEvent{Kind: PsychHitTaken, Damage: damage})

	if !result.Blocked {
		l.fsm[oppIdx].PushEvent(Event{Kind: EventHitReceived, Frames: result.StunFrames})
		l.movers[oppIdx].ApplyKnockback(FacingSign(l.state, idx), 0.04+damage*0.01)
		l.maybeKnockdown(idx, oppIdx, damage, result.Critical)
	}
	l.pushHitEvent(idx, oppIdx, damage, result.Critical, false, result.Blocked)
}

// maybeKnockdown rolls a knockdown for a heavy hit on a hurt defender.
func (l *MatchLoop) maybeKnockdown(idx, oppIdx int, damage float64, critical bool) {
	opp := &l.state.Agents[oppIdx]
	if damage < knockdownHeavyHit || opp.HealthFrac() >= 0.5 {
		return
	}
	chance := (damage / 40) * (1 - opp.HealthFrac())
	if critical {
		chance *= 1.3
	}
	chance = clampF(chance, 0, 0.5)
	if !l.rng.Chance(chance) {
		if chance > 0.2 {
			l.emotions[oppIdx].Ingest(PsychEvent{Kind: PsychNearKnockdown})
		}
		return
	}
	l.knockdown(idx, oppIdx)
}

func (l *MatchLoop) knockdown(idx, oppIdx int) {
	opp := &l.state.Agents[oppIdx]
	l.fsm[oppIdx].PushEvent(Event{Kind: EventKnockdown})
	l.apply(Knockdown{Agent: oppIdx})
	l.apply(AppendLog{
		Type:   game.LogKnockdown,
		Detail: fmt.Sprintf("%s goes down", opp.Name),
		Data:   map[string]interface{}{"agent": opp.ID, "count": opp.Knockdowns + 1},
	})
	if idx >= 0 {
		l.emotions[idx].Ingest(PsychEvent{Kind: PsychKnockdownScored})
	}
	l.emotions[oppIdx].Ingest(PsychEvent{Kind: PsychKnockdownSuffered})
	if id, active := l.trackers[oppIdx].OnComboBreak(BreakKnockedDown); active {
		l.logComboBreak(oppIdx, id, BreakKnockedDown)
	}
}

// checkFinisherCounter rolls the defender's escape during the opening
// frames of the attacker's setup. The window is measured against the stored
// initial setup timer, so short setups keep a real window.
func (l *MatchLoop) checkFinisherCounter(idx int) {
	fsm := l.fsm[idx]
	if fsm.State() != game.PhaseFinisherSetup || l.counterChecked[idx] {
		return
	}
	elapsed := fsm.InitialTimer() - fsm.Timer()
	if elapsed > counterWindowFrames {
		l.counterChecked[idx] = true
		return
	}
	oppIdx := game.Opponent(idx)
	opp := &l.state.Agents[oppIdx]
	l.counterChecked[idx] = true

	p := 0.05 + opp.PsychProfile.Adaptability*0.3 + (l.mods[oppIdx].Reversal-1)*0.2
	if !l.rng.Chance(clampF(p, 0, 0.35)) {
		return
	}

	l.apply(NoteFinisherEscape{Defender: oppIdx})
	l.fsm[idx].PushEvent(Event{Kind: EventCounterFinisher, Frames: counterStunFrames})
	l.fsm[oppIdx].PushEvent(Event{Kind: EventFinisherRelease})
	l.apply(AddMomentum{Agent: oppIdx, Amount: 12})
	l.apply(AppendLog{
		Type:   game.LogFinisherCounter,
		Detail: fmt.Sprintf("%s counters the finisher", opp.Name),
		Data:   map[string]interface{}{"agent": opp.ID, "countered": l.state.Agents[idx].ID},
	})
	l.emotions[oppIdx].Ingest(PsychEvent{Kind: PsychFinisherEscaped})
	l.activeFinisher[idx] = nil
}

func (l *MatchLoop) resolveFinisherImpact(idx int) {
	fin := l.activeFinisher[idx]
	if fin == nil {
		return
	}
	l.activeFinisher[idx] = nil
	oppIdx := game.Opponent(idx)
	self := &l.state.Agents[idx]
	opp := &l.state.Agents[oppIdx]

	result := l.resolver.ResolveFinisher(self, opp, *fin, l.mods[idx])
	l.apply(NoteFinisher{Attacker: idx})
	l.apply(ApplyDamage{Target: oppIdx, Attacker: idx, Amount: result.Damage, Region: game.RegionHead})
	l.apply(AddMomentum{Agent: idx, Amount: result.MomentumGain})
	l.apply(AppendLog{
		Type:   game.LogFinisherImpact,
		Detail: result.Description,
		Data: map[string]interface{}{
			"agent":    self.ID,
			"target":   opp.ID,
			"finisher": fin.ID,
			"damage":   result.Damage,
		},
	})
	l.emotions[idx].Ingest(PsychEvent{Kind: PsychHitLanded, Damage: result.Damage})
	l.emotions[oppIdx].Ingest(PsychEvent{Kind: PsychHitTaken, Damage: result.Damage})

	l.fsm[oppIdx].PushEvent(Event{Kind: EventFinisherImpactReceived, Frames: 30})
	if result.KnockdownForced {
		l.apply(Knockdown{Agent: oppIdx})
		l.apply(AppendLog{
			Type:   game.LogKnockdown,
			Detail: fmt.Sprintf("%s goes down", opp.Name),
			Data:   map[string]interface{}{"agent": opp.ID, "count": opp.Knockdowns + 1},
		})
		l.emotions[idx].Ingest(PsychEvent{Kind: PsychKnockdownScored})
		l.emotions[oppIdx].Ingest(PsychEvent{Kind: PsychKnockdownSuffered})
	}
	l.pushHitEvent(idx, oppIdx, result.Damage, true, false, false)
}

func (l *MatchLoop) pushHitEvent(attackerIdx, defenderIdx int, damage float64, critical, reversed, blocked bool) {
	attacker := &l.state.Agents[attackerIdx]
	defender := &l.state.Agents[defenderIdx]
	intensity := clampF(damage/30, 0.1, 1)
	if critical {
		intensity = clampF(intensity*1.5, 0.1, 1)
	}
	l.hitEvents = append(l.hitEvents, game.HitImpactEvent{
		PositionX:  defender.PositionX,
		AttackerID: attacker.ID,
		DefenderID: defender.ID,
		Damage:     damage,
		Critical:   critical,
		Reversed:   reversed,
		Blocked:    blocked,
		Intensity:  intensity,
	})
}

// --- Phase 7: reaction --------------------------------------------------

// reactionPhase re-runs the FSM with zero time advance so reactions pushed
// during combat (stun, knockdown, finisher release) land inside the same
// tick, then runs the comeback trigger/expiry checks.
func (l *MatchLoop) reactionPhase() {
	for i := 0; i < 2; i++ {
		l.fsm[i].Update(0)
		l.syncFighter(i)
		l.handleEffects(i)
	}

	for i := 0; i < 2; i++ {
		agent := &l.state.Agents[i]
		if agent.ComebackActive {
			if end, reason := l.comeback.ShouldEnd(agent); end {
				l.apply(EndComeback{Agent: i, CooldownTicks: ComebackCooldownTicks})
				l.apply(AppendLog{
					Type:   game.LogComebackEnd,
					Detail: fmt.Sprintf("%s's comeback ends (%s)", agent.Name, reason),
					Data:   map[string]interface{}{"agent": agent.ID, "reason": string(reason)},
				})
			}
			continue
		}
		if l.comeback.CheckTrigger(l.state, i) {
			l.apply(StartComeback{Agent: i})
			l.apply(AddMomentum{Agent: i, Amount: 15})
			l.apply(AppendLog{
				Type:   game.LogComebackTrigger,
				Detail: fmt.Sprintf("%s fires up", agent.Name),
				Data:   map[string]interface{}{"agent": agent.ID},
			})
		}
	}
}

// --- Phase 8: win check -------------------------------------------------

func (l *MatchLoop) winCheckPhase() {
	s := l.state

	// Knockout.
	for i := 0; i < 2; i++ {
		if s.Agents[i].Health <= 0 {
			winner := game.Opponent(i)
			// Double KO in one tick: total damage dealt decides.
			if s.Agents[winner].Health <= 0 &&
				s.Agents[i].Stats.DamageDealt > s.Agents[winner].Stats.DamageDealt {
				winner, i = i, winner
			}
			l.finish(winner, i, game.MethodKnockout)
			return
		}
	}

	// Technical knockout on the fourth knockdown.
	for i := 0; i < 2; i++ {
		if s.Agents[i].Knockdowns >= tkoKnockdowns {
			l.finish(game.Opponent(i), i, game.MethodTKO)
			return
		}
	}

	// Time limit, with the health-then-damage tie-break.
	if s.Elapsed >= s.TimeLimit || s.Tick >= l.maxTicks {
		h0, h1 := s.Agents[0].HealthFrac(), s.Agents[1].HealthFrac()
		var winner int
		if absF(h0-h1) <= timeoutHealthEps {
			if s.Agents[0].Stats.DamageDealt >= s.Agents[1].Stats.DamageDealt {
				winner = 0
			} else {
				winner = 1
			}
		} else if h0 > h1 {
			winner = 0
		} else {
			winner = 1
		}
		l.finish(winner, game.Opponent(winner), game.MethodTimeout)
	}
}

func (l *MatchLoop) finish(winnerIdx, loserIdx int, method string) {
	s := l.state
	result := game.MatchResult{
		WinnerID: s.Agents[winnerIdx].ID,
		LoserID:  s.Agents[loserIdx].ID,
		Method:   method,
		Duration: s.Elapsed,
	}
	result.Rating = CalculateRating(s)
	l.apply(AppendLog{
		Type:   game.LogMatchEnd,
		Detail: fmt.Sprintf("%s defeats %s by %s", s.Agents[winnerIdx].Name, s.Agents[loserIdx].Name, method),
		Data: map[string]interface{}{
			"winner": result.WinnerID,
			"loser":  result.LoserID,
			"method": method,
			"rating": result.Rating,
		},
	})
	l.apply(FinishMatch{Result: result})
}
