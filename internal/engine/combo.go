package engine

import (
	"math"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

// ComboBreakReason is the fixed vocabulary for combo_break log entries.
type ComboBreakReason string

const (
	BreakMiss          ComboBreakReason = "miss"
	BreakReversed      ComboBreakReason = "reversed"
	BreakHitReceived   ComboBreakReason = "hit_received"
	BreakKnockedDown   ComboBreakReason = "knocked_down"
	BreakWindowExpired ComboBreakReason = "window_expired"
	BreakWrongMove     ComboBreakReason = "wrong_move"
)

// ComboHitOutcome reports what one landed hit did to the chain state.
type ComboHitOutcome struct {
	Started   bool
	Advanced  bool
	Completed bool

	// Broke is set when a wrong move ended an active chain; the move is then
	// still tried as a fresh opener (Started may also be set).
	Broke            bool
	BrokeComboID     string
	ComboID          string
	HitCount         int
	TotalSteps       int
	FinisherUnlocked bool
}

// ComboTracker is the per-fighter chain state machine layered on top of
// resolved hits. The combat phase consults its scaling queries before
// applying hit effects; the decision phase uses the window queries to
// auto-chain while the FSM sits in the combo window.
type ComboTracker struct {
	combos *ComboRegistry

	activeComboID string
	currentStep   int // next expected step index; 0 means no active chain
	hitCount      int
	comboDamage   float64
	cooldowns     map[string]int
}

// NewComboTracker returns an idle tracker.
func NewComboTracker(combos *ComboRegistry) *ComboTracker {
	return &ComboTracker{combos: combos, cooldowns: make(map[string]int)}
}

// Active reports whether a chain is alive.
func (t *ComboTracker) Active() bool { return t.activeComboID != "" }

// ActiveComboID returns the live chain id, or "".
func (t *ComboTracker) ActiveComboID() string { return t.activeComboID }

// Step returns the next expected step index of the live chain.
func (t *ComboTracker) Step() int { return t.currentStep }

// HitCount returns the hits landed inside the live chain.
func (t *ComboTracker) HitCount() int { return t.hitCount }

// ComboDamage returns the damage accumulated by the live chain.
func (t *ComboTracker) ComboDamage() float64 { return t.comboDamage }

// Tick decrements all per-combo cooldowns by one tick.
func (t *ComboTracker) Tick() {
	for id, left := range t.cooldowns {
		if left <= 1 {
			delete(t.cooldowns, id)
			continue
		}
		t.cooldowns[id] = left - 1
	}
}

// OnHitLanded advances, starts or breaks-and-restarts the chain for one
// landed move.
func (t *ComboTracker) OnHitLanded(moveID string, damage float64) ComboHitOutcome {
	var out ComboHitOutcome

	if t.Active() {
		def, ok := t.combos.Get(t.activeComboID)
		if ok && def.Steps[t.currentStep].MoveID == moveID {
			t.currentStep++
			t.hitCount++
			t.comboDamage += damage
			out.Advanced = true
			out.ComboID = t.activeComboID
			out.HitCount = t.hitCount
			out.TotalSteps = len(def.Steps)
			if t.currentStep >= len(def.Steps) {
				out.Completed = true
				out.FinisherUnlocked = def.UnlocksFinisher
				t.cooldowns[def.ID] = def.CooldownTicks
				t.reset()
			}
			return out
		}
		// Wrong move: the chain breaks, but the move still gets tried as a
		// fresh opener below.
		out.Broke = true
		out.BrokeComboID = t.activeComboID
		t.reset()
	}

	for _, id := range t.combos.CombosOpenedBy(moveID) {
		if t.cooldowns[id] > 0 {
			continue
		}
		def, ok := t.combos.Get(id)
		if !ok {
			continue
		}
		t.activeComboID = id
		t.currentStep = 1
		t.hitCount = 1
		t.comboDamage = damage
		out.Started = true
		out.ComboID = id
		out.HitCount = 1
		out.TotalSteps = len(def.Steps)
		if t.currentStep >= len(def.Steps) {
			out.Completed = true
			out.FinisherUnlocked = def.UnlocksFinisher
			t.cooldowns[def.ID] = def.CooldownTicks
			t.reset()
		}
		return out
	}
	return out
}

// OnComboBreak resets the chain unconditionally. Returns the broken chain id
// and whether a chain was actually alive.
func (t *ComboTracker) OnComboBreak(reason ComboBreakReason) (string, bool) {
	if !t.Active() {
		return "", false
	}
	id := t.activeComboID
	t.reset()
	return id, true
}

func (t *ComboTracker) reset() {
	t.activeComboID = ""
	t.currentStep = 0
	t.hitCount = 0
	t.comboDamage = 0
}

// DamageScale returns the compounding damage factor for the next hit of the
// live chain (1.0 when idle).
func (t *ComboTracker) DamageScale() float64 {
	def, ok := t.activeDef()
	if !ok {
		return 1
	}
	return math.Pow(def.DamageScale, float64(t.hitCount))
}

// StaminaScale returns the compounding stamina factor for the next hit of
// the live chain (1.0 when idle).
func (t *ComboTracker) StaminaScale() float64 {
	def, ok := t.activeDef()
	if !ok {
		return 1
	}
	return math.Pow(def.StaminaScale, float64(t.hitCount))
}

// MomentumBonus returns the per-hit momentum bonus of the live chain.
func (t *ComboTracker) MomentumBonus() float64 {
	def, ok := t.activeDef()
	if !ok {
		return 0
	}
	return def.MomentumBonus
}

// WindowFrames returns how long the follow-up window stays open for the
// next expected step, or 0 when no chain is alive.
func (t *ComboTracker) WindowFrames() int {
	def, ok := t.activeDef()
	if !ok {
		return 0
	}
	return def.Steps[t.currentStep].WindowFrames
}

// NextMoveID returns the next expected move of the live chain, or "".
func (t *ComboTracker) NextMoveID() string {
	def, ok := t.activeDef()
	if !ok {
		return ""
	}
	return def.Steps[t.currentStep].MoveID
}

func (t *ComboTracker) activeDef() (game.ComboDefinition, bool) {
	if !t.Active() {
		return game.ComboDefinition{}, false
	}
	def, ok := t.combos.Get(t.activeComboID)
	if !ok || t.currentStep >= len(def.Steps) {
		return game.ComboDefinition{}, false
	}
	return def, ok
}
