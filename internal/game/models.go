package game

// Region identifies a body region targeted by moves and tracked for
// accumulated damage.
type Region string

const (
	RegionHead Region = "head"
	RegionBody Region = "body"
	RegionLegs Region = "legs"
)

// FighterPhase mirrors the fighter state machine's current state inside
// MatchState so read-only consumers (renderer, debugger, AI) never touch the
// FSM directly.
type FighterPhase string

const (
	PhaseIdle           FighterPhase = "idle"
	PhaseMoving         FighterPhase = "moving"
	PhaseAttackWindup   FighterPhase = "attack_windup"
	PhaseAttackActive   FighterPhase = "attack_active"
	PhaseAttackRecovery FighterPhase = "attack_recovery"
	PhaseBlocking       FighterPhase = "blocking"
	PhaseStunned        FighterPhase = "stunned"
	PhaseKnockedDown    FighterPhase = "knocked_down"
	PhaseGettingUp      FighterPhase = "getting_up"
	PhaseTaunting       FighterPhase = "taunting"
	PhaseComboWindow    FighterPhase = "combo_window"
	PhaseFinisherSetup  FighterPhase = "finisher_setup"
	PhaseFinisherImpact FighterPhase = "finisher_impact"
	PhaseFinisherLocked FighterPhase = "finisher_locked"
)

// Emotion is one of the seven emotional states a wrestler can be in.
type Emotion string

const (
	EmotionCalm          Emotion = "calm"
	EmotionDominating    Emotion = "dominating"
	EmotionFrustrated    Emotion = "frustrated"
	EmotionPanicking     Emotion = "panicking"
	EmotionDesperate     Emotion = "desperate"
	EmotionOverconfident Emotion = "overconfident"
	EmotionClutch        Emotion = "clutch"
)

// Personality holds the static in-ring tendencies of a wrestler. All values
// are normalized to [0,1].
type Personality struct {
	Aggression           float64 `json:"aggression"`
	StrikePreference     float64 `json:"strike_preference"`
	GrapplePreference    float64 `json:"grapple_preference"`
	AerialPreference     float64 `json:"aerial_preference"`
	SubmissionPreference float64 `json:"submission_preference"`
	Showboat             float64 `json:"showboat"`
	Resilience           float64 `json:"resilience"`
}

// PsychProfile holds the seven static psychological traits that feed the
// emotion machine and the effective-modifier formulas. All values are
// normalized to [0,1].
type PsychProfile struct {
	BaseConfidence float64 `json:"base_confidence"`
	Composure      float64 `json:"composure"`
	Adaptability   float64 `json:"adaptability"`
	Aggression     float64 `json:"aggression"`
	Showmanship    float64 `json:"showmanship"`
	RiskTolerance  float64 `json:"risk_tolerance"`
	KillerInstinct float64 `json:"killer_instinct"`
}

// AgentPsychState is the dynamic psychological state of one wrestler.
// Only the emotion machine writes it (through the reducer).
type AgentPsychState struct {
	Emotion            Emotion `json:"emotion"`
	EmotionDuration    int     `json:"emotion_duration"`
	Confidence         float64 `json:"confidence"`
	CrowdHeat          float64 `json:"crowd_heat"`
	HitStreak          int     `json:"hit_streak"`
	TakenStreak        int     `json:"taken_streak"`
	NearKnockdowns     int     `json:"near_knockdowns"`
	BestComboLanded    int     `json:"best_combo_landed"`
	WorstComboReceived int     `json:"worst_combo_received"`
	MomentumTrend      float64 `json:"momentum_trend"`
}

// RegionDamage accumulates damage per body region; the resolver reads it to
// scale vulnerability of already-worked regions.
type RegionDamage struct {
	Head float64 `json:"head"`
	Body float64 `json:"body"`
	Legs float64 `json:"legs"`
}

// Of returns the accumulated damage for a region.
func (r RegionDamage) Of(region Region) float64 {
	switch region {
	case RegionHead:
		return r.Head
	case RegionBody:
		return r.Body
	case RegionLegs:
		return r.Legs
	}
	return 0
}

// AgentStats counts match facts used for the timeout tie-break, the rating
// formula and the persisted leaderboard.
type AgentStats struct {
	DamageDealt      float64 `json:"damage_dealt"`
	DamageTaken      float64 `json:"damage_taken"`
	HitsLanded       int     `json:"hits_landed"`
	HitsMissed       int     `json:"hits_missed"`
	Reversals        int     `json:"reversals"`
	Criticals        int     `json:"criticals"`
	CombosCompleted  int     `json:"combos_completed"`
	Taunts           int     `json:"taunts"`
	Mistakes         int     `json:"mistakes"`
	FinishersLanded  int     `json:"finishers_landed"`
	FinishersEscaped int     `json:"finishers_escaped"`
}

// AgentState is the full per-wrestler slice of MatchState.
type AgentState struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
	Moveset   string `json:"moveset"`
	Color     string `json:"color"`
	Height    string `json:"height"`
	Build     string `json:"build"`

	Health     float64 `json:"health"`
	MaxHealth  float64 `json:"max_health"`
	Stamina    float64 `json:"stamina"`
	MaxStamina float64 `json:"max_stamina"`
	// Momentum is the 0-100 meter gating signatures and finishers.
	Momentum     float64      `json:"momentum"`
	RegionDamage RegionDamage `json:"region_damage"`

	Phase        FighterPhase `json:"phase"`
	ActiveMoveID string       `json:"active_move_id"`
	PositionX    float64      `json:"position_x"`

	Knockdowns        int  `json:"knockdowns"`
	ComebackActive    bool `json:"comeback_active"`
	ComebackTicksLeft int  `json:"comeback_ticks_left"`

	Personality  Personality     `json:"personality"`
	PsychProfile PsychProfile    `json:"psych_profile"`
	Psych        AgentPsychState `json:"psych"`
	Stats        AgentStats      `json:"stats"`
}

// HealthFrac returns health as a fraction of max health.
func (a *AgentState) HealthFrac() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return a.Health / a.MaxHealth
}

// StaminaFrac returns stamina as a fraction of max stamina.
func (a *AgentState) StaminaFrac() float64 {
	if a.MaxStamina <= 0 {
		return 0
	}
	return a.Stamina / a.MaxStamina
}

// Match result methods.
const (
	MethodKnockout = "knockout"
	MethodTKO      = "tko"
	MethodTimeout  = "timeout"
)

// MatchResult is the final outcome of a match. Nil until the match ends.
type MatchResult struct {
	WinnerID string  `json:"winner_id"`
	LoserID  string  `json:"loser_id"`
	Method   string  `json:"method"`
	Duration float64 `json:"duration"`
	Rating   float64 `json:"rating"`
}

// MatchState is the root simulation state. It is owned by the reducer;
// every other component reads it and requests changes via typed actions.
type MatchState struct {
	Tick      int     `json:"tick"`
	Elapsed   float64 `json:"elapsed"`
	TimeLimit float64 `json:"time_limit"`
	Running   bool    `json:"running"`

	Result *MatchResult    `json:"result"`
	Agents [2]AgentState   `json:"agents"`
	Log    []MatchLogEntry `json:"log"`

	// ComebackCooldown is the global tick countdown preventing back-to-back
	// comeback triggers for either wrestler.
	ComebackCooldown int `json:"comeback_cooldown"`
}

// AgentIndex returns the slot (0 or 1) of the agent with the given id, or -1.
func (s *MatchState) AgentIndex(id string) int {
	for i := range s.Agents {
		if s.Agents[i].ID == id {
			return i
		}
	}
	return -1
}

// Opponent returns the index of the other agent.
func Opponent(idx int) int { return 1 - idx }

// Clone returns a deep copy of the state safe to hand to external consumers
// (renderer, debugger) while the simulation keeps mutating the original.
func (s *MatchState) Clone() *MatchState {
	out := *s
	out.Log = make([]MatchLogEntry, len(s.Log))
	copy(out.Log, s.Log)
	if s.Result != nil {
		r := *s.Result
		out.Result = &r
	}
	return &out
}

// HitImpactEvent is the destructively-read rendering handoff produced by the
// combat phase. The presentation layer drains the queue once per frame.
type HitImpactEvent struct {
	PositionX  float64 `json:"position_x"`
	AttackerID string  `json:"attacker_id"`
	DefenderID string  `json:"defender_id"`
	Damage     float64 `json:"damage"`
	Critical   bool    `json:"critical"`
	Reversed   bool    `json:"reversed"`
	Blocked    bool    `json:"blocked"`
	Intensity  float64 `json:"intensity"`
}

// WrestlerInput is the external construction payload for one wrestler.
// Archetype selects the moveset, the psych-profile preset and the default
// personality; explicit Personality or PsychProfile values override the
// preset wholesale when present.
type WrestlerInput struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Health       float64       `json:"health"`
	Stamina      float64       `json:"stamina"`
	Archetype    string        `json:"archetype"`
	Personality  *Personality  `json:"personality,omitempty"`
	PsychProfile *PsychProfile `json:"psych_profile,omitempty"`
	Color        string        `json:"color"`
	Height       string        `json:"height"`
	Build        string        `json:"build"`
}
