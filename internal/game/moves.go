package game

// MoveCategory groups moves for personality bias and critical bonuses.
type MoveCategory string

const (
	CategoryStrike     MoveCategory = "strike"
	CategoryGrapple    MoveCategory = "grapple"
	CategoryAerial     MoveCategory = "aerial"
	CategorySubmission MoveCategory = "submission"
)

// MoveTier gates access by momentum: signatures need 50+, finishers 80+.
type MoveTier string

const (
	TierStandard  MoveTier = "standard"
	TierSignature MoveTier = "signature"
)

// Hitbox describes the reach of a move on the simulated axis. Angle is kept
// for the presentation layer; the engine only consults Range.
type Hitbox struct {
	Range float64 `json:"range"`
	Angle float64 `json:"angle"`
}

// MoveDef is an immutable move definition. Instances are created once at
// registry construction and never mutated afterwards.
type MoveDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category MoveCategory `json:"category"`
	Tier     MoveTier     `json:"tier"`

	WindupFrames   int `json:"windup_frames"`
	ActiveFrames   int `json:"active_frames"`
	RecoveryFrames int `json:"recovery_frames"`

	Damage       float64 `json:"damage"`
	StaminaCost  float64 `json:"stamina_cost"`
	MomentumGain float64 `json:"momentum_gain"`

	TargetRegion Region `json:"target_region"`
	Hitbox       Hitbox `json:"hitbox"`

	// ReversalWindow is the number of active frames during which a defender
	// may reverse. Zero means the move can never be reversed.
	ReversalWindow int `json:"reversal_window"`
}

// ComboStep is one link in a combo chain: the expected move and how many
// frames the follow-up window stays open after the previous hit.
type ComboStep struct {
	MoveID       string `json:"move_id"`
	WindowFrames int    `json:"window_frames"`
}

// ComboDefinition is an ordered chain of moves with scaling applied while
// the chain is alive.
type ComboDefinition struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Steps []ComboStep `json:"steps"`

	// DamageScale and StaminaScale are per-step compounding factors applied
	// to hits landed inside the chain.
	DamageScale   float64 `json:"damage_scale"`
	StaminaScale  float64 `json:"stamina_scale"`
	MomentumBonus float64 `json:"momentum_bonus"`

	CooldownTicks   int  `json:"cooldown_ticks"`
	UnlocksFinisher bool `json:"unlocks_finisher"`
}

// FinisherDef describes one archetype's match-ending move. Finishers live in
// their own table because their resolution path skips dodge and reversal.
type FinisherDef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Moveset string `json:"moveset"`

	SetupFrames  int `json:"setup_frames"`
	ImpactFrames int `json:"impact_frames"`

	Damage            float64 `json:"damage"`
	StaminaCost       float64 `json:"stamina_cost"`
	MomentumThreshold float64 `json:"momentum_threshold"`
	Hitbox            Hitbox  `json:"hitbox"`
}
