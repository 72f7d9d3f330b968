package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/engine"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

// Process holds the environment-driven runtime settings. The JSON content
// file stays data-only; everything deployment-specific comes from env vars.
type Process struct {
	Address      string `env:"KAYFABE_ADDRESS"`
	DatabasePath string `env:"KAYFABE_DB_PATH" envDefault:"kayfabe.db"`
	ContentPath  string `env:"KAYFABE_CONFIG" envDefault:"kayfabe_config.json"`
	Debug        bool   `env:"KAYFABE_DEBUG"`
}

// LoadProcess parses the process settings from the environment.
func LoadProcess() (Process, error) {
	var p Process
	if err := env.Parse(&p); err != nil {
		return Process{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return p, nil
}

type rawConfig struct {
	MoveList      []game.MoveDef         `json:"move_list"`
	ComboList     []game.ComboDefinition `json:"combo_list"`
	FinisherList  []game.FinisherDef     `json:"finisher_list"`
	ArchetypeList []game.Archetype       `json:"archetype_list"`
	Server        *struct {
		Address string `json:"address"`
	} `json:"server"`
	Match *struct {
		DefaultTimeLimit float64 `json:"default_time_limit"`
		TickRate         int     `json:"tick_rate"`
	} `json:"match"`
}

// LoadedConfig is the validated content bundle plus server defaults.
type LoadedConfig struct {
	Moves      []game.MoveDef
	Combos     []game.ComboDefinition
	Finishers  []game.FinisherDef
	Archetypes map[string]game.Archetype

	ServerAddress    string
	DefaultTimeLimit float64
	TickRate         int
}

// LoadConfig reads and validates the content file at path. It requires the
// keys `move_list` and `archetype_list` (snake_case) and cross-checks every
// reference between the four lists.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.MoveList) == 0 {
		return nil, fmt.Errorf("config file %s: move_list is empty (provide 'move_list' array)", path)
	}
	if len(rc.ArchetypeList) == 0 {
		return nil, fmt.Errorf("config file %s: archetype_list is empty (provide 'archetype_list' array)", path)
	}

	moveIDs := make(map[string]struct{}, len(rc.MoveList))
	for _, m := range rc.MoveList {
		if strings.TrimSpace(m.ID) == "" {
			return nil, fmt.Errorf("config file %s: move entry missing 'id'", path)
		}
		if _, exists := moveIDs[m.ID]; exists {
			return nil, fmt.Errorf("config file %s: duplicate move id '%s'", path, m.ID)
		}
		moveIDs[m.ID] = struct{}{}
		if err := validateMove(m); err != nil {
			return nil, fmt.Errorf("config file %s: move '%s': %w", path, m.ID, err)
		}
	}

	comboIDs := make(map[string]struct{}, len(rc.ComboList))
	for _, c := range rc.ComboList {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("config file %s: combo entry missing 'id'", path)
		}
		if _, exists := comboIDs[c.ID]; exists {
			return nil, fmt.Errorf("config file %s: duplicate combo id '%s'", path, c.ID)
		}
		comboIDs[c.ID] = struct{}{}
		if len(c.Steps) < 2 {
			return nil, fmt.Errorf("config file %s: combo '%s' needs at least 2 steps", path, c.ID)
		}
		for i, step := range c.Steps {
			if _, known := moveIDs[step.MoveID]; !known {
				return nil, fmt.Errorf("config file %s: combo '%s' step %d references unknown move '%s'", path, c.ID, i, step.MoveID)
			}
			if i < len(c.Steps)-1 && step.WindowFrames <= 0 {
				return nil, fmt.Errorf("config file %s: combo '%s' step %d needs a positive window", path, c.ID, i)
			}
		}
		if c.DamageScale <= 0 || c.StaminaScale <= 0 {
			return nil, fmt.Errorf("config file %s: combo '%s' scales must be positive", path, c.ID)
		}
	}

	finByMoveset := make(map[string]struct{}, len(rc.FinisherList))
	for _, f := range rc.FinisherList {
		if strings.TrimSpace(f.ID) == "" || strings.TrimSpace(f.Moveset) == "" {
			return nil, fmt.Errorf("config file %s: finisher entry missing 'id' or 'moveset'", path)
		}
		if _, exists := finByMoveset[f.Moveset]; exists {
			return nil, fmt.Errorf("config file %s: duplicate finisher for moveset '%s'", path, f.Moveset)
		}
		finByMoveset[f.Moveset] = struct{}{}
		if f.Damage <= 0 || f.SetupFrames <= 0 || f.ImpactFrames <= 0 {
			return nil, fmt.Errorf("config file %s: finisher '%s' needs positive damage and frame counts", path, f.ID)
		}
		if f.MomentumThreshold <= 0 || f.MomentumThreshold > 100 {
			return nil, fmt.Errorf("config file %s: finisher '%s' momentum threshold must be in (0,100]", path, f.ID)
		}
	}

	archetypes := make(map[string]game.Archetype, len(rc.ArchetypeList))
	for _, a := range rc.ArchetypeList {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil, fmt.Errorf("config file %s: archetype entry missing 'name'", path)
		}
		ln := strings.ToLower(name)
		if _, exists := archetypes[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate archetype name '%s'", path, a.Name)
		}
		if _, known := finByMoveset[a.Moveset]; !known {
			return nil, fmt.Errorf("config file %s: archetype '%s' moveset '%s' has no finisher", path, a.Name, a.Moveset)
		}
		if err := validateTraits(a.PsychProfile); err != nil {
			return nil, fmt.Errorf("config file %s: archetype '%s': %w", path, a.Name, err)
		}
		archetypes[ln] = a
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	timeLimit := 300.0
	tickRate := 60
	if rc.Match != nil {
		if rc.Match.DefaultTimeLimit > 0 {
			timeLimit = rc.Match.DefaultTimeLimit
		}
		if rc.Match.TickRate > 0 {
			tickRate = rc.Match.TickRate
		}
	}

	return &LoadedConfig{
		Moves:            rc.MoveList,
		Combos:           rc.ComboList,
		Finishers:        rc.FinisherList,
		Archetypes:       archetypes,
		ServerAddress:    addr,
		DefaultTimeLimit: timeLimit,
		TickRate:         tickRate,
	}, nil
}

func validateMove(m game.MoveDef) error {
	switch m.Category {
	case game.CategoryStrike, game.CategoryGrapple, game.CategoryAerial, game.CategorySubmission:
	default:
		return fmt.Errorf("unknown category '%s'", m.Category)
	}
	switch m.Tier {
	case game.TierStandard, game.TierSignature:
	default:
		return fmt.Errorf("unknown tier '%s'", m.Tier)
	}
	switch m.TargetRegion {
	case game.RegionHead, game.RegionBody, game.RegionLegs:
	default:
		return fmt.Errorf("unknown target region '%s'", m.TargetRegion)
	}
	if m.Damage <= 0 {
		return fmt.Errorf("damage must be positive")
	}
	if m.StaminaCost < 0 {
		return fmt.Errorf("stamina cost must not be negative")
	}
	if m.Hitbox.Range <= 0 {
		return fmt.Errorf("hitbox range must be positive")
	}
	if m.WindupFrames < 0 || m.ActiveFrames < 0 || m.RecoveryFrames < 0 {
		return fmt.Errorf("frame counts must not be negative")
	}
	if m.ReversalWindow < 0 {
		return fmt.Errorf("reversal window must not be negative")
	}
	return nil
}

func validateTraits(p game.PsychProfile) error {
	traits := map[string]float64{
		"base_confidence": p.BaseConfidence,
		"composure":       p.Composure,
		"adaptability":    p.Adaptability,
		"aggression":      p.Aggression,
		"showmanship":     p.Showmanship,
		"risk_tolerance":  p.RiskTolerance,
		"killer_instinct": p.KillerInstinct,
	}
	for name, v := range traits {
		if v < 0 || v > 1 {
			return fmt.Errorf("trait '%s' value %v outside [0,1]", name, v)
		}
	}
	return nil
}

// Content converts the loaded lists into the engine's content bundle.
func (c *LoadedConfig) Content() engine.Content {
	return engine.Content{
		Moves:      c.Moves,
		Combos:     c.Combos,
		Finishers:  c.Finishers,
		Archetypes: c.Archetypes,
	}
}
