package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validContent = `{
  "server": {"address": ":9090"},
  "match": {"default_time_limit": 180, "tick_rate": 60},
  "move_list": [
    {"id": "jab", "name": "Jab", "category": "strike", "tier": "standard",
     "windup_frames": 6, "active_frames": 4, "recovery_frames": 8,
     "damage": 5, "stamina_cost": 3, "momentum_gain": 3,
     "target_region": "head", "hitbox": {"range": 1.2}, "reversal_window": 3},
    {"id": "hook", "name": "Hook", "category": "strike", "tier": "standard",
     "windup_frames": 10, "active_frames": 5, "recovery_frames": 14,
     "damage": 9, "stamina_cost": 5, "momentum_gain": 5,
     "target_region": "head", "hitbox": {"range": 1.1}, "reversal_window": 5}
  ],
  "combo_list": [
    {"id": "one_two", "name": "One-Two",
     "steps": [{"move_id": "jab", "window_frames": 30}, {"move_id": "hook", "window_frames": 0}],
     "damage_scale": 1.1, "stamina_scale": 0.9, "momentum_bonus": 2, "cooldown_ticks": 120}
  ],
  "finisher_list": [
    {"id": "ender", "name": "Ender", "moveset": "brawler",
     "setup_frames": 40, "impact_frames": 12,
     "damage": 30, "stamina_cost": 20, "momentum_threshold": 80, "hitbox": {"range": 1.0}}
  ],
  "archetype_list": [
    {"name": "Brawler", "moveset": "brawler",
     "personality": {"aggression": 0.8, "strike_preference": 0.9, "grapple_preference": 0.5,
       "aerial_preference": 0.2, "submission_preference": 0.3, "showboat": 0.4, "resilience": 0.7},
     "psych_profile": {"base_confidence": 0.6, "composure": 0.5, "adaptability": 0.4,
       "aggression": 0.8, "showmanship": 0.4, "risk_tolerance": 0.6, "killer_instinct": 0.7}}
  ]
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kayfabe_config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigValid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validContent))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Moves) != 2 || len(cfg.Combos) != 1 || len(cfg.Finishers) != 1 {
		t.Fatalf("loaded counts: moves=%d combos=%d finishers=%d", len(cfg.Moves), len(cfg.Combos), len(cfg.Finishers))
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("address = %q, want :9090", cfg.ServerAddress)
	}
	if cfg.DefaultTimeLimit != 180 || cfg.TickRate != 60 {
		t.Fatalf("match defaults: %v/%d", cfg.DefaultTimeLimit, cfg.TickRate)
	}
	if _, ok := cfg.Archetypes["brawler"]; !ok {
		t.Fatal("archetype not indexed by lowercase name")
	}

	content := cfg.Content()
	if len(content.Moves) != 2 || len(content.Archetypes) != 1 {
		t.Fatalf("content bundle: %d moves, %d archetypes", len(content.Moves), len(content.Archetypes))
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestLoadConfigRejectsBadContent(t *testing.T) {
	cases := map[string]string{
		"empty move list":      `{"move_list": [], "archetype_list": [{"name": "x", "moveset": "y"}]}`,
		"unparseable":          `{not json`,
		"duplicate move id":    `{"move_list": [{"id": "a", "category": "strike", "tier": "standard", "target_region": "head", "damage": 1, "hitbox": {"range": 1}}, {"id": "a", "category": "strike", "tier": "standard", "target_region": "head", "damage": 1, "hitbox": {"range": 1}}], "archetype_list": [{"name": "x", "moveset": "y"}]}`,
		"bad category":         `{"move_list": [{"id": "a", "category": "psychic", "tier": "standard", "target_region": "head", "damage": 1, "hitbox": {"range": 1}}], "archetype_list": [{"name": "x", "moveset": "y"}]}`,
		"combo unknown move":   `{"move_list": [{"id": "a", "category": "strike", "tier": "standard", "target_region": "head", "damage": 1, "hitbox": {"range": 1}}], "combo_list": [{"id": "c", "steps": [{"move_id": "a", "window_frames": 10}, {"move_id": "ghost"}], "damage_scale": 1, "stamina_scale": 1}], "archetype_list": [{"name": "x", "moveset": "y"}]}`,
		"archetype no fin":     `{"move_list": [{"id": "a", "category": "strike", "tier": "standard", "target_region": "head", "damage": 1, "hitbox": {"range": 1}}], "archetype_list": [{"name": "x", "moveset": "orphan"}]}`,
		"trait out of range":   `{"move_list": [{"id": "a", "category": "strike", "tier": "standard", "target_region": "head", "damage": 1, "hitbox": {"range": 1}}], "finisher_list": [{"id": "f", "moveset": "m", "setup_frames": 10, "impact_frames": 5, "damage": 20, "momentum_threshold": 80}], "archetype_list": [{"name": "x", "moveset": "m", "psych_profile": {"composure": 1.5}}]}`,
		"momentum over 100":    `{"move_list": [{"id": "a", "category": "strike", "tier": "standard", "target_region": "head", "damage": 1, "hitbox": {"range": 1}}], "finisher_list": [{"id": "f", "moveset": "m", "setup_frames": 10, "impact_frames": 5, "damage": 20, "momentum_threshold": 150}], "archetype_list": [{"name": "x", "moveset": "m"}]}`,
		"duplicate archetype":  `{"move_list": [{"id": "a", "category": "strike", "tier": "standard", "target_region": "head", "damage": 1, "hitbox": {"range": 1}}], "finisher_list": [{"id": "f", "moveset": "m", "setup_frames": 10, "impact_frames": 5, "damage": 20, "momentum_threshold": 80}], "archetype_list": [{"name": "X", "moveset": "m"}, {"name": "x", "moveset": "m"}]}`,
		"single step combo":    `{"move_list": [{"id": "a", "category": "strike", "tier": "standard", "target_region": "head", "damage": 1, "hitbox": {"range": 1}}], "combo_list": [{"id": "c", "steps": [{"move_id": "a"}], "damage_scale": 1, "stamina_scale": 1}], "archetype_list": [{"name": "x", "moveset": "y"}]}`,
	}
	for name, content := range cases {
		if _, err := LoadConfig(writeConfig(t, content)); err == nil {
			t.Fatalf("%s: accepted", name)
		}
	}
}

func TestLoadProcessDefaults(t *testing.T) {
	for _, key := range []string{"KAYFABE_ADDRESS", "KAYFABE_DB_PATH", "KAYFABE_CONFIG", "KAYFABE_DEBUG"} {
		os.Unsetenv(key)
	}
	p, err := LoadProcess()
	if err != nil {
		t.Fatalf("LoadProcess: %v", err)
	}
	if p.DatabasePath != "kayfabe.db" || p.ContentPath != "kayfabe_config.json" {
		t.Fatalf("defaults: %+v", p)
	}

	t.Setenv("KAYFABE_DB_PATH", "/tmp/x.db")
	p, err = LoadProcess()
	if err != nil {
		t.Fatalf("LoadProcess: %v", err)
	}
	if p.DatabasePath != "/tmp/x.db" {
		t.Fatalf("env override ignored: %+v", p)
	}
}
