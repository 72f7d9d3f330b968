package service

import (
	"github.com/MdAyman7/wweagentsfun-sub000/internal/config"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

func serviceTestConfig() *config.LoadedConfig {
	return &config.LoadedConfig{
		Moves: []game.MoveDef{
			{
				ID: "jab", Name: "Jab", Category: game.CategoryStrike, Tier: game.TierStandard,
				WindupFrames: 6, ActiveFrames: 4, RecoveryFrames: 8,
				Damage: 5, StaminaCost: 3, MomentumGain: 3,
				TargetRegion: game.RegionHead, Hitbox: game.Hitbox{Range: 1.2},
				ReversalWindow: 3,
			},
			{
				ID: "hook", Name: "Hook", Category: game.CategoryStrike, Tier: game.TierStandard,
				WindupFrames: 10, ActiveFrames: 5, RecoveryFrames: 14,
				Damage: 9, StaminaCost: 5, MomentumGain: 5,
				TargetRegion: game.RegionHead, Hitbox: game.Hitbox{Range: 1.1},
				ReversalWindow: 5,
			},
			{
				ID: "body_slam", Name: "Body Slam", Category: game.CategoryGrapple, Tier: game.TierStandard,
				WindupFrames: 18, ActiveFrames: 6, RecoveryFrames: 22,
				Damage: 14, StaminaCost: 9, MomentumGain: 8,
				TargetRegion: game.RegionBody, Hitbox: game.Hitbox{Range: 0.9},
				ReversalWindow: 8,
			},
			{
				ID: "dropkick", Name: "Dropkick", Category: game.CategoryAerial, Tier: game.TierSignature,
				WindupFrames: 14, ActiveFrames: 5, RecoveryFrames: 26,
				Damage: 18, StaminaCost: 14, MomentumGain: 12,
				TargetRegion: game.RegionBody, Hitbox: game.Hitbox{Range: 1.6},
				ReversalWindow: 6,
			},
		},
		Combos: []game.ComboDefinition{
			{
				ID:   "one_two_slam",
				Name: "One-Two Slam",
				Steps: []game.ComboStep{
					{MoveID: "hook", WindowFrames: 30},
					{MoveID: "jab", WindowFrames: 30},
					{MoveID: "body_slam", WindowFrames: 0},
				},
				DamageScale: 1.1, StaminaScale: 0.9, MomentumBonus: 2,
				CooldownTicks: 120, UnlocksFinisher: true,
			},
		},
		Finishers: []game.FinisherDef{
			{
				ID: "ring_ender", Name: "Ring Ender", Moveset: "brawler",
				SetupFrames: 40, ImpactFrames: 12,
				Damage: 30, StaminaCost: 20, MomentumThreshold: 80,
				Hitbox: game.Hitbox{Range: 1.0},
			},
			{
				ID: "sky_dive", Name: "Sky Dive", Moveset: "highflyer",
				SetupFrames: 50, ImpactFrames: 10,
				Damage: 26, StaminaCost: 18, MomentumThreshold: 80,
				Hitbox: game.Hitbox{Range: 1.4},
			},
		},
		Archetypes: map[string]game.Archetype{
			"brawler": {
				Name:    "brawler",
				Moveset: "brawler",
				Personality: game.Personality{
					Aggression: 0.8, StrikePreference: 0.9, GrapplePreference: 0.6,
					AerialPreference: 0.2, SubmissionPreference: 0.3,
					Showboat: 0.4, Resilience: 0.7,
				},
				PsychProfile: game.PsychProfile{
					BaseConfidence: 0.6, Composure: 0.5, Adaptability: 0.4,
					Aggression: 0.8, Showmanship: 0.4, RiskTolerance: 0.6, KillerInstinct: 0.7,
				},
			},
			"highflyer": {
				Name:    "highflyer",
				Moveset: "highflyer",
				Personality: game.Personality{
					Aggression: 0.6, StrikePreference: 0.5, GrapplePreference: 0.3,
					AerialPreference: 0.9, SubmissionPreference: 0.2,
					Showboat: 0.7, Resilience: 0.5,
				},
				PsychProfile: game.PsychProfile{
					BaseConfidence: 0.7, Composure: 0.6, Adaptability: 0.8,
					Aggression: 0.6, Showmanship: 0.8, RiskTolerance: 0.8, KillerInstinct: 0.5,
				},
			},
		},

		ServerAddress:    ":8080",
		DefaultTimeLimit: 90,
		TickRate:         60,
	}
}

func serviceTestRequest(seed int64) MatchRequest {
	return MatchRequest{
		Seed:      &seed,
		Wrestler1: game.WrestlerInput{Name: "Bruiser", Archetype: "brawler"},
		Wrestler2: game.WrestlerInput{Name: "Comet", Archetype: "highflyer"},
	}
}
