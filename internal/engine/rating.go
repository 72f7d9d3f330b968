package engine

import "github.com/MdAyman7/wweagentsfun-sub000/internal/game"

// CalculateRating scores a finished match on the 0-5 star scale. It reads
// the stat counters plus the match log (the log is the authority on whether
// rare events like comebacks and finishers actually happened).
func CalculateRating(s *game.MatchState) float64 {
	rating := 1.5

	reversals := s.Agents[0].Stats.Reversals + s.Agents[1].Stats.Reversals
	rating += clampF(float64(reversals)*0.08, 0, 0.6)

	combos := s.Agents[0].Stats.CombosCompleted + s.Agents[1].Stats.CombosCompleted
	rating += clampF(float64(combos)*0.15, 0, 0.6)

	knockdowns := s.Agents[0].Knockdowns + s.Agents[1].Knockdowns
	rating += clampF(float64(knockdowns)*0.1, 0, 0.5)

	for _, entry := range s.Log {
		switch entry.Type {
		case game.LogFinisherImpact:
			rating += 0.5
		case game.LogFinisherCounter:
			rating += 0.3
		case game.LogComebackTrigger:
			rating += 0.4
		}
	}

	// Competitive matches rate higher than squashes.
	diff := absF(s.Agents[0].HealthFrac() - s.Agents[1].HealthFrac())
	if diff < 0.15 {
		rating += 0.3
	}

	// Squash-length matches lose a star's worth of drama.
	if s.Elapsed < 20 {
		rating -= 0.5
	}

	heat := (s.Agents[0].Psych.CrowdHeat + s.Agents[1].Psych.CrowdHeat) / 2
	if heat > 0.3 {
		rating += 0.2
	}

	return clampF(rating, 0, 5)
}
