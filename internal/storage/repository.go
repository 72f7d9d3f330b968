package storage

import (
	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

type Repository interface {
	CreateMatch(m *game.MatchRecord) error
	GetMatchByUUID(uuid string) (*game.MatchRecord, error)
	// GetMatchLog returns the persisted log rows of a match in tick order.
	GetMatchLog(matchID uint) ([]game.MatchLogRecord, error)
	ListRecentMatches(limit int) ([]game.MatchRecord, error)

	// UpdateStatsOnMatchEnd upserts both wrestler profiles with the match
	// outcome.
	UpdateStatsOnMatchEnd(m *game.MatchRecord) error
	GetProfileByName(name string) (*game.WrestlerProfile, error)
	// Leaderboard
	GetTopWrestlers(limit int) ([]game.WrestlerProfile, error)
}
