package game

import "gorm.io/gorm"

// MatchRecord is the persisted outcome of one simulated match. The seed and
// wrestler inputs are stored so any record can be replayed and verified.
type MatchRecord struct {
	gorm.Model
	UUID      string  `json:"uuid" gorm:"uniqueIndex"`
	Seed      int64   `json:"seed"`
	TimeLimit float64 `json:"time_limit"`
	TickRate  int     `json:"tick_rate"`

	Wrestler1Name      string `json:"wrestler1_name"`
	Wrestler1Archetype string `json:"wrestler1_archetype"`
	Wrestler2Name      string `json:"wrestler2_name"`
	Wrestler2Archetype string `json:"wrestler2_archetype"`
	// InputJSON preserves the exact construction payload for replays.
	InputJSON string `json:"-" gorm:"type:text"`

	WinnerName string  `json:"winner_name"`
	LoserName  string  `json:"loser_name"`
	Method     string  `json:"method"`
	Duration   float64 `json:"duration"`
	Rating     float64 `json:"rating"`
	Ticks      int     `json:"ticks"`

	Logs []MatchLogRecord `json:"-"`
}

// MatchLogRecord is one persisted match log entry row.
type MatchLogRecord struct {
	gorm.Model
	MatchRecordID uint    `json:"-" gorm:"index"`
	Tick          int     `json:"tick"`
	Elapsed       float64 `json:"elapsed"`
	Type          string  `json:"type"`
	Detail        string  `json:"detail"`
	// DataJSON is the marshalled MatchLogEntry.Data payload.
	DataJSON string `json:"data_json" gorm:"type:text"`
}

// WrestlerProfile aggregates per-wrestler results for the leaderboard.
type WrestlerProfile struct {
	gorm.Model
	Name          string  `json:"name" gorm:"uniqueIndex"`
	Archetype     string  `json:"archetype"`
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Draws         int     `json:"draws"`
	TotalRating   float64 `json:"total_rating"`
}
