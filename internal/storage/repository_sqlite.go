package storage

import (
	"strings"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateMatch(m *game.MatchRecord) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByUUID(uuid string) (*game.MatchRecord, error) {
	var m game.MatchRecord
	if err := r.db.Where("uuid = ?", uuid).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) GetMatchLog(matchID uint) ([]game.MatchLogRecord, error) {
	var rows []game.MatchLogRecord
	if err := r.db.Where("match_record_id = ?", matchID).
		Order("tick ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sqliteRepository) ListRecentMatches(limit int) ([]game.MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var matches []game.MatchRecord
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *sqliteRepository) UpdateStatsOnMatchEnd(m *game.MatchRecord) error {
	// Helper to upsert one profile and add deltas.
	upsert := func(name, archetype string, wins, losses, draws int, rating float64) error {
		var p game.WrestlerProfile
		if err := r.db.Where("lower(name) = ?", strings.ToLower(name)).First(&p).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				p = game.WrestlerProfile{Name: name}
			} else {
				return err
			}
		}
		p.Archetype = archetype
		p.MatchesPlayed++
		p.Wins += wins
		p.Losses += losses
		p.Draws += draws
		p.TotalRating += rating
		return r.db.Save(&p).Error
	}

	w1Wins, w2Wins := 0, 0
	switch m.WinnerName {
	case m.Wrestler1Name:
		w1Wins = 1
	case m.Wrestler2Name:
		w2Wins = 1
	}
	if err := upsert(m.Wrestler1Name, m.Wrestler1Archetype, w1Wins, 1-w1Wins, 0, m.Rating); err != nil {
		return err
	}
	return upsert(m.Wrestler2Name, m.Wrestler2Archetype, w2Wins, 1-w2Wins, 0, m.Rating)
}

func (r *sqliteRepository) GetProfileByName(name string) (*game.WrestlerProfile, error) {
	var p game.WrestlerProfile
	if err := r.db.Where("lower(name) = ?", strings.ToLower(name)).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.WrestlerProfile{Name: name}, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetTopWrestlers returns top N profiles ordered by Wins desc, then matches
// played desc.
func (r *sqliteRepository) GetTopWrestlers(limit int) ([]game.WrestlerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.WrestlerProfile
	if err := r.db.Model(&game.WrestlerProfile{}).
		Order("wins DESC").
		Order("matches_played DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
