package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/config"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/constants"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/engine"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/logging"
)

var (
	ErrWrestlerNameRequired = errors.New("both wrestler names are required")
	ErrUnknownArchetype     = errors.New("unknown archetype")
	ErrMatchNotFound        = errors.New("match not found")
)

// MatchRepo is the minimal repository interface required by RunMatch.
type MatchRepo interface {
	CreateMatch(rec *game.MatchRecord) error
	UpdateStatsOnMatchEnd(rec *game.MatchRecord) error
}

// MatchRequest is the payload for starting a match. Seed is optional; when
// absent one is derived from the clock and stored so the match stays
// replayable. TimeLimit falls back to the configured default.
type MatchRequest struct {
	Seed      *int64             `json:"seed,omitempty"`
	TimeLimit float64            `json:"time_limit,omitempty"`
	Wrestler1 game.WrestlerInput `json:"wrestler1"`
	Wrestler2 game.WrestlerInput `json:"wrestler2"`
}

// RunMatch simulates a full match from the request, persists the record with
// its complete log, and folds the outcome into both wrestlers' profiles.
func RunMatch(repo MatchRepo, cfg *config.LoadedConfig, req MatchRequest) (*game.MatchRecord, error) {
	normalizeWrestler(&req.Wrestler1, "w1")
	normalizeWrestler(&req.Wrestler2, "w2")
	if req.Wrestler1.Name == "" || req.Wrestler2.Name == "" {
		return nil, ErrWrestlerNameRequired
	}
	for _, w := range [2]game.WrestlerInput{req.Wrestler1, req.Wrestler2} {
		if _, ok := cfg.Archetypes[w.Archetype]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownArchetype, w.Archetype)
		}
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	timeLimit := req.TimeLimit
	if timeLimit <= 0 {
		timeLimit = cfg.DefaultTimeLimit
	}

	loopCfg := engine.MatchLoopConfig{
		Seed:      seed,
		TimeLimit: timeLimit,
		TickRate:  cfg.TickRate,
		Wrestler1: req.Wrestler1,
		Wrestler2: req.Wrestler2,
	}
	loop, err := engine.NewMatchLoop(loopCfg, cfg.Content())
	if err != nil {
		return nil, err
	}
	logging.Debug("match starting", logging.Fields{
		constants.LogFieldSeed: seed,
		"wrestler1":            req.Wrestler1.Name,
		"wrestler2":            req.Wrestler2.Name,
	})
	final := loop.RunToEnd()

	rec, err := buildRecord(loopCfg, final)
	if err != nil {
		return nil, err
	}
	if err := repo.CreateMatch(rec); err != nil {
		return nil, err
	}
	if err := repo.UpdateStatsOnMatchEnd(rec); err != nil {
		// The record itself is already saved; stats are an aggregate view.
		logging.Error("failed to update wrestler stats", err, logging.Fields{
			constants.LogFieldMatchUUID: rec.UUID,
		})
	}

	logging.Info("match finished", logging.Fields{
		constants.LogFieldMatchUUID: rec.UUID,
		constants.LogFieldSeed:      rec.Seed,
		constants.LogFieldWinner:    rec.WinnerName,
		constants.LogFieldMethod:    rec.Method,
		constants.LogFieldTicks:     rec.Ticks,
	})
	return rec, nil
}

func normalizeWrestler(w *game.WrestlerInput, fallbackID string) {
	w.Name = strings.TrimSpace(w.Name)
	w.Archetype = strings.ToLower(strings.TrimSpace(w.Archetype))
	if w.ID == "" {
		w.ID = fallbackID
	}
}

func buildRecord(cfg engine.MatchLoopConfig, final *game.MatchState) (*game.MatchRecord, error) {
	if final.Result == nil {
		return nil, errors.New("match ended without a result")
	}
	inputJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	winnerIdx := final.AgentIndex(final.Result.WinnerID)
	if winnerIdx < 0 {
		return nil, fmt.Errorf("unknown winner id %q", final.Result.WinnerID)
	}
	winner := final.Agents[winnerIdx]
	loser := final.Agents[game.Opponent(winnerIdx)]

	rec := &game.MatchRecord{
		UUID:      uuid.NewString(),
		Seed:      cfg.Seed,
		TimeLimit: cfg.TimeLimit,
		TickRate:  cfg.TickRate,

		Wrestler1Name:      cfg.Wrestler1.Name,
		Wrestler1Archetype: cfg.Wrestler1.Archetype,
		Wrestler2Name:      cfg.Wrestler2.Name,
		Wrestler2Archetype: cfg.Wrestler2.Archetype,
		InputJSON:          string(inputJSON),

		WinnerName: winner.Name,
		LoserName:  loser.Name,
		Method:     final.Result.Method,
		Duration:   final.Result.Duration,
		Rating:     final.Result.Rating,
		Ticks:      final.Tick,
	}
	rec.Logs = make([]game.MatchLogRecord, 0, len(final.Log))
	for _, e := range final.Log {
		row := game.MatchLogRecord{
			Tick:    e.Tick,
			Elapsed: e.Elapsed,
			Type:    e.Type,
			Detail:  e.Detail,
		}
		if len(e.Data) > 0 {
			data, err := json.Marshal(e.Data)
			if err != nil {
				return nil, err
			}
			row.DataJSON = string(data)
		}
		rec.Logs = append(rec.Logs, row)
	}
	return rec, nil
}
