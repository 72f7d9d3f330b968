package service

import (
	"encoding/json"
	"math"

	"golang.org/x/sync/singleflight"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/config"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/engine"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

// replayGroup deduplicates concurrent replays of the same match. A replay
// re-simulates the whole match, so piling identical requests onto the CPU
// is wasted work; late callers share the first run's report.
var replayGroup singleflight.Group

// ReplayRepo is the minimal repository interface required by ReplayMatch.
type ReplayRepo interface {
	GetMatchByUUID(matchUUID string) (*game.MatchRecord, error)
	GetMatchLog(matchID uint) ([]game.MatchLogRecord, error)
}

// ReplayReport is the outcome of re-running a persisted match from its
// stored seed and inputs. Verified is true when the fresh run reproduced
// the recorded outcome and the full log stream exactly.
type ReplayReport struct {
	Match    *game.MatchRecord `json:"match"`
	Result   *game.MatchResult `json:"result"`
	Ticks    int               `json:"ticks"`
	LogLines int               `json:"log_lines"`
	Verified bool              `json:"verified"`
}

// ReplayMatch re-simulates a stored match and checks the fresh outcome
// against the persisted one. A mismatch means the content file changed
// since the match was recorded, or the record was tampered with.
func ReplayMatch(repo ReplayRepo, cfg *config.LoadedConfig, matchUUID string) (*ReplayReport, error) {
	v, err, _ := replayGroup.Do(matchUUID, func() (interface{}, error) {
		return replayMatch(repo, cfg, matchUUID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ReplayReport), nil
}

func replayMatch(repo ReplayRepo, cfg *config.LoadedConfig, matchUUID string) (*ReplayReport, error) {
	rec, err := repo.GetMatchByUUID(matchUUID)
	if err != nil || rec == nil {
		return nil, ErrMatchNotFound
	}

	var loopCfg engine.MatchLoopConfig
	if err := json.Unmarshal([]byte(rec.InputJSON), &loopCfg); err != nil {
		return nil, err
	}
	loop, err := engine.NewMatchLoop(loopCfg, cfg.Content())
	if err != nil {
		return nil, err
	}
	final := loop.RunToEnd()

	report := &ReplayReport{
		Match:    rec,
		Result:   final.Result,
		Ticks:    final.Tick,
		LogLines: len(final.Log),
	}
	if final.Result == nil {
		return report, nil
	}

	winnerIdx := final.AgentIndex(final.Result.WinnerID)
	if winnerIdx < 0 {
		return report, nil
	}
	stored, err := repo.GetMatchLog(rec.ID)
	if err != nil {
		return nil, err
	}
	report.Verified = final.Agents[winnerIdx].Name == rec.WinnerName &&
		final.Result.Method == rec.Method &&
		final.Tick == rec.Ticks &&
		math.Abs(final.Result.Duration-rec.Duration) < 1e-9 &&
		math.Abs(final.Result.Rating-rec.Rating) < 1e-9 &&
		logsMatch(stored, final.Log)
	return report, nil
}

// logsMatch compares the persisted log rows against a freshly simulated
// stream entry by entry, including the marshalled data payloads. Map keys
// marshal in sorted order, so equal payloads produce equal strings.
func logsMatch(stored []game.MatchLogRecord, fresh []game.MatchLogEntry) bool {
	if len(stored) != len(fresh) {
		return false
	}
	for i, row := range stored {
		e := fresh[i]
		if row.Tick != e.Tick || row.Elapsed != e.Elapsed || row.Type != e.Type || row.Detail != e.Detail {
			return false
		}
		var data string
		if len(e.Data) > 0 {
			b, err := json.Marshal(e.Data)
			if err != nil {
				return false
			}
			data = string(b)
		}
		if row.DataJSON != data {
			return false
		}
	}
	return true
}
