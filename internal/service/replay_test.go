package service

import (
	"errors"
	"testing"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

type mockReplayRepo struct {
	matches map[string]*game.MatchRecord
}

func (m *mockReplayRepo) GetMatchByUUID(matchUUID string) (*game.MatchRecord, error) {
	rec, ok := m.matches[matchUUID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return rec, nil
}

func (m *mockReplayRepo) GetMatchLog(matchID uint) ([]game.MatchLogRecord, error) {
	for _, rec := range m.matches {
		if rec.ID == matchID {
			return rec.Logs, nil
		}
	}
	return nil, errors.New("record not found")
}

func TestReplayMatchVerifiesStoredOutcome(t *testing.T) {
	cfg := serviceTestConfig()
	rec, err := RunMatch(&mockMatchRepo{}, cfg, serviceTestRequest(42))
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}

	repo := &mockReplayRepo{matches: map[string]*game.MatchRecord{rec.UUID: rec}}
	report, err := ReplayMatch(repo, cfg, rec.UUID)
	if err != nil {
		t.Fatalf("ReplayMatch: %v", err)
	}
	if !report.Verified {
		t.Fatalf("expected replay to reproduce the stored outcome")
	}
	if report.Ticks != rec.Ticks {
		t.Fatalf("replay ticks = %d, stored %d", report.Ticks, rec.Ticks)
	}
	if report.LogLines != len(rec.Logs) {
		t.Fatalf("replay log lines = %d, stored %d", report.LogLines, len(rec.Logs))
	}
}

func TestReplayMatchDetectsTamperedRecord(t *testing.T) {
	cfg := serviceTestConfig()
	rec, err := RunMatch(&mockMatchRepo{}, cfg, serviceTestRequest(42))
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	rec.Ticks++

	repo := &mockReplayRepo{matches: map[string]*game.MatchRecord{rec.UUID: rec}}
	report, err := ReplayMatch(repo, cfg, rec.UUID)
	if err != nil {
		t.Fatalf("ReplayMatch: %v", err)
	}
	if report.Verified {
		t.Fatalf("expected tampered tick count to fail verification")
	}
}

func TestReplayMatchDetectsLogDrift(t *testing.T) {
	cfg := serviceTestConfig()
	rec, err := RunMatch(&mockMatchRepo{}, cfg, serviceTestRequest(42))
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	if len(rec.Logs) < 2 {
		t.Fatalf("expected log rows, got %d", len(rec.Logs))
	}
	rec.Logs[1].Detail = "rewritten history"

	repo := &mockReplayRepo{matches: map[string]*game.MatchRecord{rec.UUID: rec}}
	report, err := ReplayMatch(repo, cfg, rec.UUID)
	if err != nil {
		t.Fatalf("ReplayMatch: %v", err)
	}
	if report.Verified {
		t.Fatalf("expected an altered log row to fail verification")
	}
}

func TestReplayMatchUnknownUUID(t *testing.T) {
	repo := &mockReplayRepo{matches: map[string]*game.MatchRecord{}}
	if _, err := ReplayMatch(repo, serviceTestConfig(), "missing"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("err = %v, want ErrMatchNotFound", err)
	}
}
