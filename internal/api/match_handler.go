package api

import (
	"github.com/MdAyman7/wweagentsfun-sub000/internal/config"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/storage"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	repo storage.Repository
	cfg  *config.LoadedConfig
}

// NewMatchHandler creates a new MatchHandler with the given repository and
// loaded content configuration.
func NewMatchHandler(repo storage.Repository, cfg *config.LoadedConfig) *MatchHandler {
	return &MatchHandler{repo: repo, cfg: cfg}
}
