package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

// ListArchetypes returns all configured archetypes with their finisher,
// sorted by name.
func (h *MatchHandler) ListArchetypes(c *gin.Context) {
	type archetypeView struct {
		game.Archetype
		Finisher *game.FinisherDef `json:"finisher,omitempty"`
	}

	finishers := make(map[string]game.FinisherDef, len(h.cfg.Finishers))
	for _, f := range h.cfg.Finishers {
		finishers[f.Moveset] = f
	}

	out := make([]archetypeView, 0, len(h.cfg.Archetypes))
	for _, a := range h.cfg.Archetypes {
		v := archetypeView{Archetype: a}
		if f, ok := finishers[a.Moveset]; ok {
			fc := f
			v.Finisher = &fc
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	c.JSON(http.StatusOK, out)
}
