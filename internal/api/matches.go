package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/constants"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/service"
)

// CreateMatch runs a full simulation from the request payload and returns
// the persisted record.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req service.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	rec, err := service.RunMatch(h.repo, h.cfg, req)
	switch {
	case errors.Is(err, service.ErrWrestlerNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrWrestlerNameRequired})
		return
	case errors.Is(err, service.ErrUnknownArchetype):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownArchetype})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRunMatch})
		return
	}

	out, err := MarshalIntoSnakeTimestamps(rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRunMatch})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListMatches returns the most recent match records, newest first.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	limit := 20
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	matches, err := h.repo.ListRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(matches)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMatch returns one match record by its UUID.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	rec, err := h.repo.GetMatchByUUID(c.Param("matchUUID"))
	if err != nil || rec == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMatchLog returns the full ordered log of a match with structured data
// payloads decoded back into objects.
func (h *MatchHandler) GetMatchLog(c *gin.Context) {
	rec, err := h.repo.GetMatchByUUID(c.Param("matchUUID"))
	if err != nil || rec == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	rows, err := h.repo.GetMatchLog(rec.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatchLog})
		return
	}

	entries := make([]game.MatchLogEntry, 0, len(rows))
	for _, r := range rows {
		e := game.MatchLogEntry{
			Tick:    r.Tick,
			Elapsed: r.Elapsed,
			Type:    r.Type,
			Detail:  r.Detail,
		}
		if r.DataJSON != "" {
			// Rows written by this server always decode; tolerate bad data.
			_ = json.Unmarshal([]byte(r.DataJSON), &e.Data)
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyLog: entries})
}

// ReplayMatch re-runs a stored match from its seed and reports whether the
// fresh simulation reproduced the recorded outcome.
func (h *MatchHandler) ReplayMatch(c *gin.Context) {
	report, err := service.ReplayMatch(h.repo, h.cfg, c.Param("matchUUID"))
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedReplayMatch})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedReplayMatch})
		return
	}
	// A failed verification means the record and the current content file
	// disagree; surface it as a conflict, not a success.
	if !report.Verified {
		c.JSON(http.StatusConflict, out)
		return
	}
	c.JSON(http.StatusOK, out)
}
