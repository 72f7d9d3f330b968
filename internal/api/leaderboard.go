package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/constants"
)

// ListLeaderboard returns the top wrestlers by wins (desc), limited to top
// 10 by default.
func (h *MatchHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	profiles, err := h.repo.GetTopWrestlers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(profiles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetWrestler returns one wrestler's aggregated profile by name.
func (h *MatchHandler) GetWrestler(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	profile, err := h.repo.GetProfileByName(name)
	if err != nil || profile == nil || profile.MatchesPlayed == 0 {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrWrestlerNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}
