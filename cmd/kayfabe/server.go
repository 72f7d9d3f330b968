package main

import (
	"github.com/gin-gonic/gin"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/api"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/constants"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/logging"
)

func runServerOrExit(addr string, handler *api.MatchHandler) {
	router := gin.Default()

	router.GET(constants.RouteHealth, api.Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET("/version", api.Version)
		apiRoutes.GET(constants.RouteArchetypes, handler.ListArchetypes)
		apiRoutes.POST(constants.RouteMatches, handler.CreateMatch)
		apiRoutes.GET(constants.RouteMatches, handler.ListMatches)
		apiRoutes.GET(constants.RouteMatchByUUID, handler.GetMatch)
		apiRoutes.GET(constants.RouteMatchLog, handler.GetMatchLog)
		apiRoutes.GET(constants.RouteMatchReplay, handler.ReplayMatch)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteWrestlerByID, handler.GetWrestler)
	}

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
