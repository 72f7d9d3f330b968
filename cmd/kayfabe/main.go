package main

import (
	"github.com/MdAyman7/wweagentsfun-sub000/internal/api"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/config"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/logging"
)

func main() {
	proc, err := config.LoadProcess()
	if err != nil {
		logging.Fatal("Failed to read process environment", err, nil)
	}
	logging.SetDebug(proc.Debug)

	cfg := loadConfigOrExit(proc.ContentPath)
	repo := createRepositoryOrExit(proc.DatabasePath)

	addr := proc.Address
	if addr == "" {
		addr = cfg.ServerAddress
	}

	handler := api.NewMatchHandler(repo, cfg)
	runServerOrExit(addr, handler)
}
