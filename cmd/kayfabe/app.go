package main

import (
	"github.com/MdAyman7/wweagentsfun-sub000/internal/config"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/constants"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/logging"
	"github.com/MdAyman7/wweagentsfun-sub000/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid content configuration", err, logging.Fields{
			constants.LogFieldPath: path,
			"hint":                 "create a kayfabe_config.json with move_list, combo_list, finisher_list and archetype_list arrays and an optional server.address",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
