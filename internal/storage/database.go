package storage

import (
	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database at dataSourceName and keeps the
// schema updated via AutoMigrate. Content (moves, archetypes) is never
// persisted; the config file stays the single source of truth.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.MatchRecord{}, &game.MatchLogRecord{}, &game.WrestlerProfile{}); err != nil {
		return nil, err
	}
	return db, nil
}
