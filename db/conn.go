// Package db contains things related to database setup
package db

import (
	"fmt"

	"webmail/backend/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the configured database and migrates the schema. The driver
// is picked by database.driver (sqlite or postgres).
func New() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
		dsn = viper.GetString("database.dsn")
	)

	// TranslateError turns driver constraint violations into
	// gorm.ErrDuplicatedKey so handlers can tell them from real failures
	cfg := &gorm.Config{TranslateError: true}

	switch driver := viper.GetString("database.driver"); driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	case "postgres":
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Email{}, model.Session{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
