// Package database opens the gorm connection and keeps the schema current.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/pulse/internal/config"
	"github.com/d60-Lab/pulse/internal/model"
)

// Open connects using the configured driver. Postgres serves deployments,
// sqlite serves development and tests.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

// Migrate creates/updates all tables and their indexes, including the
// unique follow pair index.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
	)
}
