package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/unitforge-go/internal/adapters/persistence"
	"github.com/andrescamacho/unitforge-go/internal/infrastructure/config"
)

// NewConnection opens the configured database without migrating it
func NewConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Type {
	case config.DatabasePostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DatabaseSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	level := logger.Silent
	if cfg.LogQueries {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying db: %w", err)
	}
	if cfg.IsSQLite() {
		// every connection to :memory: is a database of its own, and a
		// campaign file takes one writer at a time
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpen)
		sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdle)
		sqlDB.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	}

	return db, nil
}

// NewTestConnection opens a migrated in-memory SQLite database
func NewTestConnection() (*gorm.DB, error) {
	return Open(&config.DatabaseConfig{Type: config.DatabaseSQLite, Path: ":memory:"})
}

// AutoMigrate creates or updates the unit, part, personnel and stock tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(persistence.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Open connects and migrates in one step, as every CLI command needs
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		_ = Close(db)
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
