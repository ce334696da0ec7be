package database

import (
	"fmt"
	"time"

	"realestate_backend/internal/logger"
	"realestate_backend/internal/models"

	"github.com/juju/clock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Options struct {
	MaxOpenConns int
	MaxIdleConns int
}

// NewGormConfig is shared by production and test connections so both translate
// unique violations into gorm.ErrDuplicatedKey and stamp rows with clk.
func NewGormConfig(clk clock.Clock) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return clk.Now().UTC()
		},
		Logger: logger.NewGormLogger(200 * time.Millisecond),
	}
}

func Connect(dsn string, clk clock.Clock, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), NewGormConfig(clk))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return db, nil
}

// Partial unique indexes keep at most one active request per (user, property).
// The syntax is accepted by both PostgreSQL and SQLite.
var activeRequestIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_active_pair
		ON applications (user_id, property_id)
		WHERE status IN ('PENDING', 'UNDER_REVIEW', 'APPROVED')`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_property_viewings_active_pair
		ON property_viewings (user_id, property_id)
		WHERE status IN ('PENDING', 'APPROVED')`,
}

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Application{},
		&models.PropertyViewing{},
		&models.Favorite{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range activeRequestIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	logger.Info("Database migrated")
	return nil
}
