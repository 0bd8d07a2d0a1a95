package database

import (
	"fmt"
	"time"

	"payment-service/config"
	"payment-service/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the postgres connection, configures the pool and runs
// migrations. Retries a few times so the service survives the database
// coming up after it in docker compose.
func Connect(cfg *config.Config, logger *zap.Logger) error {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.PostgresHost, cfg.PostgresUser, cfg.PostgresPassword,
		cfg.PostgresDB, cfg.PostgresPort, cfg.PostgresSSLMode, cfg.PostgresTimeZone,
	)

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, poolErr := db.DB()
			if poolErr == nil {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
			}

			if err := db.AutoMigrate(&models.Payment{}); err != nil {
				return fmt.Errorf("AutoMigrate failed: %w", err)
			}

			logger.Info("Connected to PostgreSQL")
			DB = db
			return nil
		}

		logger.Warn("Database not ready, retrying",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(3 * time.Second)
	}

	return fmt.Errorf("could not connect to database after retries: %w", err)
}

// Close closes the underlying sql.DB.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
