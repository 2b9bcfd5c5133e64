package database

import (
	"log"
	"os"
	"time"

	"linkup/backend/internal/models"
	applog "linkup/backend/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
	if err != nil {
		applog.Fatal().Err(err).Msg("Failed to connect to database")
	}

	applog.Info().Msg("Database connection established")

	if err := Migrate(DB); err != nil {
		applog.Fatal().Err(err).Msg("Failed to migrate database")
	}

	applog.Info().Msg("Database migrated successfully")
}

// Migrate runs the schema migrations for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Block{},
		&models.ChatLog{},
		&models.Message{},
		&models.Notification{},
	)
}
