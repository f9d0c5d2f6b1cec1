package database

import (
	"fmt"
	"strconv"

	"ponewine/config"
	"ponewine/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg config.DBConfig) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	DB = db
	logrus.Info("Connected to database")

	autoMigrate, err := strconv.ParseBool(cfg.AutoMigrate)
	if err != nil && cfg.AutoMigrate != "" {
		logrus.Warnf("Invalid value for DB_AUTO_MIGRATE: %s", cfg.AutoMigrate)
	}

	if autoMigrate {
		logrus.Info("Starting auto-migration...")

		if err := Migrate(DB); err != nil {
			logrus.Fatal("Failed to auto-migrate database: ", err)
		}

		logrus.Info("Auto migration completed")
	}
}

// Migrate creates or updates the settlement schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.WalletTransaction{},
		&models.PoneWineBet{},
		&models.PoneWinePlayerBet{},
		&models.PoneWineBetInfo{},
	)
}
