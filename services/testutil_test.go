package services

import (
	"testing"

	"ponewine/database"
	"ponewine/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createPlayer(t *testing.T, db *gorm.DB, name string, balance string, agentID *uint, agentCode string) *models.User {
	t.Helper()

	user := models.User{
		UserName:      name,
		Type:          models.UserTypePlayer,
		Balance:       decimal.RequireFromString(balance),
		ClientAgentID: agentID,
		ShanAgentCode: agentCode,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createAgent(t *testing.T, db *gorm.DB, name, code, callbackURL string) *models.User {
	t.Helper()

	agent := models.User{
		UserName:        name,
		Type:            models.UserTypeAgent,
		ShanAgentCode:   code,
		ShanSecretKey:   "secret-" + name,
		ShanCallbackURL: callbackURL,
	}
	require.NoError(t, db.Create(&agent).Error)
	return &agent
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intp(n int) *int {
	return &n
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
