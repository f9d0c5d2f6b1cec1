package ponewine_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ponewine/config"
	"ponewine/database"
	"ponewine/models"
	"ponewine/routes"
	"ponewine/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	reporter := services.NewReportClient(config.CallbackConfig{
		TransactionKey: "test-key",
		ConnectTimeout: 2 * time.Second,
		Timeout:        2 * time.Second,
	})
	routes.Setup(app, reporter)
	return app
}

func seedPlayer(t *testing.T, name, balance string, agentID *uint) *models.User {
	t.Helper()

	user := models.User{
		UserName:      name,
		Type:          models.UserTypePlayer,
		Balance:       decimal.RequireFromString(balance),
		ClientAgentID: agentID,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return &user
}

func seedAgent(t *testing.T, name, callbackURL string) *models.User {
	t.Helper()

	agent := models.User{
		UserName:        name,
		Type:            models.UserTypeAgent,
		ShanSecretKey:   "secret",
		ShanCallbackURL: callbackURL,
	}
	require.NoError(t, database.DB.Create(&agent).Error)
	return &agent
}

func postBet(t *testing.T, app *fiber.App, body string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pone-wine/bet", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func TestPlaceBetSuccess(t *testing.T) {
	app := newTestApp(t)

	var callbackHit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callbackHit = true
		assert.Equal(t, "/api/pone-wine/client-report", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Transaction-Key"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	agent := seedAgent(t, "A1", srv.URL)
	seedPlayer(t, "P1", "1000.00", &agent.ID)

	resp, body := postBet(t, app, `{
		"roomId": 12,
		"matchId": "match-001",
		"winNumber": 7,
		"players": [
			{"playerId": "P1", "winLoseAmount": 500.00, "betInfos": [{"betNumber": 7, "betAmount": 100.00}]}
		]
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Transaction Successful", body["message"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	entry := data[0].(map[string]any)
	assert.Equal(t, "P1", entry["playerId"])
	assert.EqualValues(t, 1500, entry["balance"])
	assert.EqualValues(t, 500, entry["amountChanged"])

	assert.True(t, callbackHit)
}

func TestPlaceBetMalformedPayload(t *testing.T) {
	app := newTestApp(t)

	resp, body := postBet(t, app, `{"roomId": 1, "matchId": "m", "winNumber": 2, "players": []}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Transaction failed", body["message"])

	var rounds int64
	require.NoError(t, database.DB.Model(&models.PoneWineBet{}).Count(&rounds).Error)
	assert.EqualValues(t, 0, rounds)
}

func TestPlaceBetUnknownPlayer(t *testing.T) {
	app := newTestApp(t)
	seedAgent(t, "A1", "")
	seedPlayer(t, "P1", "1000.00", nil)

	resp, body := postBet(t, app, `{
		"roomId": 12,
		"matchId": "match-001",
		"winNumber": 7,
		"players": [
			{"playerId": "P1", "winLoseAmount": 100.00, "betInfos": [{"betNumber": 1, "betAmount": 10.00}]},
			{"playerId": "GHOST", "winLoseAmount": -100.00, "betInfos": [{"betNumber": 2, "betAmount": 10.00}]}
		]
	}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Transaction failed", body["message"])
	assert.Contains(t, body["error"], "GHOST")

	var player models.User
	require.NoError(t, database.DB.Where("user_name = ?", "P1").First(&player).Error)
	assert.Equal(t, "1000", player.Balance.String())
}

func TestPlaceBetCallbackFailureIsolated(t *testing.T) {
	app := newTestApp(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "client site down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	agent := seedAgent(t, "A1", srv.URL)
	seedPlayer(t, "P1", "1000.00", &agent.ID)

	resp, body := postBet(t, app, `{
		"roomId": 12,
		"matchId": "match-001",
		"winNumber": 7,
		"players": [
			{"playerId": "P1", "winLoseAmount": -200.00, "betInfos": [{"betNumber": 3, "betAmount": 200.00}]}
		]
	}`)

	// The failed callback must not disturb the committed settlement
	// or the response.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Transaction Successful", body["message"])

	var player models.User
	require.NoError(t, database.DB.Where("user_name = ?", "P1").First(&player).Error)
	assert.Equal(t, "800", player.Balance.String())

	var rounds int64
	require.NoError(t, database.DB.Model(&models.PoneWineBet{}).Count(&rounds).Error)
	assert.EqualValues(t, 1, rounds)
}

func TestPlaceBetArrayOfBatches(t *testing.T) {
	app := newTestApp(t)
	seedAgent(t, "A1", "")
	seedPlayer(t, "P1", "1000.00", nil)
	seedPlayer(t, "P2", "1000.00", nil)

	resp, body := postBet(t, app, `[
		{"roomId": 1, "matchId": "m-1", "winNumber": 2, "players": [
			{"playerId": "P1", "winLoseAmount": 50.00, "betInfos": [{"betNumber": 2, "betAmount": 10.00}]}
		]},
		{"roomId": 1, "matchId": "m-2", "winNumber": 5, "players": [
			{"playerId": "P2", "winLoseAmount": -50.00, "betInfos": [{"betNumber": 4, "betAmount": 50.00}]}
		]}
	]`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "P1", data[0].(map[string]any)["playerId"])
	assert.Equal(t, "P2", data[1].(map[string]any)["playerId"])

	var rounds int64
	require.NoError(t, database.DB.Model(&models.PoneWineBet{}).Count(&rounds).Error)
	assert.EqualValues(t, 2, rounds)
}
