package services

import (
	"errors"
	"fmt"

	"ponewine/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlayerResult is one player's settled outcome as returned to the
// provider.
type PlayerResult struct {
	PlayerID      string          `json:"playerId"`
	Balance       decimal.Decimal `json:"balance"`
	AmountChanged decimal.Decimal `json:"amountChanged"`
}

// CallbackPlayer is one player's view in the client-site report.
type CallbackPlayer struct {
	PlayerID        string               `json:"player_id"`
	Balance         decimal.Decimal      `json:"balance"`
	WinLoseAmount   decimal.Decimal      `json:"winLoseAmount"`
	BetInfos        []models.BetInfoData `json:"betInfos"`
	ClientAgentName string               `json:"client_agent_name"`
	ClientAgentID   *uint                `json:"client_agent_id"`
}

// BatchResult carries the settled batch plus the context the report
// client needs.
type BatchResult struct {
	Results         []PlayerResult
	Agent           *models.User
	AgentTier       ResolutionTier
	CallbackPlayers []CallbackPlayer
}

type validatedPlayer struct {
	user *models.User
	data models.PlayerBetData
}

// SettleBatch records one round and every player's bet detail and
// balance change in a single transaction. Either all of it commits or
// none of it does. Agent absence is not fatal; it only disables the
// post-commit report.
func SettleBatch(db *gorm.DB, req *models.PoneWineSettleRequest) (*BatchResult, error) {
	if len(req.Players) == 0 {
		logrus.WithField("match_id", req.MatchID).
			Error("PoneWineTransaction: No players provided")
		return nil, ErrNoPlayers
	}

	result := &BatchResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Validate every player before mutating anything.
		validated := make([]validatedPlayer, 0, len(req.Players))
		for _, playerData := range req.Players {
			var user models.User
			err := tx.Where("user_name = ?", playerData.PlayerID).First(&user).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					logrus.WithFields(logrus.Fields{
						"player_id": playerData.PlayerID,
						"match_id":  req.MatchID,
					}).Error("PoneWineTransaction: Player not found")
					return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerData.PlayerID)
				}
				return err
			}
			validated = append(validated, validatedPlayer{user: &user, data: playerData})
		}

		agent, tier := ResolveAgent(tx, validated[0].user)
		result.Agent = agent
		result.AgentTier = tier
		logAgentInfo(agent)

		bet := models.PoneWineBet{
			RoomID:    *req.RoomID,
			MatchID:   req.MatchID,
			WinNumber: *req.WinNumber,
		}
		if err := tx.Create(&bet).Error; err != nil {
			return err
		}

		totalPlayerNet := decimal.Zero

		for _, vp := range validated {
			player := vp.user
			winLoseAmount := *vp.data.WinLoseAmount

			playerBet := models.PoneWinePlayerBet{
				PoneWineBetID: bet.ID,
				UserID:        player.ID,
				UserName:      player.UserName,
				WinLoseAmt:    winLoseAmount,
			}
			if err := tx.Create(&playerBet).Error; err != nil {
				return err
			}

			for _, info := range vp.data.BetInfos {
				betInfo := models.PoneWineBetInfo{
					PoneWinePlayerBetID: playerBet.ID,
					BetNo:               *info.BetNumber,
					BetAmount:           info.BetAmount,
				}
				if err := tx.Create(&betInfo).Error; err != nil {
					return err
				}
			}

			entry, err := applySettlement(tx, player, winLoseAmount)
			if err != nil {
				return err
			}

			// The ledger entry holds the authoritative balances, not
			// the struct loaded during validation.
			afterBalance := entry.BalanceAfter
			amountChanged := entry.BalanceAfter.Sub(entry.BalanceBefore)
			totalPlayerNet = totalPlayerNet.Add(amountChanged)

			result.CallbackPlayers = append(result.CallbackPlayers, CallbackPlayer{
				PlayerID:        player.UserName,
				Balance:         afterBalance,
				WinLoseAmount:   winLoseAmount,
				BetInfos:        vp.data.BetInfos,
				ClientAgentName: player.ClientAgentName,
				ClientAgentID:   player.ClientAgentID,
			})

			result.Results = append(result.Results, PlayerResult{
				PlayerID:      player.UserName,
				Balance:       afterBalance,
				AmountChanged: amountChanged,
			})
		}

		logrus.WithFields(logrus.Fields{
			"match_id":                req.MatchID,
			"total_player_net":        totalPlayerNet,
			"processed_players_count": len(result.Results),
		}).Info("PoneWineTransaction: Transaction completed successfully")

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// applySettlement applies a player's net win or loss through the
// wallet ledger.
func applySettlement(tx *gorm.DB, player *models.User, winLoseAmount decimal.Decimal) (*models.WalletTransaction, error) {
	if winLoseAmount.IsPositive() {
		return Deposit(tx, player, winLoseAmount, models.TransactionPoneWineWin, map[string]any{
			"description": "Pone Wine game win",
			"game_type":   "pone_wine",
		})
	}
	return Withdraw(tx, player, winLoseAmount.Abs(), models.TransactionPoneWineLoss, map[string]any{
		"description": "Pone Wine game loss",
		"game_type":   "pone_wine",
	})
}

func logAgentInfo(agent *models.User) {
	if agent == nil {
		logrus.Warn("PoneWineTransaction: No house agent resolved")
		return
	}
	logrus.WithFields(logrus.Fields{
		"agent_id":         agent.ID,
		"agent_username":   agent.UserName,
		"agent_type":       agent.Type,
		"agent_shan_code":  agent.ShanAgentCode,
		"has_secret_key":   agent.ShanSecretKey != "",
		"has_callback_url": agent.ShanCallbackURL != "",
	}).Info("PoneWineTransaction: Agent information")
}
