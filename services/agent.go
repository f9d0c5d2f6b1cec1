package services

import (
	"errors"

	"ponewine/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ResolutionTier records which step of the agent fallback chain
// produced the resolved agent.
type ResolutionTier string

const (
	TierAgentID  ResolutionTier = "agent_id"
	TierCode     ResolutionTier = "agent_code"
	TierFallback ResolutionTier = "fallback"
	TierNone     ResolutionTier = "none"
)

// ResolveAgent determines the house agent servicing a batch from its
// first validated player. Tiers, in order: the player's direct agent
// link, the legacy agent code, then any agent in the system. Returns
// nil when no user carries the agent type.
func ResolveAgent(tx *gorm.DB, firstPlayer *models.User) (*models.User, ResolutionTier) {
	if firstPlayer.ClientAgentID != nil {
		var agent models.User
		err := tx.First(&agent, *firstPlayer.ClientAgentID).Error
		if err == nil && agent.IsAgent() {
			logrus.WithFields(logrus.Fields{
				"player_id":       firstPlayer.ID,
				"player_username": firstPlayer.UserName,
				"player_agent_id": *firstPlayer.ClientAgentID,
				"agent_id":        agent.ID,
				"agent_username":  agent.UserName,
				"agent_shan_code": agent.ShanAgentCode,
			}).Info("PoneWineTransaction: Found agent by agent_id")
			return &agent, TierAgentID
		}
		if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithFields(logrus.Fields{
				"player_id":       firstPlayer.ID,
				"player_username": firstPlayer.UserName,
				"player_agent_id": *firstPlayer.ClientAgentID,
			}).Warn("PoneWineTransaction: Invalid agent found by agent_id")
		}
	}

	if firstPlayer.ShanAgentCode != "" {
		var agent models.User
		err := tx.Where("shan_agent_code = ? AND type = ?", firstPlayer.ShanAgentCode, models.UserTypeAgent).
			Order("id ASC").
			First(&agent).Error
		if err == nil {
			logrus.WithFields(logrus.Fields{
				"player_id":       firstPlayer.ID,
				"player_username": firstPlayer.UserName,
				"shan_agent_code": firstPlayer.ShanAgentCode,
				"agent_id":        agent.ID,
				"agent_username":  agent.UserName,
			}).Info("PoneWineTransaction: Found agent by shan_agent_code (fallback)")
			return &agent, TierCode
		}
	}

	var agent models.User
	err := tx.Where("type = ?", models.UserTypeAgent).
		Order("id ASC").
		First(&agent).Error
	if err == nil {
		logrus.WithFields(logrus.Fields{
			"player_id":               firstPlayer.ID,
			"player_username":         firstPlayer.UserName,
			"fallback_agent_id":       agent.ID,
			"fallback_agent_username": agent.UserName,
		}).Warn("PoneWineTransaction: Using fallback agent")
		return &agent, TierFallback
	}

	return nil, TierNone
}
