package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User types. Players and house agents live in the same table; the
// type column tells them apart.
const (
	UserTypePlayer = 10
	UserTypeAgent  = 20
)

type User struct {
	gorm.Model

	UserName string          `gorm:"uniqueIndex;size:255" json:"user_name"`
	Type     int             `gorm:"index;default:10" json:"type"`
	Balance  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"balance"`

	// Player side: link to the house agent servicing this player.
	// ClientAgentID is the direct reference, ShanAgentCode the legacy
	// code used before direct links existed.
	ClientAgentID   *uint  `gorm:"index" json:"client_agent_id"`
	ClientAgentName string `gorm:"size:255" json:"client_agent_name"`
	ShanAgentCode   string `gorm:"index;size:32" json:"shan_agent_code"`

	// Agent side: credentials for the client-site report callback.
	ShanSecretKey   string `gorm:"size:128" json:"shan_secret_key"`
	ShanCallbackURL string `gorm:"size:255" json:"shan_callback_url"`

	Transactions []WalletTransaction `gorm:"foreignKey:UserID"`
}

func (u *User) IsAgent() bool {
	return u.Type == UserTypeAgent
}
