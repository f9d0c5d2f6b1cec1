package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PoneWineBet is one settled round: room, match and the winning
// number. Status is stored but has no transition in this workflow.
type PoneWineBet struct {
	gorm.Model

	RoomID    int    `json:"room_id"`
	MatchID   string `gorm:"index;size:255" json:"match_id"`
	WinNumber int    `json:"win_number"`
	Status    bool   `gorm:"default:false" json:"status"`

	PlayerBets []PoneWinePlayerBet `gorm:"foreignKey:PoneWineBetID"`
}

// PoneWinePlayerBet is one player's net result within a round.
type PoneWinePlayerBet struct {
	gorm.Model

	PoneWineBetID uint            `gorm:"index"`
	UserID        uint            `gorm:"index"`
	UserName      string          `gorm:"size:255"`
	WinLoseAmt    decimal.Decimal `gorm:"type:decimal(10,2)" json:"win_lose_amt"`

	BetInfos []PoneWineBetInfo `gorm:"foreignKey:PoneWinePlayerBetID"`
}

// PoneWineBetInfo is one wager line under a player bet.
type PoneWineBetInfo struct {
	gorm.Model

	PoneWinePlayerBetID uint            `gorm:"index"`
	BetNo               int             `json:"bet_no"`
	BetAmount           decimal.Decimal `gorm:"type:decimal(10,2)" json:"bet_amount"`
}
