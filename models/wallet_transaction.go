package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ledger reason tags.
const (
	TransactionPoneWineWin  = "pone_wine_win"
	TransactionPoneWineLoss = "pone_wine_loss"
)

type WalletTransaction struct {
	gorm.Model

	UserID   uint   `gorm:"index"`
	UserName string `gorm:"size:255"`

	TrxType       string          `gorm:"size:16"`
	Name          string          `gorm:"size:32;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(12,2)" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(12,2)" json:"balance_after"`
	RefID         string          `gorm:"size:64;index"`
	Meta          datatypes.JSON  `gorm:"type:jsonb"`
}
