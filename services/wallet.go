package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"ponewine/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deposit credits amount to the user's balance and appends a ledger
// row, both on the caller's transaction handle. Returns the ledger
// entry carrying the authoritative before/after balances.
func Deposit(tx *gorm.DB, user *models.User, amount decimal.Decimal, reason string, meta map[string]any) (*models.WalletTransaction, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("deposit %s: %w", amount, ErrInvalidAmount)
	}
	return applyBalanceChange(tx, user, amount, "deposit", reason, meta)
}

// Withdraw debits amount from the user's balance. Fails with
// ErrInsufficientFunds when the balance cannot cover it.
func Withdraw(tx *gorm.DB, user *models.User, amount decimal.Decimal, reason string, meta map[string]any) (*models.WalletTransaction, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("withdraw %s: %w", amount, ErrInvalidAmount)
	}
	return applyBalanceChange(tx, user, amount.Neg(), "withdraw", reason, meta)
}

// applyBalanceChange re-reads the user row on the transaction handle
// so repeated mutations of the same user within one transaction
// compound instead of overwriting each other.
func applyBalanceChange(tx *gorm.DB, user *models.User, delta decimal.Decimal, trxType, reason string, meta map[string]any) (*models.WalletTransaction, error) {
	if user.ID == 0 {
		return nil, fmt.Errorf("%s: %w", trxType, ErrUnknownPlayer)
	}

	var current models.User
	if err := tx.First(&current, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %s: %w", trxType, user.UserName, ErrUnknownPlayer)
		}
		return nil, err
	}

	before := current.Balance
	if delta.IsNegative() && before.LessThan(delta.Abs()) {
		return nil, fmt.Errorf("withdraw %s from %s (balance %s): %w",
			delta.Abs(), current.UserName, before, ErrInsufficientFunds)
	}
	after := before.Add(delta).Round(2)

	if err := tx.Model(&current).Update("balance", after).Error; err != nil {
		return nil, err
	}
	user.Balance = after

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	entry := models.WalletTransaction{
		UserID:        current.ID,
		UserName:      current.UserName,
		TrxType:       trxType,
		Name:          reason,
		Amount:        delta.Abs().Round(2),
		BalanceBefore: before,
		BalanceAfter:  after,
		RefID:         uuid.New().String(),
		Meta:          metaJSON,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}
