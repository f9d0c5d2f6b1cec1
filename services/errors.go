package services

import "errors"

var (
	ErrNoPlayers         = errors.New("no players provided for transaction")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrInvalidAmount     = errors.New("invalid amount")
)
