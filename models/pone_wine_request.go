package models

import "github.com/shopspring/decimal"

// PoneWineSettleRequest is one settlement batch as submitted by the
// game provider. Required numerics are pointers so an absent field is
// rejected while a legitimate zero passes.
type PoneWineSettleRequest struct {
	RoomID    *int            `json:"roomId" validate:"required"`
	MatchID   string          `json:"matchId" validate:"required,max=255"`
	WinNumber *int            `json:"winNumber" validate:"required"`
	Players   []PlayerBetData `json:"players" validate:"required,min=1,dive"`
}

type PlayerBetData struct {
	PlayerID      string           `json:"playerId" validate:"required,max=255"`
	WinLoseAmount *decimal.Decimal `json:"winLoseAmount" validate:"required"`
	BetInfos      []BetInfoData    `json:"betInfos" validate:"required,min=1,dive"`
}

type BetInfoData struct {
	BetNumber *int            `json:"betNumber" validate:"required"`
	BetAmount decimal.Decimal `json:"betAmount" validate:"betamount"`
}
