package repository

import (
	"context"

	model "github.com/inakado/aspy-bot/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// RecordStore defines the typed operations against the external row store.
// Bets have no native per-lot query there, so ListBetsByLot filters
// client-side over the full table.
type RecordStore interface {
	GetLot(ctx context.Context, lotID int) (model.Lot, error)
	GetArtist(ctx context.Context, artistID int) (model.Artist, error)
	GetUser(ctx context.Context, rowID int) (model.User, error)
	FindUserByTelegramID(ctx context.Context, telegramID int64) (model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UpdateUserPhone(ctx context.Context, rowID int, phone string) error
	ListBetsByLot(ctx context.Context, lotID int) ([]model.Bet, error)
	CreateBet(ctx context.Context, bet model.Bet) (model.Bet, error)
}
