package handlers

import (
	"context"

	"bitwallet/internal/models"
	"bitwallet/internal/services"
)

type UserService interface {
	Register(ctx context.Context, username string) (models.User, error)
}

type WalletService interface {
	CreateWallet(ctx context.Context, apiKey string) (services.WalletView, error)
	GetWallet(ctx context.Context, apiKey string, address int64) (services.WalletView, error)
}

type TransferService interface {
	Transfer(ctx context.Context, apiKey string, fromAddress, toAddress, amountSats int64) (models.TransactionRecord, error)
	WalletHistory(ctx context.Context, apiKey string, address int64) ([]models.TransactionRecord, error)
	OwnerHistory(ctx context.Context, apiKey string) ([]models.TransactionRecord, error)
}

type StatisticsService interface {
	IsAdmin(adminKey string) bool
	Statistics(ctx context.Context, adminKey string) (services.Stats, error)
}
