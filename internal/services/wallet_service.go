package services

import (
	"context"

	"bitwallet/internal/models"
	"bitwallet/internal/money"
	"bitwallet/internal/rates"
)

// WalletView is the display form of a wallet: the BTC balance plus its USD
// value at the current conversion rate.
type WalletView struct {
	Address   int64  `json:"address"`
	AmountBTC string `json:"amount_btc"`
	AmountUSD string `json:"amount_usd"`
}

type WalletService struct {
	wallets   WalletStore
	users     UserStore
	converter rates.Converter
}

func NewWalletService(wallets WalletStore, users UserStore, converter rates.Converter) *WalletService {
	return &WalletService{wallets: wallets, users: users, converter: converter}
}

func (s *WalletService) CreateWallet(ctx context.Context, apiKey string) (WalletView, error) {
	ownerID, err := s.users.Resolve(ctx, apiKey)
	if err != nil {
		return WalletView{}, err
	}
	wallet, err := s.wallets.CreateWallet(ctx, ownerID)
	if err != nil {
		return WalletView{}, err
	}
	return s.view(ctx, wallet)
}

func (s *WalletService) GetWallet(ctx context.Context, apiKey string, address int64) (WalletView, error) {
	ownerID, err := s.users.Resolve(ctx, apiKey)
	if err != nil {
		return WalletView{}, err
	}
	wallet, err := s.wallets.GetWallet(ctx, ownerID, address)
	if err != nil {
		return WalletView{}, err
	}
	return s.view(ctx, wallet)
}

func (s *WalletService) view(ctx context.Context, wallet models.Wallet) (WalletView, error) {
	rate, err := s.converter.BTCToUSD(ctx)
	if err != nil {
		return WalletView{}, ErrConversionUnavailable
	}
	usd := money.ToBTC(wallet.BalanceSats).Mul(rate)
	return WalletView{
		Address:   wallet.Address,
		AmountBTC: money.FormatBTC(wallet.BalanceSats),
		AmountUSD: usd.StringFixed(2),
	}, nil
}
