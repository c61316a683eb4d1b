package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"bitwallet/internal/config"
	"bitwallet/internal/models"
	"bitwallet/internal/services"
	"bitwallet/internal/websocket"
)

type stubUserService struct {
	registerFn func(ctx context.Context, username string) (models.User, error)
}

func (s stubUserService) Register(ctx context.Context, username string) (models.User, error) {
	if s.registerFn == nil {
		return models.User{ID: 1, Username: username, APIKey: username + "-key"}, nil
	}
	return s.registerFn(ctx, username)
}

type stubWalletService struct {
	createFn func(ctx context.Context, apiKey string) (services.WalletView, error)
	getFn    func(ctx context.Context, apiKey string, address int64) (services.WalletView, error)
}

func (s stubWalletService) CreateWallet(ctx context.Context, apiKey string) (services.WalletView, error) {
	if s.createFn == nil {
		return services.WalletView{}, nil
	}
	return s.createFn(ctx, apiKey)
}

func (s stubWalletService) GetWallet(ctx context.Context, apiKey string, address int64) (services.WalletView, error) {
	if s.getFn == nil {
		return services.WalletView{}, nil
	}
	return s.getFn(ctx, apiKey, address)
}

type stubTransferService struct {
	transferFn      func(ctx context.Context, apiKey string, fromAddress, toAddress, amountSats int64) (models.TransactionRecord, error)
	walletHistoryFn func(ctx context.Context, apiKey string, address int64) ([]models.TransactionRecord, error)
	ownerHistoryFn  func(ctx context.Context, apiKey string) ([]models.TransactionRecord, error)
}

func (s stubTransferService) Transfer(ctx context.Context, apiKey string, fromAddress, toAddress, amountSats int64) (models.TransactionRecord, error) {
	if s.transferFn == nil {
		return models.TransactionRecord{}, nil
	}
	return s.transferFn(ctx, apiKey, fromAddress, toAddress, amountSats)
}

func (s stubTransferService) WalletHistory(ctx context.Context, apiKey string, address int64) ([]models.TransactionRecord, error) {
	if s.walletHistoryFn == nil {
		return nil, nil
	}
	return s.walletHistoryFn(ctx, apiKey, address)
}

func (s stubTransferService) OwnerHistory(ctx context.Context, apiKey string) ([]models.TransactionRecord, error) {
	if s.ownerHistoryFn == nil {
		return nil, nil
	}
	return s.ownerHistoryFn(ctx, apiKey)
}

type stubStatisticsService struct {
	isAdminFn func(adminKey string) bool
	statsFn   func(ctx context.Context, adminKey string) (services.Stats, error)
}

func (s stubStatisticsService) IsAdmin(adminKey string) bool {
	if s.isAdminFn == nil {
		return false
	}
	return s.isAdminFn(adminKey)
}

func (s stubStatisticsService) Statistics(ctx context.Context, adminKey string) (services.Stats, error) {
	if s.statsFn == nil {
		return services.Stats{}, nil
	}
	return s.statsFn(ctx, adminKey)
}

type stubResolver struct {
	resolveFn func(ctx context.Context, apiKey string) (int64, error)
}

func (s stubResolver) Resolve(ctx context.Context, apiKey string) (int64, error) {
	if s.resolveFn == nil {
		return 1, nil
	}
	return s.resolveFn(ctx, apiKey)
}

type testDeps struct {
	users      stubUserService
	wallets    stubWalletService
	transfers  stubTransferService
	statistics stubStatisticsService
	resolver   stubResolver
}

func newTestHandler(deps testDeps) http.Handler {
	cfg := config.Config{AllowedOrigins: "*"}
	h := New(cfg, deps.users, deps.wallets, deps.transfers, deps.statistics, deps.resolver, websocket.NewHub())
	return h.Routes()
}

func doRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}
