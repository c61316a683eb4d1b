package handlers

import (
	"net/http"

	"bitwallet/internal/config"
	"bitwallet/internal/middleware"
	"bitwallet/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg        config.Config
	users      UserService
	wallets    WalletService
	transfers  TransferService
	statistics StatisticsService
	resolver   middleware.KeyResolver
	hub        *websocket.Hub
}

func New(cfg config.Config, users UserService, wallets WalletService, transfers TransferService, statistics StatisticsService, resolver middleware.KeyResolver, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:        cfg,
		users:      users,
		wallets:    wallets,
		transfers:  transfers,
		statistics: statistics,
		resolver:   resolver,
		hub:        hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authed := middleware.Auth(h.resolver)

	router.Post("/users", h.RegisterUser)
	router.With(authed).Post("/wallets", h.CreateWallet)
	router.With(authed).Get("/wallets/{address}", h.GetWallet)
	router.With(authed).Get("/wallets/{address}/transactions", h.WalletTransactions)
	router.With(authed).Post("/transactions", h.CreateTransaction)
	router.With(authed).Get("/transactions", h.ListTransactions)
	router.With(middleware.RequireAdmin(h.statistics.IsAdmin)).Get("/statistics", h.Statistics)
	router.With(authed).Get("/ws/transactions", h.WSTransactions)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
