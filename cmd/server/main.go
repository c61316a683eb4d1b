package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitwallet/internal/config"
	"bitwallet/internal/db"
	"bitwallet/internal/handlers"
	"bitwallet/internal/memstore"
	"bitwallet/internal/money"
	"bitwallet/internal/notify"
	"bitwallet/internal/rates"
	"bitwallet/internal/services"
	"bitwallet/internal/store"
	"bitwallet/internal/websocket"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	defaultBalanceSats, err := money.ParseSats(cfg.DefaultBalanceBTC)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.DefaultBalanceBTC).Msg("invalid default wallet balance")
	}

	var (
		userStore   services.UserStore
		walletStore services.WalletStore
		txStore     services.TransactionStore
		profitStore services.ProfitStore
	)
	switch cfg.StorageDriver {
	case "memory":
		memUsers := memstore.NewUserStore()
		userStore = memUsers
		walletStore = memstore.NewWalletStore(cfg.MaxWalletsPerUser, defaultBalanceSats, memUsers.HasUser)
		txStore = memstore.NewTransactionStore()
		profitStore = memstore.NewProfitStore()
		log.Info().Msg("using in-memory storage")
	default:
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect database")
		}
		defer database.Close()
		txRunner := db.NewTxRunner(database)
		userStore = store.NewUserStore(database)
		walletStore = store.NewWalletStore(database, txRunner, cfg.MaxWalletsPerUser, defaultBalanceSats)
		txStore = store.NewTransactionStore(database)
		profitStore = store.NewProfitStore(database)
	}

	var rateCache rates.RateCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid redis url")
		}
		client := redis.NewClient(opts)
		defer client.Close()
		rateCache = rates.NewRedisCache(client)
	} else {
		rateCache = rates.NewMemoryCache()
	}
	converter := rates.NewTickerConverter(cfg.TickerURL, rateCache, cfg.RateCacheTTL)

	bus := notify.NewBus()
	hub := websocket.NewHub()
	bus.Subscribe(hub)

	userService := services.NewUserService(userStore)
	walletService := services.NewWalletService(walletStore, userStore, converter)
	transferService := services.NewTransferService(walletStore, txStore, profitStore, userStore, bus)
	statisticsService := services.NewStatisticsService(txStore, profitStore, cfg.AdminKeys)

	handler := handlers.New(cfg, userService, walletService, transferService, statisticsService, userService, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("wallet API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("shutdown error")
	}
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.AppEnv == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
