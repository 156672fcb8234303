package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/moneyops/transaction-manager/internal/adapter/exchangerate"
	"github.com/moneyops/transaction-manager/internal/adapter/http/controller"
	"github.com/moneyops/transaction-manager/internal/adapter/http/middleware"
	"github.com/moneyops/transaction-manager/internal/adapter/http/router"
	"github.com/moneyops/transaction-manager/internal/adapter/repository/postgres"
	"github.com/moneyops/transaction-manager/internal/config"
	"github.com/moneyops/transaction-manager/internal/logger"
	"github.com/moneyops/transaction-manager/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(migrateCtx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	bankAccountRepo := postgres.NewBankAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	rateClient := exchangerate.NewClient(cfg.ExchangeAPIURL, cfg.ExchangeAPIKey, cfg.ExchangeAPITimeout)

	accountService := services.NewAccountService(accountRepo)
	bankAccountService := services.NewBankAccountService(bankAccountRepo, accountRepo)
	transactionService := services.NewTransactionService(transactionRepo, bankAccountRepo, rateClient)

	var authMiddleware func(http.Handler) http.Handler
	if cfg.ChannelKeyHash != "" {
		authMiddleware = middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKeyHash)
	} else {
		logger.Info("channel key hash not configured, serving without authentication", nil)
	}

	mux := router.New(
		authMiddleware,
		controller.NewAccountController(accountService),
		controller.NewBankAccountController(bankAccountService),
		controller.NewTransactionController(transactionService),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("server starting", logger.Fields{
			"port": cfg.Port,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("server shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("server exited: %v", err)
	}

	logger.Info("server exited cleanly", nil)
}
