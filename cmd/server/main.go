package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/genericodex/Group5-SWConstruction/internal/adapter/http/controller"
	"github.com/genericodex/Group5-SWConstruction/internal/adapter/http/middleware"
	"github.com/genericodex/Group5-SWConstruction/internal/adapter/http/router"
	"github.com/genericodex/Group5-SWConstruction/internal/adapter/notification"
	"github.com/genericodex/Group5-SWConstruction/internal/adapter/repository/memory"
	"github.com/genericodex/Group5-SWConstruction/internal/adapter/repository/postgres"
	"github.com/genericodex/Group5-SWConstruction/internal/config"
	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/usecase/services"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	defaultLimits := domain.TransactionLimits{
		Daily:   cfg.DefaultDailyLimit,
		Monthly: cfg.DefaultMonthlyLimit,
	}

	var (
		accountRepo domain.AccountRepository
		txRepo      domain.TransactionRepository
		limitRepo   domain.TransactionLimitRepository
		rateRepo    domain.InterestRateRepository
		userRepo    domain.UserRepository
	)

	if cfg.DatabaseDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			cancel()
			log.Fatalf("run migrations: %v", err)
		}
		cancel()

		db, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		accountRepo = postgres.NewAccountRepository(db)
		txRepo = postgres.NewTransactionRepository(db)
		limitRepo = postgres.NewTransactionLimitRepository(db, defaultLimits)
		rateRepo = postgres.NewInterestRateRepository(db)
		userRepo = postgres.NewUserRepository(db)
	} else {
		accountRepo = memory.NewAccountRepository()
		txRepo = memory.NewTransactionRepository()
		limitRepo = memory.NewTransactionLimitRepository(defaultLimits)
		rateRepo = memory.NewInterestRateRepository()
		userRepo = memory.NewUserRepository()
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := seedRates(seedCtx, rateRepo, cfg); err != nil {
		seedCancel()
		log.Fatalf("seed interest rates: %v", err)
	}
	seedCancel()

	dispatcher := services.NewNotificationService()
	logSink := notification.NewLogSink()
	emailSink := notification.NewEmailSink("no-reply@bank.local")
	smsSink := notification.NewSMSSink()

	dispatcher.RegisterSink(domain.TierDefault, logSink)
	dispatcher.RegisterSink(domain.TierStandard, logSink)
	dispatcher.RegisterSink(domain.TierStandard, emailSink)
	dispatcher.RegisterSink(domain.TierPremium, logSink)
	dispatcher.RegisterSink(domain.TierPremium, emailSink)
	dispatcher.RegisterSink(domain.TierPremium, smsSink)

	limitService := services.NewLimitEnforcementService(limitRepo)
	ledgerService := services.NewLedgerService(accountRepo, txRepo, limitService, dispatcher)
	accountService := services.NewAccountService(accountRepo, limitRepo, defaultLimits)
	interestService := services.NewInterestService(accountRepo, rateRepo, ledgerService)
	userService := services.NewUserService(userRepo)

	authMiddleware := mux.MiddlewareFunc(middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey))
	r := router.New(authMiddleware,
		controller.NewAccountController(accountService),
		controller.NewLedgerController(ledgerService),
		controller.NewLimitController(limitService),
		controller.NewInterestController(interestService),
		controller.NewUserController(userService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("ledger server listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("serve: %v", err)
	}
}

func seedRates(ctx context.Context, rateRepo domain.InterestRateRepository, cfg config.Config) error {
	if _, err := rateRepo.GetRate(ctx, domain.AccountKindSavings); err != nil {
		if err := rateRepo.SetRate(ctx, domain.AccountKindSavings, cfg.SavingsRate); err != nil {
			return err
		}
	}
	if _, err := rateRepo.GetRate(ctx, domain.AccountKindChecking); err != nil {
		if err := rateRepo.SetRate(ctx, domain.AccountKindChecking, cfg.CheckingRate); err != nil {
			return err
		}
	}
	return nil
}
