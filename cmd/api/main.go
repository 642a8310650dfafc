// Command api runs the Kinyozi barbershop management API.
//
//	@title                      Kinyozi API
//	@version                    1.0
//	@description                Multi-tenant barbershop management: shops, employees, sales, expenses and stock.
//	@BasePath                   /
//	@securityDefinitions.apikey ApiKeyAuth
//	@in                         header
//	@name                       X-API-KEY
//	@securityDefinitions.apikey AccessToken
//	@in                         header
//	@name                       x-access-token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/mykinyozi/kinyozi-api/docs"
	"github.com/mykinyozi/kinyozi-api/internal/api"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
	"github.com/mykinyozi/kinyozi-api/internal/core/service"
	"github.com/mykinyozi/kinyozi-api/internal/infrastructure/bridge"
	"github.com/mykinyozi/kinyozi-api/internal/infrastructure/db/mongo"
	"github.com/mykinyozi/kinyozi-api/internal/infrastructure/db/postgres"
	"github.com/mykinyozi/kinyozi-api/internal/infrastructure/db/redis"
	"github.com/mykinyozi/kinyozi-api/internal/infrastructure/http/handlers"
	"github.com/mykinyozi/kinyozi-api/internal/infrastructure/mail"
	"github.com/mykinyozi/kinyozi-api/internal/infrastructure/sms"
	"github.com/mykinyozi/kinyozi-api/internal/pkg/config"
	"github.com/mykinyozi/kinyozi-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "kinyozi-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
		LogQueries:   cfg.Postgres.LogQueries,
	})
	if err != nil {
		return err
	}
	defer postgres.Close(db)

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	docs, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer docs.Close(context.Background())

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	mailAudit := mongo.NewMailDeliveryRepository(docs.DB)
	if err := mailAudit.EnsureIndexes(ctx); err != nil {
		return err
	}

	log.Info().Msg("storage connected")

	// --- Outbound channels ---
	renderer, err := mail.NewRenderer()
	if err != nil {
		return err
	}
	smtp, err := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.Sender,
	}, renderer)
	if err != nil {
		return err
	}
	mailer := mail.NewAudited(smtp, mailAudit, logger.For("mail"))

	var smsSender ports.SMSSender
	twilioCfg := sms.Config{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
	}
	if twilioCfg.Enabled() {
		smsSender = sms.NewTwilioSender(twilioCfg)
	} else {
		log.Warn().Msg("twilio not configured, low stock sms disabled")
	}

	bookingsClient := bridge.NewClient(bridge.Config{
		BaseURL:  cfg.Mobile.BaseURL,
		Email:    cfg.Mobile.Email,
		Password: cfg.Mobile.Password,
	}, redis.NewTokenCache(rdb), logger.For("bridge"))

	// --- Repositories ---
	var (
		shopRepo         = postgres.NewShopRepository(db)
		employeeRepo     = postgres.NewEmployeeRepository(db)
		serviceRepo      = postgres.NewServiceRepository(db)
		saleRepo         = postgres.NewSaleRepository(db)
		accountRepo      = postgres.NewExpenseAccountRepository(db)
		expenseRepo      = postgres.NewExpenseRepository(db)
		inventoryRepo    = postgres.NewInventoryRepository(db)
		equipmentRepo    = postgres.NewEquipmentRepository(db)
		notificationRepo = postgres.NewNotificationRepository(db)
		ownershipRepo    = postgres.NewOwnershipRepository(db)
		reportRepo       = postgres.NewReportRepository(db)
	)

	// --- Services ---
	tokens := service.NewTokenService(cfg.Secret, nil)
	authz := service.NewAuthorizer(ownershipRepo)

	services := api.Services{
		Sessions:      service.NewSessionService(tokens, shopRepo, employeeRepo),
		Shops:         service.NewShopService(shopRepo, tokens, authz, mailer, cfg.Links.ResetURLBase, logger.For("shops")),
		Employees:     service.NewEmployeeService(employeeRepo, shopRepo, tokens, authz, mailer, cfg.Links.SetupURLBase, logger.For("employees")),
		Dashboard:     service.NewDashboardService(shopRepo, reportRepo, authz, logger.For("dashboard")),
		Bookings:      service.NewBookingService(bookingsClient, authz),
		Catalog:       service.NewCatalogService(shopRepo, serviceRepo, saleRepo, authz, logger.For("catalog")),
		Expenses:      service.NewExpenseService(accountRepo, expenseRepo, authz, logger.For("expenses")),
		Inventory:     service.NewInventoryService(inventoryRepo, shopRepo, notificationRepo, authz, mailer, smsSender, logger.For("inventory")),
		Equipment:     service.NewEquipmentService(equipmentRepo, authz),
		Notifications: service.NewNotificationService(notificationRepo, shopRepo, authz),
	}

	router := api.NewRouter(api.RouterConfig{
		APIKey: cfg.APIKey,
		Log:    logger.For("http"),
		Checks: []handlers.DependencyCheck{
			{Name: "postgres", Ping: func(ctx context.Context) error { return postgres.Ping(ctx, db) }},
			{Name: "mongodb", Ping: docs.Ping},
			{Name: "redis", Ping: func(ctx context.Context) error { return redis.Ping(ctx, rdb) }},
		},
	}, services)

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return router.Shutdown(shutdownCtx)
}
