package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/application/service"
	"github.com/FRANKLIN09020/smart-billing/internal/config"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/billing"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	domainRepo "github.com/FRANKLIN09020/smart-billing/internal/domain/repository"
	"github.com/FRANKLIN09020/smart-billing/internal/infrastructure/database"
	"github.com/FRANKLIN09020/smart-billing/internal/infrastructure/repository"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/handler"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/routes"
	"github.com/FRANKLIN09020/smart-billing/pkg/logger"
	"github.com/FRANKLIN09020/smart-billing/pkg/printer"
	"github.com/FRANKLIN09020/smart-billing/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineOpts := []billing.Option{
		billing.WithTaxRate(cfg.Billing.TaxRate),
		billing.WithBillPrefix(cfg.Billing.BillPrefix),
	}

	var (
		engine          *billing.Engine
		idempotencyRepo domainRepo.IdempotencyRepository
	)

	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.IsProduction(), zlog)
		if err != nil {
			zlog.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := database.AutoMigrate(db, zlog); err != nil {
			zlog.Fatal("failed to run migrations", zap.Error(err))
		}
		if cfg.Billing.SeedDemoCatalog {
			if err := database.SeedCatalog(ctx, repository.NewProductRepository(db), billing.DemoProducts(), zlog); err != nil {
				zlog.Warn("failed to seed catalog", zap.Error(err))
			}
		}

		engine, err = repository.LoadEngine(ctx, db, engineOpts...)
		if err != nil {
			zlog.Fatal("failed to load billing state", zap.Error(err))
		}
		idempotencyRepo = repository.NewIdempotencyRepository(db)
	} else {
		var seed []entity.Product
		if cfg.Billing.SeedDemoCatalog {
			seed = billing.DemoProducts()
		}
		catalog, err := billing.NewCatalog(seed...)
		if err != nil {
			zlog.Fatal("failed to build catalog", zap.Error(err))
		}
		engine = billing.NewEngine(catalog, billing.NewLedger(), engineOpts...)
		idempotencyRepo = repository.NewMemoryIdempotencyRepository()
		zlog.Warn("database disabled, bills are kept in memory only")
	}

	zlog.Info("billing engine ready",
		zap.Int("products", engine.Catalog().Len()),
		zap.Int("bills", engine.Ledger().Count()),
		zap.String("tax_rate", engine.TaxRate().String()),
	)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.App.Name)

	authService, err := service.NewAuthService(cfg.Operator, jwtManager)
	if err != nil {
		zlog.Fatal("failed to configure operator", zap.Error(err))
	}
	catalogService := service.NewCatalogService(engine, zlog)
	cartService := service.NewCartService(engine)
	billService := service.NewBillService(engine, zlog)
	exportService := service.NewExportService(billService, cfg.Billing.ExportSheetTitle)

	transport, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		zlog.Warn("failed to initialize printer, receipts will not be printed", zap.Error(err))
		transport = printer.NewRecorder()
	}
	printerService := service.NewPrinterService(transport, billService, cfg.Store, cfg.Printer.Width, zlog)

	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Cart:    handler.NewCartHandler(cartService),
		Bill:    handler.NewBillHandler(billService, exportService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	rateLimiter := routes.NewRateLimiter(cfg.RateLimit)
	go rateLimiter.Run(ctx.Done())
	go purgeIdempotencyKeys(ctx, idempotencyRepo, zlog)

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Log:             zlog,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("app", cfg.App.Name), zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
}

// purgeIdempotencyKeys drops expired keys once an hour
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn("failed to purge idempotency keys", zap.Error(err))
			}
		}
	}
}
