package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/sorteos-backend/api/routes"
	"github.com/ArowuTest/sorteos-backend/internal/config"
	"github.com/ArowuTest/sorteos-backend/internal/handlers"
	"github.com/ArowuTest/sorteos-backend/internal/middleware"
	mongorepo "github.com/ArowuTest/sorteos-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/sorteos-backend/internal/services"
	"github.com/ArowuTest/sorteos-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))

	ctx := context.Background()
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		slog.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}

	businessRepo := mongorepo.NewBusinessRepository(db)
	drawRepo := mongorepo.NewDrawRepository(db)
	saleRepo := mongorepo.NewSaleRepository(db)
	indexRepo := mongorepo.NewTicketIndexRepository(db)
	resultRepo := mongorepo.NewResultRepository(db)
	payoutRepo := mongorepo.NewPayoutRepository(db)

	ticketIDs, err := services.NewSnowflakeTicketIDs(cfg.App.SnowflakeNode)
	if err != nil {
		slog.Error("Failed to create ticket id generator", "error", err)
		os.Exit(1)
	}

	loc := cfg.Location()
	businessService := services.NewBusinessService(businessRepo)
	drawService := services.NewDrawService(drawRepo, saleRepo, resultRepo)
	saleService := services.NewSaleService(saleRepo, indexRepo, drawRepo, payoutRepo, ticketIDs, loc)
	resultService := services.NewResultService(resultRepo, drawRepo, payoutRepo, loc)
	payoutService := services.NewPayoutService(resultRepo, drawRepo, saleRepo, payoutRepo, loc)
	financeService := services.NewFinanceService(businessRepo, drawRepo, saleRepo, resultRepo, payoutRepo, loc)
	verificationService := services.NewVerificationService(indexRepo, saleRepo, businessRepo, drawRepo)
	maintenanceService := services.NewMaintenanceService(saleRepo, indexRepo, resultRepo, cfg.App.DeleteBatchSize)

	limiter := middleware.NewFixedWindowLimiter(cfg.RateLimit.Requests, cfg.RateWindow())
	evictCtx, stopEviction := context.WithCancel(context.Background())
	defer stopEviction()
	go limiter.RunEviction(evictCtx, cfg.RateWindow())

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		BusinessHandler: handlers.NewBusinessHandler(businessService),
		DrawHandler:     handlers.NewDrawHandler(drawService),
		SaleHandler:     handlers.NewSaleHandler(saleService, maintenanceService),
		ResultHandler:   handlers.NewResultHandler(resultService, payoutService, maintenanceService),
		FinanceHandler:  handlers.NewFinanceHandler(financeService),
		VerifyHandler:   handlers.NewVerifyHandler(verificationService, limiter),
		Store:           mongoClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port, "environment", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exiting")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
