package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-dealership/internal/config"
	"go-dealership/internal/database"
	"go-dealership/internal/handler"
	"go-dealership/internal/middleware"
	"go-dealership/internal/repository"
	"go-dealership/internal/router"
	"go-dealership/internal/service"
	"go-dealership/internal/token"
	"go-dealership/internal/util"
	"go-dealership/internal/view"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	accountRepo := repository.NewAccountRepository(pool)
	classificationRepo := repository.NewClassificationRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	slog.Info("database ready")

	codec, err := token.NewCodec(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize session codec: %w", err)
	}

	imageResolver, err := util.NewImagePathResolver(cfg.PublicRoot)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize image path resolver: %w", err)
	}
	thumbnails := service.NewThumbnailService(imageResolver, cfg.ThumbnailMaxSize)

	accountService := service.NewAccountService(accountRepo, codec)
	inventoryService := service.NewInventoryService(classificationRepo, inventoryRepo, thumbnails)
	reviewService := service.NewReviewService(reviewRepo)

	views, err := view.New(cfg.SiteName)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	secure := cfg.SecureCookies()
	session := middleware.NewSession(codec, secure)

	base := handler.NewBase(views, inventoryService, secure)
	appRouter := router.New(cfg, session, reviewService, router.Handlers{
		Account:   handler.NewAccountHandler(base, accountService, reviewService, codec.TTL()),
		Inventory: handler.NewInventoryHandler(base),
		Review:    handler.NewReviewHandler(base, reviewService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.db.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
