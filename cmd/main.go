package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/config"
	"github.com/Dosada05/tournament-bracket/db"
	"github.com/Dosada05/tournament-bracket/handlers"
	"github.com/Dosada05/tournament-bracket/repositories"
	api "github.com/Dosada05/tournament-bracket/routes"
	"github.com/Dosada05/tournament-bracket/services"
	"github.com/Dosada05/tournament-bracket/storage"
	"github.com/Dosada05/tournament-bracket/utils"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const (
	dbConnectTimeout = 5 * time.Second
	shutdownTimeout  = 15 * time.Second
	requestTimeout   = 30 * time.Second
)

// @title           Tournament Bracket API
// @version         1.0
// @description     Запись команд, лист ожидания и сетка single elimination.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("state_backend", string(cfg.StateBackend)),
		slog.Int("default_capacity", cfg.DefaultCapacity),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stateRepo, closer, err := openStateRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close state backend", slog.Any("error", err))
		}
	}()

	adminHash := cfg.AdminPasswordHash
	if adminHash != "" {
		if err := utils.ValidateHash(adminHash); err != nil {
			return fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
		}
	} else {
		adminHash, err = utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
	}

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(logger)

	// Инициализация сервисов
	runner := services.NewStateRunner(stateRepo, wsHub, logger)
	authService := services.NewAuthService(adminHash)
	tournamentService := services.NewTournamentService(runner, logger)
	bracketService := services.NewBracketService(runner, brackets.NewSeededRand(), logger)

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, bracketService, cfg.CORSAllowedOrigins, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: requestTimeout,
	}, authHandler, tournamentHandler, bracketHandler, webSocketHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		wsHub.Run()
		return nil
	})

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		defer wsHub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

// openStateRepository выбирает хранилище снимка турнира по STATE_BACKEND.
func openStateRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.StateRepository, io.Closer, error) {
	noop := io.NopCloser(nil)

	switch cfg.StateBackend {
	case config.BackendPostgres:
		conn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		repo := repositories.NewPostgresStateRepository(conn, cfg.DefaultCapacity)
		if err := repo.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("prepare postgres schema: %w", err)
		}
		logger.Info("postgres state backend ready")
		return repo, conn, nil

	case config.BackendSQLite:
		conn, err := db.ConnectSQLite(cfg.SQLitePath, dbConnectTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		repo := repositories.NewSQLiteStateRepository(conn, cfg.DefaultCapacity)
		if err := repo.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("prepare sqlite schema: %w", err)
		}
		logger.Info("sqlite state backend ready", slog.String("path", cfg.SQLitePath))
		return repo, conn, nil

	case config.BackendR2:
		store, err := storage.NewCloudflareR2Store(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			Endpoint:        cfg.R2Endpoint,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("initialize Cloudflare R2 store: %w", err)
		}
		logger.Info("r2 state backend ready", slog.String("bucket", cfg.R2BucketName), slog.String("key", cfg.R2StateKey))
		return repositories.NewObjectStateRepository(store, cfg.R2StateKey, cfg.DefaultCapacity), noop, nil

	case config.BackendMemory:
		logger.Warn("memory state backend: tournament state is lost on restart")
		return repositories.NewObjectStateRepository(storage.NewMemoryStore(), "state.json", cfg.DefaultCapacity), noop, nil

	default:
		logger.Info("file state backend ready", slog.String("path", cfg.StateFile))
		return repositories.NewFileStateRepository(cfg.StateFile, cfg.DefaultCapacity), noop, nil
	}
}
