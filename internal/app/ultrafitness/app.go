// Package ultrafitness собирает основное HTTP-приложение личного кабинета:
// хранилище, миграции, кеш, сервисы и маршруты.
package ultrafitness

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/cache"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/config"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/jwt"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/migrations"
	analyticsservice "github.com/dacchuvinay/ultra-fitness-backend/internal/services/analytics"
	announcementservice "github.com/dacchuvinay/ultra-fitness-backend/internal/services/announcement"
	memberservice "github.com/dacchuvinay/ultra-fitness-backend/internal/services/member"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/storage/repository"
)

// App основное HTTP-приложение личного кабинета.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создает приложение: подключает PostgreSQL, накатывает миграции,
// инициализирует Redis, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	memberService := memberservice.NewMemberService(db, cacheRedis, jwtMaker, logger)
	announcementService := announcementservice.NewAnnouncementService(db, cacheRedis, logger)
	analyticsService := analyticsservice.NewAnalyticsService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db,
		memberService, announcementService, analyticsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
