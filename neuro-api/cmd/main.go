package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/neurolab/neuro-api/internal/cache"
	"github.com/weiawesome/neurolab/neuro-api/internal/config"
	"github.com/weiawesome/neurolab/neuro-api/internal/handler"
	"github.com/weiawesome/neurolab/neuro-api/internal/repository"
	"github.com/weiawesome/neurolab/neuro-api/internal/service"
	pkgconfig "github.com/weiawesome/neurolab/pkg/config"
	"github.com/weiawesome/neurolab/pkg/database"
	"github.com/weiawesome/neurolab/pkg/log"
	"github.com/weiawesome/neurolab/pkg/middleware"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	if err := pkgconfig.LoadDotEnv(); err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	if _, err := log.Init(log.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "neuro-api",
	}); err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("failed to init logger")
	}
	l := log.L()

	// Connect to database using GORM
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db, repository.Models()...); err != nil {
		l.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	if err := repository.Seed(context.Background(), db, time.Now()); err != nil {
		l.Fatal().Err(err).Msg("failed to seed database")
	}
	l.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	// Analytics cache: redis when configured, in process otherwise
	var analyticsCache cache.AnalyticsCache
	if cfg.Redis.Address != "" {
		redisCache, err := cache.NewRedisAnalyticsCache(cfg.Redis, cfg.Cache.Prefix)
		if err != nil {
			l.Fatal().Err(err).Msg("failed to create redis cache")
		}
		analyticsCache = redisCache
	} else {
		analyticsCache = cache.NewMemoryAnalyticsCache(cfg.Cache.Prefix)
	}
	defer analyticsCache.Close()

	// Initialize services
	chatService, err := service.NewChatService(
		repository.NewGormChatRepository(db),
		cfg.Chat.Mode,
		cfg.Chat.ReplyDelay,
	)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create chat service")
	}
	dashboardService := service.NewDashboardService(
		repository.NewGormAnalyticsRepository(db),
		analyticsCache,
		cfg.Cache.TTL,
		cfg.Analytics.Delay,
	)
	profileService := service.NewProfileService(repository.NewGormProfileRepository(db))
	accountService := service.NewAccountService(repository.NewGormAccountRepository(db), 0)
	testService := service.NewTestService(repository.NewGormTestResultRepository(db))

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(
		chatService,
		dashboardService,
		profileService,
		accountService,
		testService,
		cfg.Profile.DefaultUserID,
	)

	// Setup Gin router
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(log.GinMiddleware(l))

	httpHandler.RegisterRoutes(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		l.Info().
			Str("addr", addr).
			Str("chat_mode", cfg.Chat.Mode).
			Msg("starting neuro-api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}

	l.Info().Msg("server exited")
}
