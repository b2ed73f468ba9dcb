package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"souqly_backend/database"
	"souqly_backend/internal/auth"
	"souqly_backend/internal/config"
	"souqly_backend/internal/handlers"
	"souqly_backend/internal/logger"
	"souqly_backend/internal/repositories"
	"souqly_backend/internal/routes"
	"souqly_backend/internal/services"
	"souqly_backend/ws"
)

// Run boots the whole service and blocks until shutdown.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger.Init(cfg.Env)
	logger.Info("🚀 Server starting", "env", cfg.Env, "addr", cfg.Server.Addr())

	gormDB, sqlDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.Migrate(gormDB); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := seedAdmin(ctx, repositories.NewUserRepository(gormDB), cfg.Admin); err != nil {
		return err
	}

	manager := ws.NewManager()
	go manager.Run(ctx)

	router := SetupRouter(cfg, gormDB, sqlDB, manager)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("✅ Server stopped cleanly")
	return nil
}

// SetupRouter builds the gin engine with all routes wired. Extracted so
// tests can drive the full HTTP surface without a listener.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB, manager *ws.Manager) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	sc := services.NewServiceContainer(gormDB, manager, cfg)
	appHandlers := handlers.NewAppHandlers(sc, sqlDB, cfg.WebSocket.SendBufferSize)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.Setup(router, appHandlers, tokens)
	return router
}

func openDatabase(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gormDB, sqlDB, nil
}
