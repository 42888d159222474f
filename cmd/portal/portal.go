package portal

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pickhacks/portal/internal/adapters/config"
	"github.com/pickhacks/portal/internal/adapters/database/redis"
	"github.com/pickhacks/portal/pkg/logger"
	"github.com/pickhacks/portal/pkg/logger/types"
	"github.com/pickhacks/portal/pkg/metrics"
	"github.com/rs/cors"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type Portal struct {
	*gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *types.Logger
}

func New(config *config.Config) (*Portal, error) {
	httpLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}

	if !viper.GetBool("settings.debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	metrics.Register()

	return &Portal{
		Engine: engine,
		DB:     config.Database,
		Redis:  config.Redis,
		Logger: httpLogger,
	}, nil
}

// Start serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (p *Portal) Start() {
	handler := cors.New(cors.Options{
		AllowedOrigins:   viper.GetStringSlice("service.http.allowed-origins"),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(p.Engine)

	srv := &http.Server{
		Addr:              viper.GetString("service.http.addr"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Portal starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Panicf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %v", err)
	}
	if err := p.Redis.Close(); err != nil {
		logger.Log.Errorf("Error closing redis: %v", err)
	}
	if sqlDB, err := p.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Log.Info("Server exited properly")
}
