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

	"smart-pantry-chef/internal/api"
	"smart-pantry-chef/internal/infrastructure/config"
	"smart-pantry-chef/internal/infrastructure/store"
	"smart-pantry-chef/internal/pkg/common"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.Log.Level, cfg.Log.Mode, cfg.Log.File); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	for _, warning := range cfg.Warnings() {
		common.LogWarn(warning)
	}

	common.LogInfo("Configuration loaded",
		zap.String("env", cfg.App.Env),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("spoonacular_key", config.MaskAPIKey(cfg.Recipe.APIKey)),
		zap.String("translation_url", cfg.Translation.BaseURL),
		zap.String("ml_service_url", cfg.ML.BaseURL),
	)

	userStore, err := store.Open(context.Background(), cfg.Database)
	if err != nil {
		common.LogFatal("Failed to connect to user store", zap.Error(err))
	}

	router := api.SetupRouter(cfg, userStore)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo(common.MsgServerStarting,
			zap.Int("port", cfg.Server.Port),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo(common.MsgServerShutdown)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	if err := userStore.Close(ctx); err != nil {
		common.LogError("Failed to close user store", zap.Error(err))
	}

	common.LogInfo(common.MsgServerExited)
}
