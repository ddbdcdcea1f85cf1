package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "taskboard.com/taskboard/internal/configs"
	httpapi "taskboard.com/taskboard/internal/http"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/services"
	"taskboard.com/taskboard/pkg/translator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Migrates the database and serves the task board pages and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		sqlDB, err := database.DB()
		if err == nil {
			defer sqlDB.Close()
		}
		if err := config.Migrate(database); err != nil {
			return err
		}

		sessions, closeSessions, err := newSessionStore(cfg, database)
		if err != nil {
			return err
		}
		defer closeSessions()

		tr, err := translator.New()
		if err != nil {
			return err
		}

		authService := services.NewAuthService(
			repository.NewUserRepository(database),
			sessions,
			cfg.AuthSecret,
			cfg.SessionTTL,
		)
		taskService := services.NewTaskService(repository.NewTaskRepository(database))
		categoryService := services.NewCategoryService(repository.NewCategoryRepository(database))

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		h := httpapi.NewHandler(authService, taskService, categoryService, tr, cfg.CookieSecure)
		if err := httpapi.Register(e, h, cfg.RateLimit); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			zap.L().Info("HTTP server listening",
				zap.String("addr", cfg.AppURL),
				zap.String("database_driver", cfg.DatabaseDriver),
				zap.String("session_store", cfg.SessionStore),
			)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zap.L().Error("server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(echoCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		zap.L().Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
