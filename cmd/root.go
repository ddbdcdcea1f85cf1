package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "taskboard",
	Short:         "Personal task board",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		// Make zap available to packages that log through zap.L().
		zap.ReplaceGlobals(logger)

		if err := godotenv.Load(); err != nil {
			zap.L().Info(".env file not found, using environment variables")
		}
		return nil
	},
}

func Execute() {
	defer func() {
		_ = zap.L().Sync()
	}()

	if err := rootCmd.Execute(); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		_ = zap.L().Sync()
		os.Exit(1)
	}
}
