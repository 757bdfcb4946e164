package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/lead-quiz/internal/logger"
)

var (
	// Global flags
	verbose  bool
	quizPath string

	// Logger
	zl *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "quizctl",
	Short: "Operator tool for the lead quiz",
	Long: `quizctl checks quiz documents, scores answer files offline and
exports collected leads and responses as CSV. It can also create the
Postgres schema and tail result events from RabbitMQ.

Store and mail settings are read from the same environment (or .env) as the
API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		zl, err = logger.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zl != nil {
			_ = zl.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&quizPath, "quiz", "", "quiz document (default: QUIZ_CONFIG_PATH or questions.json)")

	rootCmd.AddCommand(checkConfigCmd, scoreCmd, exportCmd, migrateCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
