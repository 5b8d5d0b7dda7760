package cmd

import (
	"fmt"

	"codetrek/configs"
	"codetrek/internal/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "codetrek",
	Short:         "CodeTrek tutoring backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	defer logger.SyncLogger()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (defaults to ./.env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(datasetCmd)
}

// loadConfig reads configuration once per command and initialises the
// global logger from it.
func loadConfig(cmd *cobra.Command) (*configs.Config, error) {
	var files []string
	if p, _ := cmd.Flags().GetString("env-file"); p != "" {
		files = append(files, p)
	}

	cfg := configs.LoadConfig(files...)
	logger.InitLogger(cfg.IsProduction())

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
