package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prasitlab/disaster-lens/internal/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "disaster-lens",
	Short: "Turn natural-language disaster queries into structured event statistics",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
}

func Execute() error {
	return rootCmd.Execute()
}
