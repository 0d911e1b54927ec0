package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prasitlab/disaster-lens/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and analysis history",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Configuration\n")
		fmt.Printf("=============\n")
		fmt.Printf("Model:          %s\n", cfg.Generation.Model)
		fmt.Printf("Event bounds:   %d-%d\n", cfg.Analysis.MinEvents, cfg.Analysis.MaxEvents)
		fmt.Printf("History:        %v (%s)\n", cfg.History.Enabled, cfg.History.Dir)
		fmt.Printf("Source inspect: %v\n", cfg.Sources.Inspect)
		if os.Getenv("GEMINI_API_KEY") == "" {
			fmt.Printf("API key:        GEMINI_API_KEY not set\n")
		} else {
			fmt.Printf("API key:        set\n")
		}

		if !cfg.History.Enabled {
			return nil
		}

		s, err := store.New(cfg.History.Dir)
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.ListAnalyses()
		if err != nil {
			return err
		}

		fmt.Printf("\nSaved analyses: %d\n", len(list))
		for _, a := range list {
			fmt.Printf("  %s  %s / %s  (%d events)  %s\n",
				a.CreatedAt, a.EventType, a.Location, a.ParsedCount, a.ID)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
