package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prasitlab/disaster-lens/internal/generation"
	"github.com/prasitlab/disaster-lens/internal/logger"
	"github.com/prasitlab/disaster-lens/internal/observability"
	"github.com/prasitlab/disaster-lens/internal/pipeline"
	"github.com/prasitlab/disaster-lens/internal/sourcecheck"
	"github.com/prasitlab/disaster-lens/internal/store"
	"github.com/prasitlab/disaster-lens/internal/validate"
	"github.com/prasitlab/disaster-lens/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant web app",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		log := logger.New("disaster-lens")

		client, err := generation.NewClient(context.Background(),
			cfg.Generation.Model,
			cfg.Generation.RateLimit,
			time.Duration(cfg.Generation.TimeoutSeconds)*time.Second)
		if err != nil {
			return err
		}

		metrics := observability.NewMetrics()
		analyzer := pipeline.New(client,
			validate.Bounds{Min: cfg.Analysis.MinEvents, Max: cfg.Analysis.MaxEvents},
			log, metrics)

		srv := &web.Server{
			Analyzer: analyzer,
			Logger:   log,
			Model:    cfg.Generation.Model,
			Addr:     fmt.Sprintf("%s:%d", serveHost, servePort),
		}

		if cfg.History.Enabled {
			s, err := store.New(cfg.History.Dir)
			if err != nil {
				return err
			}
			defer s.Close()
			srv.Store = s
		}

		if cfg.Sources.Inspect {
			srv.Inspector = sourcecheck.New(time.Duration(cfg.Sources.TimeoutSeconds) * time.Second)
		}

		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
