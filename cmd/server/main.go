package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/katakuxiko/askai/internal/api"
	"github.com/katakuxiko/askai/internal/config"
	"github.com/katakuxiko/askai/internal/metrics"
	"github.com/katakuxiko/askai/internal/service"
	"github.com/katakuxiko/askai/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		envFile    string
		addr       string
		staticDir  string
	)

	cmd := &cobra.Command{
		Use:   "askai",
		Short: "Serves the inbox front-end and proxies questions to Gemini",
		Long: `askai serves the pre-built front-end and exposes POST /ask-ai, which
forwards a question about an email to the Gemini generate API and
returns {"answer": "..."}.

Settings come from defaults, then --config (YAML), then --env-file and
the environment, then flags.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.ServerAddr = addr
			}
			if cmd.Flags().Changed("static-dir") {
				cfg.StaticDir = staticDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to env file, ignored when missing")
	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddr, "HTTP listen address")
	cmd.Flags().StringVar(&staticDir, "static-dir", config.DefaultStaticDir, "Directory with the pre-built front-end")

	return cmd
}

func run(cfg *config.Config) error {
	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// store
	var (
		recorder service.Recorder
		history  api.HistoryLister
	)
	if cfg.HistoryEnabled() {
		pg, err := store.NewPgStore(cfg.PgConn)
		if err != nil {
			return fmt.Errorf("history store: %w", err)
		}
		defer pg.Close()
		recorder, history = pg, pg
		log.Println("Ask history enabled")
	}

	// services
	llm := service.NewLLMClient(cfg)
	ask := service.NewAskService(llm, recorder, m)

	// api
	app := api.NewApp()
	api.RegisterRoutes(app, cfg, ask, history, reg)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server started at %s", cfg.ServerAddr)
		errCh <- app.Listen(cfg.ServerAddr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errCh:
		return err
	case <-shutdown:
		log.Println("Shutdown signal received")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("HTTP server stopped")
	return nil
}
