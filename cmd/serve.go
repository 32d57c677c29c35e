package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/repograph/repograph/internal/analyze"
	"github.com/repograph/repograph/internal/enrich"
	"github.com/repograph/repograph/internal/githost"
	"github.com/repograph/repograph/internal/llm"
	"github.com/repograph/repograph/internal/server"
	"github.com/repograph/repograph/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the repograph HTTP server",
	Long:  `Starts the HTTP server exposing repository graphs, module summaries, per-file analysis and rendered READMEs, with a WebSocket stream for build progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Port = servePort
		}

		gh := githost.NewClient(cfg.APIBaseURL, cfg.GitHubToken)

		var cache *store.Store
		if cfg.CachePath != "" {
			cache, err = store.Open(cfg.CachePath)
			if err != nil {
				return fmt.Errorf("opening snapshot cache: %w", err)
			}
			defer cache.Close()
		}

		var analyzer *analyze.AIAnalyzer
		if cfg.AIProvider != "" {
			provider, err := llm.NewProvider(string(cfg.AIProvider), cfg.AIModel)
			if err != nil {
				return fmt.Errorf("creating LLM provider: %w", err)
			}
			analyzer = analyze.NewAIAnalyzer(provider, cfg.AIModel)
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
			CacheTTL: time.Duration(cfg.CacheTTLMinutes) * time.Minute,
			Enrich: enrich.Options{
				SelectLimit: cfg.SelectLimit,
				FetchLimit:  cfg.FetchLimit,
				Concurrency: cfg.MaxConcurrency,
			},
		}, gh, cache, analyzer)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "repograph server v%s starting on port %d\n", Version, cfg.Port)
		if cfg.CachePath != "" {
			fmt.Fprintf(os.Stderr, "  Snapshot cache: %s (TTL %dm)\n", cfg.CachePath, cfg.CacheTTLMinutes)
		}
		if analyzer != nil {
			fmt.Fprintf(os.Stderr, "  AI analysis: %s (%s)\n", cfg.AIProvider, cfg.AIModel)
		}

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
