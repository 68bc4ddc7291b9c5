package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eventscout/internal/fixtures"
	"eventscout/internal/logging"
)

type fixturesOptions struct {
	addr       string
	file       string
	latency    time.Duration
	failStatus int
}

func newFixturesCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Sample event endpoint for demos and tests",
	}
	cmd.AddCommand(newFixturesServeCommand(root))
	return cmd
}

func newFixturesServeCommand(root *rootOptions) *cobra.Command {
	fo := &fixturesOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sample events over the search endpoint contract",
		Example: `  eventscout fixtures serve --addr 127.0.0.1:8787
  EVENTSCOUT_API_URL=http://127.0.0.1:8787 eventscout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(fo.file)
			if err != nil {
				return err
			}

			logFile := root.logFile
			if logFile == "" {
				logFile = "-"
			}
			logger, err := logging.New(root.logLevel, logFile)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ln, err := net.Listen("tcp", fo.addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", fo.addr, err)
			}

			handler := fixtures.NewHandler(catalog, logger, fixtures.Options{
				Latency:    fo.latency,
				FailStatus: fo.failStatus,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d sample events on http://%s\n", catalog.Len(), ln.Addr())
			return serveUntilDone(cmd.Context(), ln, handler, logger)
		},
	}

	cmd.Flags().StringVar(&fo.addr, "addr", "127.0.0.1:8787", "Listen address")
	cmd.Flags().StringVar(&fo.file, "file", "", "YAML event catalog (default: built-in sample events)")
	cmd.Flags().DurationVar(&fo.latency, "latency", 0, "Delay every response by this long")
	cmd.Flags().IntVar(&fo.failStatus, "fail-status", 0, "Answer every search with this HTTP status")

	return cmd
}

func loadCatalog(path string) (*fixtures.Catalog, error) {
	if path == "" {
		return fixtures.DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return fixtures.ParseCatalog(data)
}

// serveUntilDone serves on ln until ctx is cancelled
func serveUntilDone(ctx context.Context, ln net.Listener, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("fixture endpoint listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
