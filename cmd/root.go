package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eventscout/internal/config"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath      string
	apiURL          string
	logLevel        string
	logFile         string
	metricsAddr     string
	requireEndpoint bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "eventscout",
		Short: "Discover events in a city from your terminal",
		Long: `eventscout searches a remote event endpoint for things happening in a city.

Modes:
  eventscout                  Run the interactive search (default)
  eventscout search           Run one search and print the results
  eventscout fixtures serve   Serve sample events for demos and tests
  eventscout config init      Write a default config file`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "",
		"Config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.apiURL, "api-url", "",
		"Search endpoint, overrides the config file and "+config.EnvAPIURL)
	flags.StringVar(&opts.logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFile, "log-file", "",
		`Log file, "-" for stderr`)
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "",
		"Serve Prometheus metrics on this address")
	flags.BoolVar(&opts.requireEndpoint, "require-endpoint", false,
		"Fail at startup instead of warning when no search endpoint is configured")

	root.AddCommand(
		newSearchCommand(opts),
		newFixturesCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command until it returns or the process is interrupted
func Execute() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
