package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"eventscout/internal/config"
	"eventscout/internal/eventbus"
	"eventscout/internal/logging"
	"eventscout/internal/metrics"
	"eventscout/internal/search"
	"eventscout/internal/session"
)

// placeholderWarning is the banner shown when no endpoint is configured
const placeholderWarning = "No search endpoint configured. Searches go to " + config.PlaceholderAPIURL +
	". Set " + config.EnvAPIURL + " or --api-url."

// app is the wired set of services a command runs against
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	bus        eventbus.EventBus
	registry   *prometheus.Registry
	controller *session.Controller
	warning    string

	closers []func()
}

// loadConfig resolves configuration: file, then environment, then flags
func (o *rootOptions) loadConfig() (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigServiceAt(o.configPath)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}

	cfg.ApplyEnv(os.Getenv)
	if o.apiURL != "" {
		cfg.APIURL = o.apiURL
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.metricsAddr != "" {
		cfg.MetricsAddr = o.metricsAddr
	}
	return cfg, svc, nil
}

// newApp loads config and wires logging, the event bus, metrics and the
// session controller. logFile is used when neither config nor flags name one.
func newApp(ctx context.Context, o *rootOptions, logFile string) (*app, error) {
	cfg, _, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	var warning string
	if err := cfg.Validate(); err != nil {
		if !errors.Is(err, config.ErrPlaceholderEndpoint) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		if o.requireEndpoint {
			return nil, fmt.Errorf("%w (set %s or --api-url)", err, config.EnvAPIURL)
		}
		warning = placeholderWarning
	}

	if cfg.Log.File != "" {
		logFile = cfg.Log.File
	}
	logger, err := logging.New(cfg.Log.Level, logFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, warning: warning}

	a.bus = eventbus.New(logger)
	a.closers = append(a.closers, logEvents(a.bus, logger))

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := metrics.NewRecorder(a.registry)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	a.closers = append(a.closers, recorder.Attach(a.bus))

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, a.registry, logger); err != nil {
				logger.Error("metrics listener failed", zap.Error(err))
			}
		}()
	}

	timeout, _ := cfg.Timeout()
	client := search.NewHTTPClient(cfg.Endpoint(),
		search.WithTimeout(timeout),
		search.WithLogger(logger),
	)
	a.controller = session.NewController(client, a.bus, logger)

	if warning != "" {
		logger.Warn("using placeholder search endpoint", zap.String("endpoint", cfg.Endpoint()))
	}
	a.bus.Publish(eventbus.ConfigLoadedEvent{
		APIURL:      cfg.Endpoint(),
		Placeholder: cfg.UsesPlaceholder(),
	})

	return a, nil
}

// Close cancels in-flight searches, drains the bus into its subscribers and
// then detaches them
func (a *app) Close() {
	if a.controller != nil {
		a.controller.Close()
	}
	a.bus.Close()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	_ = a.logger.Sync()
}

var loggedEvents = []eventbus.EventType{
	eventbus.EventSearchStarted,
	eventbus.EventSearchSucceeded,
	eventbus.EventSearchFailed,
	eventbus.EventSearchDiscarded,
	eventbus.EventSearchRetried,
	eventbus.EventSortChanged,
	eventbus.EventConfigLoaded,
}

// logEvents writes every bus event to the log at debug level
func logEvents(bus eventbus.EventBus, logger *zap.Logger) func() {
	logger = logger.Named("events")
	unsubs := make([]func(), 0, len(loggedEvents))
	for _, t := range loggedEvents {
		unsubs = append(unsubs, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			logger.Debug("event", zap.String("type", string(e.Type())), zap.Any("payload", e))
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
