package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"eventscout/internal/eventbus"
)

// Search outcomes used as the outcome label
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeStale   = "stale"
)

// Recorder holds the search collectors
type Recorder struct {
	requests    *prometheus.CounterVec
	duration    prometheus.Histogram
	resultCount prometheus.Gauge
	inflight    prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventscout",
			Name:      "search_requests_total",
			Help:      "Searches by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "eventscout",
			Name:      "search_duration_seconds",
			Help:      "Time from issuing a search to its response",
			Buckets:   prometheus.DefBuckets,
		}),
		resultCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eventscout",
			Name:      "last_result_count",
			Help:      "Number of events returned by the latest successful search",
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eventscout",
			Name:      "searches_in_flight",
			Help:      "Searches issued and not yet answered",
		}),
	}

	for _, c := range []prometheus.Collector{r.requests, r.duration, r.resultCount, r.inflight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Attach subscribes the recorder to search lifecycle events and returns a
// function that detaches it
func (r *Recorder) Attach(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventSearchStarted, func(eventbus.DomainEvent) {
			r.inflight.Inc()
		}),
		bus.Subscribe(eventbus.EventSearchSucceeded, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.SearchSucceededEvent)
			r.inflight.Dec()
			r.requests.WithLabelValues(OutcomeSuccess).Inc()
			r.duration.Observe(ev.Duration.Seconds())
			r.resultCount.Set(float64(ev.Count))
		}),
		bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.SearchFailedEvent)
			r.inflight.Dec()
			r.requests.WithLabelValues(OutcomeError).Inc()
			r.duration.Observe(ev.Duration.Seconds())
		}),
		bus.Subscribe(eventbus.EventSearchDiscarded, func(eventbus.DomainEvent) {
			r.inflight.Dec()
			r.requests.WithLabelValues(OutcomeStale).Inc()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Handler routes /metrics to reg and answers /healthz
func Handler(reg prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// Serve exposes reg on addr under /metrics until ctx is cancelled
func Serve(ctx context.Context, addr string, reg prometheus.Gatherer, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listener starting", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
