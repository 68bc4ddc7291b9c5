package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventscout/internal/eventbus"
)

func TestRecorderCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)

	bus := eventbus.New(nil)
	rec.Attach(bus)

	bus.Publish(eventbus.SearchStartedEvent{Seq: 1})
	bus.Publish(eventbus.SearchSucceededEvent{Seq: 1, Count: 3, Duration: 20 * time.Millisecond})
	bus.Publish(eventbus.SearchStartedEvent{Seq: 2})
	bus.Publish(eventbus.SearchFailedEvent{Seq: 2, Message: "Error fetching events"})
	bus.Publish(eventbus.SearchStartedEvent{Seq: 3})
	bus.Publish(eventbus.SearchDiscardedEvent{Seq: 3, Latest: 4})
	bus.Close()

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.requests.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.requests.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.requests.WithLabelValues(OutcomeStale)))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.resultCount))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.inflight))
}

func TestNewRecorderRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)
	_, err = NewRecorder(reg)
	require.Error(t, err)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)
	rec.resultCount.Set(7)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "eventscout_last_result_count 7")

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
