package client

import (
	"context"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carrental/carrental/client/internal/api"
	"github.com/carrental/carrental/client/rentaltest"
)

func counterValue(t *testing.T, area, method, outcome string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, requestsTotal.WithLabelValues(area, method, outcome).Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetricsObserver(t *testing.T) {
	before := counterValue(t, "metrics-test", "GET", api.OutcomeSuccess)
	metricsObserver{}.ObserveRequest(context.Background(), "metrics-test", "GET", api.OutcomeSuccess, 10*time.Millisecond)
	assert.Equal(t, before+1, counterValue(t, "metrics-test", "GET", api.OutcomeSuccess))
}

func TestMetrics_CountClientCalls(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	c := newTestClient(t, srv)
	ctx := context.Background()

	okBefore := counterValue(t, "cars", "GET", api.OutcomeSuccess)
	errBefore := counterValue(t, "cars", "GET", api.OutcomeAPIError)

	_, err := c.ListCars(ctx)
	require.NoError(t, err)
	_, err = c.GetCar(ctx, "missing")
	require.Error(t, err)

	assert.Equal(t, okBefore+1, counterValue(t, "cars", "GET", api.OutcomeSuccess))
	assert.Equal(t, errBefore+1, counterValue(t, "cars", "GET", api.OutcomeAPIError))
}
