package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the Prometheus output contains a metric
// matching the given name, partial label pattern, and value. Uses regex to
// handle extra OTel scope labels injected by the Prometheus exporter.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("piivault")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "piivault")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("piivault")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "piivault")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "tokens", "create", "success")
	bm.RecordOperation(ctx, "tokens", "create", "success")
	bm.RecordOperation(ctx, "redaction", "redact_query", "error")

	output := scrapeMetrics(t, provider)
	assertMetricLine(t, output, "piivault_operations_total",
		`domain="tokens",operation="create",status="success"`, "2")
	assertMetricLine(t, output, "piivault_operations_total",
		`domain="redaction",operation="redact_query",status="error"`, "1")
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("piivault")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "piivault")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordDuration(ctx, "tokens", "retrieve", 125*time.Millisecond, "success")

	output := scrapeMetrics(t, provider)
	assertMetricLine(t, output, "piivault_operation_duration_seconds_count",
		`domain="tokens",operation="retrieve",status="success"`, "1")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()

	assert.NotNil(t, noOp)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOp)

	// Neither call should panic or record anything.
	noOp.RecordOperation(context.Background(), "tokens", "create", "success")
	noOp.RecordDuration(context.Background(), "tokens", "create", 100*time.Millisecond, "error")
}

// scrapeMetrics fetches the Prometheus exposition output from the provider's
// handler.
func scrapeMetrics(t *testing.T, provider *Provider) string {
	t.Helper()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	return string(body)
}
