package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveScanDuration(150 * time.Millisecond)
	pr.IncScanOutcome(OutcomeSuccess)
	pr.IncEntryFailure("lstat")
	pr.IncEntryFailure("lstat")
	pr.SetLastScan(2, 7)
	pr.IncCoalescerFire(EdgeLeading)
	pr.IncCoalescerDeferred()
	pr.IncCoalescerIgnored()

	assert.InDelta(t, 2, testutil.ToFloat64(pr.entryFailures.WithLabelValues("lstat")), 0)
	assert.InDelta(t, 7, testutil.ToFloat64(pr.lastScanDocuments), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.coalescerFires.WithLabelValues("leading")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveScanDuration(time.Second)
		pr.IncScanOutcome(OutcomeFatal)
		pr.IncEntryFailure("readdir")
		pr.SetLastScan(1, 1)
		pr.IncCoalescerFire(EdgeTrailing)
		pr.IncCoalescerDeferred()
		pr.IncCoalescerIgnored()
	})
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncScanOutcome(OutcomeSuccess)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "docsidebar_scan_outcomes_total"))
}
