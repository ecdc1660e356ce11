package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQuery(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordQuery("regions", 3, 2*time.Millisecond, nil)
	m.RecordQuery("regions", 0, time.Millisecond, errors.New("boom"))

	assert.InDelta(t, 1, testutil.ToFloat64(m.storeQueriesTotal.WithLabelValues("regions", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.storeErrorsTotal.WithLabelValues("regions")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.storeRowsReturned.WithLabelValues("regions")), 0)
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordQuery("x", 1, time.Second, nil)
		m.RecordStale("trainers")
		m.RecordHTTP("GET", "/", "200", time.Second)
		m.RecordImageResolution(true)
		m.RecordAudit(map[string]int{"regions": 9}, 0, nil)
	})
}

func TestRecordAudit(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordAudit(map[string]int{"trainers": 5, "teams": 4}, 2, nil)
	assert.InDelta(t, 5, testutil.ToFloat64(m.catalogEntities.WithLabelValues("trainers")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.catalogViolations), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.auditRunsTotal.WithLabelValues("violations")), 0)

	// A failed snapshot leaves the last gauges in place.
	m.RecordAudit(nil, 0, errors.New("down"))
	assert.InDelta(t, 2, testutil.ToFloat64(m.catalogViolations), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.auditRunsTotal.WithLabelValues("error")), 0)
}
