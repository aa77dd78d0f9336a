package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.ExamStarted()
	m.ExamEnded("confirmed")
	m.ExamEnded("confirmed")
	m.EthicsChoice(true)
	m.MentorReply("chat", "ok", 0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.examsEnded.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeSessions))
	m.ExamDropped()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeSessions))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "eacoach_exam_sessions_started_total 1")
	assert.Contains(t, string(body), `eacoach_ethics_choices_total{classification="ethical"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ExamStarted()
	m.ExamEnded("time-expired")
	m.MentorReply("bubble", "error", 0)
	assert.NotNil(t, m.Handler())
}

func TestNewWithSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWith(reg, reg)
	m.SprintFinished()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sprints))
}
