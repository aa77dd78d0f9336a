package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	examsStarted   prometheus.Counter
	examsEnded     *prometheus.CounterVec
	activeSessions prometheus.Gauge
	ethicsChoices  *prometheus.CounterVec
	sprints        prometheus.Counter
	mentorReplies  *prometheus.CounterVec
	mentorLatency  *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWith(reg, reg)
}

// NewWith registers the collectors on reg and serves them from gatherer.
func NewWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: gatherer,
		examsStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "eacoach_exam_sessions_started_total",
			Help: "Exam sessions started",
		}),
		examsEnded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eacoach_exam_sessions_ended_total",
			Help: "Exam sessions ended, by reason",
		}, []string{"reason"}),
		activeSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "eacoach_exam_sessions_active",
			Help: "Exam sessions currently held in memory",
		}),
		ethicsChoices: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eacoach_ethics_choices_total",
			Help: "Ethics scenario choices, by classification",
		}, []string{"classification"}),
		sprints: f.NewCounter(prometheus.CounterOpts{
			Name: "eacoach_sprints_finished_total",
			Help: "Sprints finished",
		}),
		mentorReplies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eacoach_mentor_replies_total",
			Help: "Mentor replies, by placement and outcome",
		}, []string{"placement", "outcome"}),
		mentorLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eacoach_mentor_reply_seconds",
			Help:    "Time from user message to mentor reply",
			Buckets: prometheus.DefBuckets,
		}, []string{"placement"}),
	}
}

func (m *Metrics) ExamStarted() {
	if m == nil {
		return
	}
	m.examsStarted.Inc()
	m.activeSessions.Inc()
}

func (m *Metrics) ExamEnded(reason string) {
	if m == nil {
		return
	}
	m.examsEnded.WithLabelValues(reason).Inc()
}

// ExamDropped is recorded when a session leaves memory.
func (m *Metrics) ExamDropped() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

func (m *Metrics) EthicsChoice(ethical bool) {
	if m == nil {
		return
	}
	label := "unethical"
	if ethical {
		label = "ethical"
	}
	m.ethicsChoices.WithLabelValues(label).Inc()
}

func (m *Metrics) SprintFinished() {
	if m == nil {
		return
	}
	m.sprints.Inc()
}

// MentorReply records a reply outcome: ok, cancelled, rate_limited or error.
func (m *Metrics) MentorReply(placement, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.mentorReplies.WithLabelValues(placement, outcome).Inc()
	if outcome == "ok" {
		m.mentorLatency.WithLabelValues(placement).Observe(seconds)
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
