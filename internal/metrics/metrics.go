package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	questionsCreated prometheus.Counter
	questionsDeleted prometheus.Counter
	quizzesEnded     prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "trivia",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		questionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "questions_created_total",
			Help:      "Questions created.",
		}),
		questionsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "questions_deleted_total",
			Help:      "Questions deleted.",
		}),
		quizzesEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "quiz_games_ended_total",
			Help:      "Quiz requests answered with forceEnd.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.questionsCreated, m.questionsDeleted, m.quizzesEnded)
	return m
}

// Middleware records request counts and latency labelled by the matched chi route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) QuestionCreated() { m.questionsCreated.Inc() }
func (m *Metrics) QuestionDeleted() { m.questionsDeleted.Inc() }
func (m *Metrics) QuizEnded()       { m.quizzesEnded.Inc() }
