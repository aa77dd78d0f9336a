package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ea-coach-service/internal/app"
	"ea-coach-service/internal/mentor"
	"ea-coach-service/internal/metrics"
)

// Identity is the public sign-in configuration handed to clients.
type Identity struct {
	PublishableKey string `json:"publishableKey"`
	SignInRedirect string `json:"signInRedirect"`
}

// Deps are the services the router exposes.
type Deps struct {
	Exams    *app.ExamService
	Ethics   *app.EthicsService
	Sprints  *app.SprintService
	Mentor   *mentor.Service
	Metrics  *metrics.Metrics
	Identity Identity
	Logger   *zap.Logger
}

// NewRouter wires HTTP and websocket routes to the core services.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	exams := &examHandler{service: deps.Exams}
	practice := &practiceHandler{ethics: deps.Ethics, sprints: deps.Sprints}
	mentors := &mentorHandler{service: deps.Mentor}
	ws := NewWSHandler(deps.Exams, deps.Mentor, logger)

	r.Route("/api", func(api chi.Router) {
		api.Get("/identity", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, deps.Identity)
		})
		exams.RegisterRoutes(api)
		practice.RegisterRoutes(api)
		mentors.RegisterRoutes(api)
		registerCoachRoutes(api)
	})

	r.Get("/ws/exam/{id}", ws.ServeExam)
	r.Get("/ws/mentor/{id}", ws.ServeMentor)
	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
