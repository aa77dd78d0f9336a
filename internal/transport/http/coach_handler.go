package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ea-coach-service/internal/coach"
	"ea-coach-service/internal/content"
	"ea-coach-service/internal/exam"
)

func registerCoachRoutes(r chi.Router) {
	r.Route("/coach", func(r chi.Router) {
		r.Get("/readiness", readiness)
		r.Post("/missions", missions)
		r.Get("/parts", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, coach.Parts())
		})
		r.Get("/parts/{n}", part)
		r.Get("/badges", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, content.Badges())
		})
		r.Get("/levels", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, content.Levels())
		})
		r.Post("/calculator", calculate)
		r.Get("/domain-bridge", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, content.BridgeConcepts())
		})
		r.Get("/heatmap", heatmap)
		r.Get("/focus-areas", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, content.FocusAreas())
		})
		r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, content.Stats())
		})
	})
}

func heatmap(w http.ResponseWriter, r *http.Request) {
	seed := int64(coach.DefaultHeatmapSeed)
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, errBadRequest)
			return
		}
		seed = v
	}
	writeJSON(w, http.StatusOK, coach.BuildHeatmap(seed))
}

func readiness(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	score, err := strconv.Atoi(q.Get("score"))
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	answered, err := strconv.Atoi(q.Get("answered"))
	if err != nil || answered < 0 {
		writeError(w, errBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, coach.Assess(score, answered))
}

func missions(w http.ResponseWriter, r *http.Request) {
	var in coach.MissionInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coach.Missions(in))
}

func part(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeError(w, errBadRequest)
		return
	}
	p, ok := coach.Part(n)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "exam part not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type calculatorRequest struct {
	Expression string `json:"expression"`
}

type calculatorResponse struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}

func calculate(w http.ResponseWriter, r *http.Request) {
	var req calculatorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	v, err := exam.Evaluate(req.Expression)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calculatorResponse{Expression: req.Expression, Result: v})
}
