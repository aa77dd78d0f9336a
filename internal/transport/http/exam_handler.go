package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ea-coach-service/internal/app"
)

type examHandler struct {
	service *app.ExamService
}

func (h *examHandler) RegisterRoutes(r chi.Router) {
	r.Route("/exams", func(r chi.Router) {
		r.Get("/forms", h.listForms)
		r.Get("/results", h.listResults)
		r.Post("/", h.start)
		r.Get("/{id}", h.get)
		r.Delete("/{id}", h.abandon)
		r.Post("/{id}/commands", h.command)
		r.Get("/{id}/study-plan", h.studyPlan)
	})
}

func (h *examHandler) listForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.service.Forms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

func (h *examHandler) listResults(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, errBadRequest)
			return
		}
		limit = n
	}
	records, err := h.service.Results(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type startExamRequest struct {
	FormID string `json:"formId"`
}

func (h *examHandler) start(w http.ResponseWriter, r *http.Request) {
	var req startExamRequest
	if err := decodeJSON(w, r, &req); err != nil || req.FormID == "" {
		writeError(w, errBadRequest)
		return
	}
	snap, err := h.service.Start(r.Context(), req.FormID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (h *examHandler) get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *examHandler) abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *examHandler) command(w http.ResponseWriter, r *http.Request) {
	var cmd app.Command
	if err := decodeJSON(w, r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	snap, err := h.service.Apply(r.Context(), chi.URLParam(r, "id"), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *examHandler) studyPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.StudyPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
