package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/mentor"
)

type mentorHandler struct {
	service *mentor.Service
}

func (h *mentorHandler) RegisterRoutes(r chi.Router) {
	r.Route("/mentor", func(r chi.Router) {
		r.Post("/route", h.route)
		r.Post("/conversations", h.open)
		r.Get("/conversations/{id}", h.get)
		r.Delete("/conversations/{id}", h.close)
		r.Post("/conversations/{id}/messages", h.send)
		r.Post("/conversations/{id}/cancel", h.cancel)
	})
}

type openRequest struct {
	Placement mentor.Placement      `json:"placement"`
	Learner   domain.LearnerContext `json:"learner"`
}

func (h *mentorHandler) open(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.service.Open(r.Context(), req.Placement, req.Learner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *mentorHandler) get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *mentorHandler) close(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type textRequest struct {
	Text string `json:"text"`
}

// send accepts the user message; the reply arrives on the conversation
// stream or via a later GET.
func (h *mentorHandler) send(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.service.Send(r.Context(), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, msg)
}

func (h *mentorHandler) cancel(w http.ResponseWriter, r *http.Request) {
	cancelled, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": cancelled})
}

func (h *mentorHandler) route(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Text == "" {
		writeError(w, mentor.ErrEmptyMessage)
		return
	}
	writeJSON(w, http.StatusOK, mentor.Classify(req.Text))
}
