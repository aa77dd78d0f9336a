package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ea-coach-service/internal/app"
	"ea-coach-service/internal/exam"
)

// practiceHandler serves ethics scenario runs and timed sprints.
type practiceHandler struct {
	ethics  *app.EthicsService
	sprints *app.SprintService
}

func (h *practiceHandler) RegisterRoutes(r chi.Router) {
	r.Route("/ethics", func(r chi.Router) {
		r.Get("/decks", h.listDecks)
		r.Post("/runs", h.startRun)
		r.Get("/runs/{id}", h.getRun)
		r.Delete("/runs/{id}", h.discardRun)
		r.Post("/runs/{id}/choice", h.choose)
		r.Post("/runs/{id}/advance", h.advance)
	})
	r.Route("/sprints", func(r chi.Router) {
		r.Post("/", h.startSprint)
		r.Get("/{id}", h.getSprint)
		r.Delete("/{id}", h.discardSprint)
		r.Post("/{id}/answer", h.answer)
		r.Post("/{id}/next", h.next)
	})
}

func (h *practiceHandler) listDecks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.ethics.Decks())
}

type startRunRequest struct {
	DeckID string `json:"deckId"`
}

func (h *practiceHandler) startRun(w http.ResponseWriter, r *http.Request) {
	var req startRunRequest
	if err := decodeJSON(w, r, &req); err != nil || req.DeckID == "" {
		writeError(w, errBadRequest)
		return
	}
	view, err := h.ethics.Start(r.Context(), req.DeckID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *practiceHandler) getRun(w http.ResponseWriter, r *http.Request) {
	view, err := h.ethics.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *practiceHandler) discardRun(w http.ResponseWriter, r *http.Request) {
	if err := h.ethics.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type choiceRequest struct {
	Choice *int `json:"choice"`
}

func (h *practiceHandler) choose(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Choice == nil {
		writeError(w, errBadRequest)
		return
	}
	view, err := h.ethics.Choose(r.Context(), chi.URLParam(r, "id"), *req.Choice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *practiceHandler) advance(w http.ResponseWriter, r *http.Request) {
	view, err := h.ethics.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *practiceHandler) startSprint(w http.ResponseWriter, r *http.Request) {
	state, err := h.sprints.Start(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *practiceHandler) getSprint(w http.ResponseWriter, r *http.Request) {
	state, err := h.sprints.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *practiceHandler) discardSprint(w http.ResponseWriter, r *http.Request) {
	if err := h.sprints.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type answerRequest struct {
	Option *int `json:"option"`
}

type answerResponse struct {
	Feedback exam.Feedback   `json:"feedback"`
	Sprint   app.SprintState `json:"sprint"`
}

func (h *practiceHandler) answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Option == nil {
		writeError(w, errBadRequest)
		return
	}
	fb, state, err := h.sprints.Answer(r.Context(), chi.URLParam(r, "id"), *req.Option)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Feedback: fb, Sprint: state})
}

func (h *practiceHandler) next(w http.ResponseWriter, r *http.Request) {
	state, err := h.sprints.Next(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
