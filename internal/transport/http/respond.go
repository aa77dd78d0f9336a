package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"ea-coach-service/internal/app"
	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/ethics"
	"ea-coach-service/internal/exam"
	"ea-coach-service/internal/mentor"
)

var errBadRequest = errors.New("malformed request body")

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return errBadRequest
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrFormNotFound),
		errors.Is(err, domain.ErrDeckNotFound),
		errors.Is(err, domain.ErrRunNotFound),
		errors.Is(err, domain.ErrSprintNotFound),
		errors.Is(err, domain.ErrConversationNotFound):
		return http.StatusNotFound
	case errors.Is(err, mentor.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, exam.ErrNotInProgress),
		errors.Is(err, exam.ErrEndNotRequested),
		errors.Is(err, exam.ErrInvalidTransition),
		errors.Is(err, exam.ErrSprintFinished),
		errors.Is(err, exam.ErrAlreadyAnswered),
		errors.Is(err, exam.ErrAnswerRequired),
		errors.Is(err, ethics.ErrChoiceLocked),
		errors.Is(err, ethics.ErrNoOutcome),
		errors.Is(err, ethics.ErrRunCompleted),
		errors.Is(err, mentor.ErrReplyPending),
		errors.Is(err, mentor.ErrConversationClosed):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, app.ErrUnknownCommand),
		errors.Is(err, exam.ErrQuestionOutOfRange),
		errors.Is(err, exam.ErrOptionOutOfRange),
		errors.Is(err, exam.ErrInvalidDirection),
		errors.Is(err, exam.ErrInvalidExpression),
		errors.Is(err, exam.ErrDivisionByZero),
		errors.Is(err, exam.ErrEmptyForm),
		errors.Is(err, ethics.ErrChoiceOutOfRange),
		errors.Is(err, mentor.ErrEmptyMessage),
		errors.Is(err, mentor.ErrUnknownPlacement):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
