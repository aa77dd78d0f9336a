package exam

import (
	"errors"

	"ea-coach-service/internal/domain"
)

// SprintDuration is the sprint countdown in seconds.
const SprintDuration = 300

var (
	ErrSprintFinished    = errors.New("sprint is finished")
	ErrAlreadyAnswered   = errors.New("question already answered")
	ErrAnswerRequired    = errors.New("answer the current question first")
	ErrQuestionNotScored = errors.New("sprint question has no answer key")
)

// Feedback is returned right after a sprint answer.
type Feedback struct {
	Question    int    `json:"question"`
	Selected    int    `json:"selected"`
	Correct     bool   `json:"correct"`
	CorrectIdx  int    `json:"correctIndex"`
	Explanation string `json:"explanation"`
	Score       int    `json:"score"`
}

// Sprint is a short timed quiz with immediate feedback per question.
type Sprint struct {
	questions []domain.Question
	current   int
	selected  *int
	score     int
	remaining int
	finished  bool
}

// NewSprint starts a sprint over questions that all carry an answer key.
func NewSprint(questions []domain.Question) (*Sprint, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyForm
	}
	for _, q := range questions {
		if !q.HasAnswerKey() {
			return nil, ErrQuestionNotScored
		}
	}
	qs := make([]domain.Question, len(questions))
	copy(qs, questions)
	return &Sprint{questions: qs, remaining: SprintDuration}, nil
}

// Answer grades the current question. Each question takes one answer.
func (s *Sprint) Answer(opt int) (Feedback, error) {
	if s.finished {
		return Feedback{}, ErrSprintFinished
	}
	if s.selected != nil {
		return Feedback{}, ErrAlreadyAnswered
	}
	q := s.questions[s.current]
	if opt < 0 || opt >= len(q.Options) {
		return Feedback{}, ErrOptionOutOfRange
	}
	selected := opt
	s.selected = &selected
	correct := opt == *q.CorrectIndex
	if correct {
		s.score++
	}
	return Feedback{
		Question:    s.current,
		Selected:    opt,
		Correct:     correct,
		CorrectIdx:  *q.CorrectIndex,
		Explanation: q.Explanation,
		Score:       s.score,
	}, nil
}

// Next moves past an answered question, finishing after the last one.
func (s *Sprint) Next() error {
	if s.finished {
		return ErrSprintFinished
	}
	if s.selected == nil {
		return ErrAnswerRequired
	}
	if s.current == len(s.questions)-1 {
		s.finished = true
		return nil
	}
	s.current++
	s.selected = nil
	return nil
}

// Tick decrements the countdown; the sprint finishes at zero.
func (s *Sprint) Tick() {
	if s.finished || s.remaining == 0 {
		return
	}
	s.remaining--
	if s.remaining == 0 {
		s.finished = true
	}
}

// SprintView is the client-facing sprint state.
type SprintView struct {
	Current   int      `json:"current"`
	Total     int      `json:"total"`
	Topic     string   `json:"topic"`
	Prompt    string   `json:"prompt"`
	Options   []string `json:"options"`
	Selected  *int     `json:"selected"`
	Score     int      `json:"score"`
	Remaining int      `json:"remainingSeconds"`
	Finished  bool     `json:"finished"`
}

// View copies the sprint state.
func (s *Sprint) View() SprintView {
	q := s.questions[s.current]
	var selected *int
	if s.selected != nil {
		v := *s.selected
		selected = &v
	}
	return SprintView{
		Current:   s.current,
		Total:     len(s.questions),
		Topic:     q.Topic,
		Prompt:    q.Prompt,
		Options:   append([]string(nil), q.Options...),
		Selected:  selected,
		Score:     s.score,
		Remaining: s.remaining,
		Finished:  s.finished,
	}
}
