package exam

import (
	"errors"
	"sort"

	"ea-coach-service/internal/domain"
)

// Phase is the lifecycle state of a sitting.
type Phase string

const (
	PhaseInProgress Phase = "in-progress"
	PhaseEnded      Phase = "ended"
	PhaseResults    Phase = "results-shown"
	PhaseStudyPlan  Phase = "study-plan-shown"
)

// Direction moves the current-question pointer.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

var (
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrOptionOutOfRange   = errors.New("option index out of range")
	ErrNotInProgress      = errors.New("exam is not in progress")
	ErrEndNotRequested    = errors.New("end of exam was not requested")
	ErrInvalidTransition  = errors.New("invalid phase transition")
	ErrInvalidDirection   = errors.New("direction must be next or previous")
	ErrEmptyForm          = errors.New("exam form has no questions")
)

type item struct {
	question domain.Question
	selected *int
	flagged  bool
	struck   map[int]struct{}
}

// Options tune a session.
type Options struct {
	// AutoSubmitOnExpiry ends the session when the countdown reaches zero.
	AutoSubmitOnExpiry bool
}

// Session is the single-sitting exam state machine. It is not safe for
// concurrent use; callers serialize access.
type Session struct {
	formID     string
	part       int
	items      []item
	current    int
	phase      Phase
	endPending bool
	duration   int
	remaining  int
	expired    bool
	opts       Options
	results    *domain.ExamResults
}

// NewSession starts a sitting over the form's questions.
func NewSession(form domain.ExamForm, opts Options) (*Session, error) {
	if len(form.Questions) == 0 {
		return nil, ErrEmptyForm
	}
	items := make([]item, len(form.Questions))
	for i, q := range form.Questions {
		items[i] = item{question: q, struck: make(map[int]struct{})}
	}
	duration := form.DurationSeconds
	if duration < 0 {
		duration = 0
	}
	return &Session{
		formID:    form.ID,
		part:      form.Part,
		items:     items,
		phase:     PhaseInProgress,
		duration:  duration,
		remaining: duration,
		opts:      opts,
	}, nil
}

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Current returns the current-question pointer.
func (s *Session) Current() int { return s.current }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.items) }

// Remaining returns the countdown in seconds.
func (s *Session) Remaining() int { return s.remaining }

// EndPending reports whether an end request awaits confirmation.
func (s *Session) EndPending() bool { return s.endPending }

func (s *Session) checkQuestion(q int) error {
	if q < 0 || q >= len(s.items) {
		return ErrQuestionOutOfRange
	}
	return nil
}

func (s *Session) checkOption(q, opt int) error {
	if err := s.checkQuestion(q); err != nil {
		return err
	}
	if opt < 0 || opt >= len(s.items[q].question.Options) {
		return ErrOptionOutOfRange
	}
	return nil
}

func (s *Session) requireInProgress() error {
	if s.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	return nil
}

// SelectAnswer records opt as the answer to question q. A prior answer may be replaced.
func (s *Session) SelectAnswer(q, opt int) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if err := s.checkOption(q, opt); err != nil {
		return err
	}
	selected := opt
	s.items[q].selected = &selected
	return nil
}

// ToggleFlag flips the review flag of question q.
func (s *Session) ToggleFlag(q int) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if err := s.checkQuestion(q); err != nil {
		return err
	}
	s.items[q].flagged = !s.items[q].flagged
	return nil
}

// ToggleStrike adds or removes opt from the struck set of question q.
// Struck options stay selectable.
func (s *Session) ToggleStrike(q, opt int) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if err := s.checkOption(q, opt); err != nil {
		return err
	}
	struck := s.items[q].struck
	if _, ok := struck[opt]; ok {
		delete(struck, opt)
	} else {
		struck[opt] = struct{}{}
	}
	return nil
}

// Advance moves the pointer one step, clamped to the question range.
func (s *Session) Advance(dir Direction) (int, error) {
	if dir != Next && dir != Previous {
		return s.current, ErrInvalidDirection
	}
	next := s.current + int(dir)
	if next < 0 {
		next = 0
	}
	if next > len(s.items)-1 {
		next = len(s.items) - 1
	}
	s.current = next
	return s.current, nil
}

// GoTo jumps to question q from the navigator.
func (s *Session) GoTo(q int) error {
	if err := s.checkQuestion(q); err != nil {
		return err
	}
	s.current = q
	return nil
}

// RequestEnd opens the confirmation step. The phase does not change.
func (s *Session) RequestEnd() error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.endPending = true
	return nil
}

// CancelEnd dismisses a pending end request.
func (s *Session) CancelEnd() {
	s.endPending = false
}

// ConfirmEnd ends the sitting after a RequestEnd and scores it.
func (s *Session) ConfirmEnd() (domain.ExamResults, error) {
	if err := s.requireInProgress(); err != nil {
		return domain.ExamResults{}, err
	}
	if !s.endPending {
		return domain.ExamResults{}, ErrEndNotRequested
	}
	return s.end(domain.EndReasonConfirmed), nil
}

func (s *Session) end(reason domain.EndReason) domain.ExamResults {
	s.endPending = false
	s.phase = PhaseEnded
	results := Score(s.formID, s.part, s.questions(), s.answers(), s.duration-s.remaining)
	results.EndReason = reason
	s.results = &results
	return results
}

// Tick decrements the countdown by one second while in progress. It reports
// whether this tick ended the session.
func (s *Session) Tick() bool {
	if s.phase != PhaseInProgress || s.remaining == 0 {
		return false
	}
	s.remaining--
	if s.remaining > 0 {
		return false
	}
	s.expired = true
	if s.opts.AutoSubmitOnExpiry {
		s.end(domain.EndReasonTimeExpired)
		return true
	}
	return false
}

// ShowResults moves an ended sitting to the results view.
func (s *Session) ShowResults() error {
	if s.phase != PhaseEnded {
		return ErrInvalidTransition
	}
	s.phase = PhaseResults
	return nil
}

// ShowStudyPlan moves from the results view to the study plan.
func (s *Session) ShowStudyPlan() error {
	if s.phase != PhaseResults {
		return ErrInvalidTransition
	}
	s.phase = PhaseStudyPlan
	return nil
}

// BackToResults returns from the study plan to the results view.
func (s *Session) BackToResults() error {
	if s.phase != PhaseStudyPlan {
		return ErrInvalidTransition
	}
	s.phase = PhaseResults
	return nil
}

// Results returns the scored outcome once the sitting has ended.
func (s *Session) Results() (domain.ExamResults, bool) {
	if s.results == nil {
		return domain.ExamResults{}, false
	}
	return copyResults(*s.results), true
}

func copyResults(r domain.ExamResults) domain.ExamResults {
	domains := make([]domain.DomainScore, len(r.Domains))
	for i, d := range r.Domains {
		d.Publications = append([]string(nil), d.Publications...)
		domains[i] = d
	}
	r.Domains = domains
	return r
}

// Answered counts questions with a selection.
func (s *Session) Answered() int {
	n := 0
	for _, it := range s.items {
		if it.selected != nil {
			n++
		}
	}
	return n
}

func (s *Session) questions() []domain.Question {
	qs := make([]domain.Question, len(s.items))
	for i, it := range s.items {
		qs[i] = it.question
	}
	return qs
}

func (s *Session) answers() []*int {
	answers := make([]*int, len(s.items))
	for i, it := range s.items {
		answers[i] = it.selected
	}
	return answers
}

// QuestionView is the client-facing state of one question. Answer keys are withheld.
type QuestionView struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	Experimental bool     `json:"experimental"`
	Selected     *int     `json:"selected"`
	Flagged      bool     `json:"flagged"`
	Struck       []int    `json:"struck"`
}

// Snapshot is a copy of the session state safe to hand to other goroutines.
type Snapshot struct {
	SessionID   string              `json:"sessionId"`
	FormID      string              `json:"formId"`
	Phase       Phase               `json:"phase"`
	Current     int                 `json:"current"`
	Remaining   int                 `json:"remainingSeconds"`
	TimeExpired bool                `json:"timeExpired"`
	EndPending  bool                `json:"endPending"`
	Answered    int                 `json:"answered"`
	Total       int                 `json:"total"`
	Questions   []QuestionView      `json:"questions"`
	Results     *domain.ExamResults `json:"results,omitempty"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	views := make([]QuestionView, len(s.items))
	for i, it := range s.items {
		var selected *int
		if it.selected != nil {
			v := *it.selected
			selected = &v
		}
		struck := make([]int, 0, len(it.struck))
		for opt := range it.struck {
			struck = append(struck, opt)
		}
		sort.Ints(struck)
		options := make([]string, len(it.question.Options))
		copy(options, it.question.Options)
		views[i] = QuestionView{
			ID:           it.question.ID,
			Prompt:       it.question.Prompt,
			Options:      options,
			Experimental: it.question.Experimental,
			Selected:     selected,
			Flagged:      it.flagged,
			Struck:       struck,
		}
	}
	snap := Snapshot{
		FormID:      s.formID,
		Phase:       s.phase,
		Current:     s.current,
		Remaining:   s.remaining,
		TimeExpired: s.expired,
		EndPending:  s.endPending,
		Answered:    s.Answered(),
		Total:       len(s.items),
		Questions:   views,
	}
	if s.results != nil {
		results := copyResults(*s.results)
		snap.Results = &results
	}
	return snap
}
