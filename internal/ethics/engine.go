package ethics

import (
	"errors"

	"ea-coach-service/internal/domain"
)

// Phase is the state of a scenario run.
type Phase string

const (
	PhaseAwaitingChoice Phase = "awaiting-choice"
	PhaseShowingOutcome Phase = "showing-outcome"
	PhaseCompleted      Phase = "completed"
)

const (
	MeterMin = 0
	MeterMax = 100
)

var (
	ErrChoiceLocked     = errors.New("a choice was already made for this scenario")
	ErrChoiceOutOfRange = errors.New("choice index out of range")
	ErrNoOutcome        = errors.New("choose before advancing")
	ErrRunCompleted     = errors.New("scenario run is completed")
	ErrDeckEmpty        = errors.New("deck has no scenarios")
)

// Outcome is what the learner sees after a choice.
type Outcome struct {
	Scenario  int    `json:"scenario"`
	Choice    int    `json:"choice"`
	Ethical   bool   `json:"ethical"`
	Delta     int    `json:"delta"`
	Meter     int    `json:"meter"`
	Text      string `json:"outcome"`
	Reference string `json:"reference,omitempty"`
}

// Engine walks one deck, one scenario at a time. Not safe for concurrent use.
type Engine struct {
	deck     domain.EthicsDeck
	current  int
	meter    int
	phase    Phase
	ethical  int
	outcomes []Outcome
}

// NewEngine starts a run at the deck's initial meter value.
func NewEngine(deck domain.EthicsDeck) (*Engine, error) {
	if len(deck.Scenarios) == 0 {
		return nil, ErrDeckEmpty
	}
	return &Engine{
		deck:  deck,
		meter: Clamp(deck.InitialMeter),
		phase: PhaseAwaitingChoice,
	}, nil
}

// Clamp bounds v to [MeterMin, MeterMax].
func Clamp(v int) int {
	if v < MeterMin {
		return MeterMin
	}
	if v > MeterMax {
		return MeterMax
	}
	return v
}

// Choose applies the choice to the current scenario. Only the first choice counts.
func (e *Engine) Choose(idx int) (Outcome, error) {
	switch e.phase {
	case PhaseCompleted:
		return Outcome{}, ErrRunCompleted
	case PhaseShowingOutcome:
		return Outcome{}, ErrChoiceLocked
	}
	scenario := e.deck.Scenarios[e.current]
	if idx < 0 || idx >= len(scenario.Choices) {
		return Outcome{}, ErrChoiceOutOfRange
	}
	choice := scenario.Choices[idx]
	e.meter = Clamp(e.meter + choice.Delta)
	if choice.Ethical {
		e.ethical++
	}
	out := Outcome{
		Scenario:  e.current,
		Choice:    idx,
		Ethical:   choice.Ethical,
		Delta:     choice.Delta,
		Meter:     e.meter,
		Text:      choice.Outcome,
		Reference: choice.Reference,
	}
	e.outcomes = append(e.outcomes, out)
	e.phase = PhaseShowingOutcome
	return out, nil
}

// Advance moves past a shown outcome, completing the run after the last scenario.
func (e *Engine) Advance() error {
	switch e.phase {
	case PhaseCompleted:
		return ErrRunCompleted
	case PhaseAwaitingChoice:
		return ErrNoOutcome
	}
	if e.current == len(e.deck.Scenarios)-1 {
		e.phase = PhaseCompleted
		return nil
	}
	e.current++
	e.phase = PhaseAwaitingChoice
	return nil
}

// Phase returns the run state.
func (e *Engine) Phase() Phase { return e.phase }

// Meter returns the current meter value.
func (e *Engine) Meter() int { return e.meter }

// Standing labels the meter with the first band it reaches. Bands are
// expected in descending Min order.
func (e *Engine) Standing() string {
	return Standing(e.deck.Bands, e.meter)
}

// Standing returns the label of the first band whose Min the value reaches.
func Standing(bands []domain.StandingBand, value int) string {
	for _, b := range bands {
		if value >= b.Min {
			return b.Label
		}
	}
	if len(bands) > 0 {
		return bands[len(bands)-1].Label
	}
	return ""
}

// View is the client-facing run state.
type View struct {
	DeckID       string        `json:"deckId"`
	Title        string        `json:"title"`
	MeterName    string        `json:"meterName"`
	Phase        Phase         `json:"phase"`
	Current      int           `json:"current"`
	Total        int           `json:"total"`
	Meter        int           `json:"meter"`
	Standing     string        `json:"standing"`
	EthicalCount int           `json:"ethicalChoices"`
	Scenario     *ScenarioView `json:"scenario,omitempty"`
	Last         *Outcome      `json:"lastOutcome,omitempty"`
}

// ScenarioView hides the classification and delta of each choice.
type ScenarioView struct {
	ID        string   `json:"id"`
	Client    string   `json:"client"`
	Situation string   `json:"situation"`
	Request   string   `json:"request"`
	Choices   []string `json:"choices"`
}

// View copies the run state. The scenario is omitted once the run completes.
func (e *Engine) View() View {
	v := View{
		DeckID:       e.deck.ID,
		Title:        e.deck.Title,
		MeterName:    e.deck.MeterName,
		Phase:        e.phase,
		Current:      e.current,
		Total:        len(e.deck.Scenarios),
		Meter:        e.meter,
		Standing:     e.Standing(),
		EthicalCount: e.ethical,
	}
	if e.phase != PhaseCompleted {
		sc := e.deck.Scenarios[e.current]
		choices := make([]string, len(sc.Choices))
		for i, c := range sc.Choices {
			choices[i] = c.Text
		}
		v.Scenario = &ScenarioView{
			ID:        sc.ID,
			Client:    sc.Client,
			Situation: sc.Situation,
			Request:   sc.Request,
			Choices:   choices,
		}
	}
	if n := len(e.outcomes); n > 0 {
		last := e.outcomes[n-1]
		v.Last = &last
	}
	return v
}

// Outcomes returns every outcome so far, oldest first.
func (e *Engine) Outcomes() []Outcome {
	return append([]Outcome(nil), e.outcomes...)
}
