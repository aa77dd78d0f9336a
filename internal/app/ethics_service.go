package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/ethics"
	"ea-coach-service/internal/event"
	"ea-coach-service/internal/metrics"
)

// DeckSummary lists a deck without its scenarios.
type DeckSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	MeterName    string `json:"meterName"`
	InitialMeter int    `json:"initialMeter"`
	Scenarios    int    `json:"scenarios"`
}

// RunView is an ethics run as returned to clients.
type RunView struct {
	ID string `json:"id"`
	ethics.View
}

type ethicsRun struct {
	mu      sync.Mutex
	engine  *ethics.Engine
	touched time.Time
}

// PracticeConfig carries the optional collaborators of the ethics and sprint
// services.
type PracticeConfig struct {
	Publisher event.Publisher
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	// Retention is how long an idle run is kept. Zero keeps runs until discarded.
	Retention time.Duration
	Now       func() time.Time
}

func (c PracticeConfig) withDefaults() PracticeConfig {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Publisher == nil {
		c.Publisher = event.NewLogPublisher(c.Logger)
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// EthicsService drives scenario runs over the configured decks.
type EthicsService struct {
	decks []domain.EthicsDeck

	mu   sync.RWMutex
	runs map[string]*ethicsRun

	publisher event.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	retention time.Duration
	now       func() time.Time
}

func NewEthicsService(decks []domain.EthicsDeck, cfg PracticeConfig) *EthicsService {
	cfg = cfg.withDefaults()
	return &EthicsService{
		decks:     decks,
		runs:      make(map[string]*ethicsRun),
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		retention: cfg.Retention,
		now:       cfg.Now,
	}
}

// Decks returns a summary of every deck.
func (s *EthicsService) Decks() []DeckSummary {
	out := make([]DeckSummary, 0, len(s.decks))
	for _, d := range s.decks {
		out = append(out, DeckSummary{
			ID:           d.ID,
			Title:        d.Title,
			MeterName:    d.MeterName,
			InitialMeter: d.InitialMeter,
			Scenarios:    len(d.Scenarios),
		})
	}
	return out
}

// Start begins a run over the deck. Restarting a deck is just another Start.
func (s *EthicsService) Start(_ context.Context, deckID string) (RunView, error) {
	var (
		deck  domain.EthicsDeck
		found bool
	)
	for _, d := range s.decks {
		if d.ID == deckID {
			deck, found = d, true
			break
		}
	}
	if !found {
		return RunView{}, domain.ErrDeckNotFound
	}
	engine, err := ethics.NewEngine(deck)
	if err != nil {
		return RunView{}, err
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.runs[id] = &ethicsRun{engine: engine, touched: s.now()}
	s.mu.Unlock()
	return RunView{ID: id, View: engine.View()}, nil
}

func (s *EthicsService) run(id string) (*ethicsRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return run, nil
}

// Get returns the current state of a run.
func (s *EthicsService) Get(_ context.Context, id string) (RunView, error) {
	run, err := s.run(id)
	if err != nil {
		return RunView{}, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	return RunView{ID: id, View: run.engine.View()}, nil
}

// Choose locks in a choice for the current scenario.
func (s *EthicsService) Choose(_ context.Context, id string, choice int) (RunView, error) {
	run, err := s.run(id)
	if err != nil {
		return RunView{}, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	out, err := run.engine.Choose(choice)
	if err != nil {
		return RunView{}, err
	}
	s.metrics.EthicsChoice(out.Ethical)
	run.touched = s.now()
	return RunView{ID: id, View: run.engine.View()}, nil
}

// Advance moves past a shown outcome; the last advance completes the run.
func (s *EthicsService) Advance(ctx context.Context, id string) (RunView, error) {
	run, err := s.run(id)
	if err != nil {
		return RunView{}, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	if err := run.engine.Advance(); err != nil {
		return RunView{}, err
	}
	run.touched = s.now()
	view := run.engine.View()
	if view.Phase == ethics.PhaseCompleted {
		payload := map[string]any{
			"runId":          id,
			"deckId":         view.DeckID,
			"meter":          view.Meter,
			"standing":       view.Standing,
			"ethicalChoices": view.EthicalCount,
			"scenarios":      view.Total,
		}
		if err := s.publisher.Publish(ctx, event.New(event.TypeEthicsCompleted, payload)); err != nil {
			s.logger.Warn("publish event", zap.String("type", event.TypeEthicsCompleted), zap.Error(err))
		}
		s.logger.Info("ethics run completed",
			zap.String("run", id),
			zap.String("deck", view.DeckID),
			zap.Int("meter", view.Meter))
	}
	return RunView{ID: id, View: view}, nil
}

// Discard forgets a run.
func (s *EthicsService) Discard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return domain.ErrRunNotFound
	}
	delete(s.runs, id)
	return nil
}

// Tick forgets runs nobody has touched for the retention period.
func (s *EthicsService) Tick(_ context.Context) {
	if s.retention <= 0 {
		return
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, run := range s.runs {
		run.mu.Lock()
		idle := now.Sub(run.touched) >= s.retention
		run.mu.Unlock()
		if idle {
			delete(s.runs, id)
			s.logger.Debug("ethics run evicted", zap.String("run", id))
		}
	}
}
