package mentor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/event"
	"ea-coach-service/internal/metrics"
)

var (
	ErrEmptyMessage       = errors.New("message is empty")
	ErrReplyPending       = errors.New("a reply is already pending")
	ErrUnknownPlacement   = errors.New("unknown placement")
	ErrConversationClosed = errors.New("conversation is closed")
)

// UpdateKind tags a conversation update.
type UpdateKind string

const (
	UpdateTranscript UpdateKind = "transcript"
	UpdateMessage    UpdateKind = "message"
	UpdateCancelled  UpdateKind = "cancelled"
	UpdateError      UpdateKind = "error"
)

// Update is pushed to conversation subscribers.
type Update struct {
	Kind     UpdateKind           `json:"kind"`
	Message  *domain.ChatMessage  `json:"message,omitempty"`
	Messages []domain.ChatMessage `json:"messages,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// View is a copy of a conversation.
type View struct {
	ID        string                `json:"id"`
	Placement Placement             `json:"placement"`
	Learner   domain.LearnerContext `json:"learner"`
	Pending   bool                  `json:"pending"`
	Messages  []domain.ChatMessage  `json:"messages"`
}

type pendingReply struct {
	cancel context.CancelFunc
}

type conversation struct {
	id        string
	placement Placement
	learner   domain.LearnerContext

	mu          sync.Mutex
	messages    []domain.ChatMessage
	pending     *pendingReply
	closed      bool
	subscribers map[chan Update]struct{}
}

// Service owns mentor conversations and their asynchronous replies.
type Service struct {
	mu            sync.RWMutex
	conversations map[string]*conversation

	responders map[Placement]Responder
	limiter    Limiter
	publisher  event.Publisher
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time

	baseCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

func WithLimiter(l Limiter) Option           { return func(s *Service) { s.limiter = l } }
func WithPublisher(p event.Publisher) Option { return func(s *Service) { s.publisher = p } }
func WithMetrics(m *metrics.Metrics) Option  { return func(s *Service) { s.metrics = m } }
func WithLogger(l *zap.Logger) Option        { return func(s *Service) { s.logger = l } }
func WithClock(now func() time.Time) Option  { return func(s *Service) { s.now = now } }

// NewService builds a service that answers each placement with its responder.
func NewService(responders map[Placement]Responder, opts ...Option) *Service {
	ctx, stop := context.WithCancel(context.Background())
	s := &Service{
		conversations: make(map[string]*conversation),
		responders:    responders,
		logger:        zap.NewNop(),
		now:           time.Now,
		baseCtx:       ctx,
		stop:          stop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts a conversation with the placement's greeting.
func (s *Service) Open(_ context.Context, placement Placement, learner domain.LearnerContext) (View, error) {
	if !placement.Valid() {
		return View{}, ErrUnknownPlacement
	}
	if _, ok := s.responders[placement]; !ok {
		return View{}, ErrUnknownPlacement
	}
	role, text, suggestions := Greeting(placement, learner)
	conv := &conversation{
		id:          uuid.NewString(),
		placement:   placement,
		learner:     learner,
		subscribers: make(map[chan Update]struct{}),
	}
	conv.messages = append(conv.messages, domain.ChatMessage{
		ID:          uuid.NewString(),
		Role:        role,
		Text:        text,
		Timestamp:   s.now().UTC(),
		Suggestions: suggestions,
	})

	s.mu.Lock()
	s.conversations[conv.id] = conv
	s.mu.Unlock()

	s.logger.Debug("conversation opened", zap.String("conversation", conv.id), zap.String("placement", string(placement)))
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return conv.viewLocked(), nil
}

func (s *Service) get(id string) (*conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	return conv, nil
}

// Send appends the user message and starts the reply in the background. Only
// one reply may be pending per conversation.
func (s *Service) Send(ctx context.Context, id, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, ErrEmptyMessage
	}
	conv, err := s.get(id)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	// Rejected sends must not count against the quota.
	conv.mu.Lock()
	err = conv.acceptsLocked()
	conv.mu.Unlock()
	if err != nil {
		return domain.ChatMessage{}, err
	}
	if s.limiter != nil {
		key := conv.learner.UserID
		if key == "" {
			key = conv.id
		}
		allowed, err := s.limiter.Allow(ctx, key)
		if err != nil {
			s.logger.Warn("rate limiter unavailable", zap.Error(err))
		} else if !allowed {
			s.metrics.MentorReply(string(conv.placement), "rate_limited", 0)
			return domain.ChatMessage{}, ErrRateLimited
		}
	}

	conv.mu.Lock()
	if err := conv.acceptsLocked(); err != nil {
		conv.mu.Unlock()
		return domain.ChatMessage{}, err
	}
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.RoleUser,
		Text:      text,
		Timestamp: s.now().UTC(),
	}
	conv.messages = append(conv.messages, msg)
	conv.broadcastLocked(Update{Kind: UpdateMessage, Message: &msg})

	// Replies outlive the request that triggered them; Shutdown cancels them.
	replyCtx, cancel := context.WithCancel(s.baseCtx)
	p := &pendingReply{cancel: cancel}
	conv.pending = p
	req := Request{Placement: conv.placement, Text: text, Learner: conv.learner}
	s.wg.Add(1)
	conv.mu.Unlock()

	go s.reply(replyCtx, conv, p, req)
	return msg, nil
}

func (s *Service) reply(ctx context.Context, conv *conversation, p *pendingReply, req Request) {
	defer s.wg.Done()
	defer p.cancel()

	started := s.now()
	responder := s.responders[conv.placement]
	reply, err := responder.Respond(ctx, req)

	conv.mu.Lock()
	if conv.pending != p {
		// Cancelled or closed while the responder ran.
		conv.mu.Unlock()
		return
	}
	conv.pending = nil
	placement := string(conv.placement)

	if err != nil {
		if ctx.Err() != nil {
			conv.broadcastLocked(Update{Kind: UpdateCancelled})
			conv.mu.Unlock()
			s.metrics.MentorReply(placement, "cancelled", 0)
			return
		}
		conv.broadcastLocked(Update{Kind: UpdateError, Error: "the mentor could not answer right now"})
		conv.mu.Unlock()
		s.logger.Error("mentor reply failed", zap.String("conversation", conv.id), zap.Error(err))
		s.metrics.MentorReply(placement, "error", 0)
		return
	}

	msg := domain.ChatMessage{
		ID:          uuid.NewString(),
		Role:        domain.RoleAssistant,
		Text:        reply.Text,
		Timestamp:   s.now().UTC(),
		Suggestions: reply.Suggestions,
		Agent:       reply.Agent,
	}
	conv.messages = append(conv.messages, msg)
	conv.broadcastLocked(Update{Kind: UpdateMessage, Message: &msg})
	conv.mu.Unlock()

	s.metrics.MentorReply(placement, "ok", s.now().Sub(started).Seconds())
	if s.publisher != nil {
		payload := map[string]any{
			"conversationId": conv.id,
			"placement":      placement,
			"agent":          reply.Agent,
			"userId":         conv.learner.UserID,
		}
		if err := s.publisher.Publish(context.Background(), event.New(event.TypeMentorReply, payload)); err != nil {
			s.logger.Warn("publish mentor reply", zap.Error(err))
		}
	}
}

// Cancel drops the pending reply, if any. It reports whether one was pending.
func (s *Service) Cancel(_ context.Context, id string) (bool, error) {
	conv, err := s.get(id)
	if err != nil {
		return false, err
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	if conv.pending == nil {
		return false, nil
	}
	conv.pending.cancel()
	conv.pending = nil
	conv.broadcastLocked(Update{Kind: UpdateCancelled})
	s.metrics.MentorReply(string(conv.placement), "cancelled", 0)
	return true, nil
}

// Close cancels any pending reply, ends all subscriptions and forgets the
// conversation.
func (s *Service) Close(_ context.Context, id string) error {
	s.mu.Lock()
	conv, ok := s.conversations[id]
	delete(s.conversations, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrConversationNotFound
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()
	conv.closed = true
	if conv.pending != nil {
		conv.pending.cancel()
		conv.pending = nil
	}
	for ch := range conv.subscribers {
		delete(conv.subscribers, ch)
		close(ch)
	}
	return nil
}

// Transcript returns the messages in insertion order.
func (s *Service) Transcript(_ context.Context, id string) ([]domain.ChatMessage, error) {
	conv, err := s.get(id)
	if err != nil {
		return nil, err
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return copyMessages(conv.messages), nil
}

// Get returns a copy of the conversation.
func (s *Service) Get(_ context.Context, id string) (View, error) {
	conv, err := s.get(id)
	if err != nil {
		return View{}, err
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return conv.viewLocked(), nil
}

// Subscribe streams updates, starting with the full transcript. The caller
// must invoke the returned cancel function.
func (s *Service) Subscribe(_ context.Context, id string) (<-chan Update, func(), error) {
	conv, err := s.get(id)
	if err != nil {
		return nil, nil, err
	}
	ch := make(chan Update, 16)

	conv.mu.Lock()
	if conv.closed {
		conv.mu.Unlock()
		return nil, nil, ErrConversationClosed
	}
	conv.subscribers[ch] = struct{}{}
	ch <- Update{Kind: UpdateTranscript, Messages: copyMessages(conv.messages)}
	conv.mu.Unlock()

	cancel := func() {
		conv.mu.Lock()
		if _, ok := conv.subscribers[ch]; ok {
			delete(conv.subscribers, ch)
			close(ch)
		}
		conv.mu.Unlock()
	}
	return ch, cancel, nil
}

// Shutdown cancels every pending reply and waits for the reply goroutines.
func (s *Service) Shutdown(ctx context.Context) error {
	s.stop()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *conversation) acceptsLocked() error {
	if c.closed {
		return ErrConversationClosed
	}
	if c.pending != nil {
		return ErrReplyPending
	}
	return nil
}

func (c *conversation) viewLocked() View {
	return View{
		ID:        c.id,
		Placement: c.placement,
		Learner:   c.learner,
		Pending:   c.pending != nil,
		Messages:  copyMessages(c.messages),
	}
}

// broadcastLocked drops the oldest queued update for a full subscriber;
// the transcript is the source of truth for resync.
func (c *conversation) broadcastLocked(u Update) {
	for ch := range c.subscribers {
		select {
		case ch <- u:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- u
		}
	}
}

func copyMessages(in []domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(in))
	for i, m := range in {
		m.Suggestions = append([]string(nil), m.Suggestions...)
		out[i] = m
	}
	return out
}
