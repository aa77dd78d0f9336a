package mentor

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"ea-coach-service/internal/domain"
)

// Placement is where the mentor widget is shown. Each placement keeps its own
// greeting and reply style on top of the same conversation model.
type Placement string

const (
	PlacementChat    Placement = "chat"
	PlacementBubble  Placement = "bubble"
	PlacementSidebar Placement = "sidebar"
)

// Valid reports whether p is a known placement.
func (p Placement) Valid() bool {
	switch p {
	case PlacementChat, PlacementBubble, PlacementSidebar:
		return true
	}
	return false
}

// Request is what a responder sees for one user message.
type Request struct {
	Placement Placement
	Text      string
	Learner   domain.LearnerContext
}

// Reply is a responder's answer.
type Reply struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions,omitempty"`
	Agent       string   `json:"agent,omitempty"`
}

// Responder produces the assistant reply for a user message. Implementations
// must return promptly once ctx is done.
type Responder interface {
	Respond(ctx context.Context, req Request) (Reply, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, req Request) (Reply, error)

func (f ResponderFunc) Respond(ctx context.Context, req Request) (Reply, error) {
	return f(ctx, req)
}

// KeywordRule answers when any keyword occurs in the lowercased message.
type KeywordRule struct {
	Keywords []string
	Reply    func(req Request) string
}

func (r KeywordRule) matches(lower string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// KeywordResponder picks the first rule whose keyword appears in the message,
// falling back to Default.
type KeywordResponder struct {
	Rules   []KeywordRule
	Default func(req Request) string
}

func (k KeywordResponder) Respond(ctx context.Context, req Request) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	lower := strings.ToLower(req.Text)
	for _, rule := range k.Rules {
		if rule.matches(lower) {
			return Reply{Text: rule.Reply(req)}, nil
		}
	}
	if k.Default == nil {
		return Reply{}, fmt.Errorf("no rule matched %q", req.Text)
	}
	return Reply{Text: k.Default(req)}, nil
}

// FixedResponder always answers with the same text.
type FixedResponder struct {
	Text string
}

func (f FixedResponder) Respond(ctx context.Context, _ Request) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	return Reply{Text: f.Text}, nil
}

// RotatingResponder answers with a random line.
type RotatingResponder struct {
	lines []string
	mu    sync.Mutex
	intn  func(n int) int
}

// NewRotatingResponder uses r for the choice; a nil r seeds from the clock.
func NewRotatingResponder(lines []string, r *rand.Rand) *RotatingResponder {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RotatingResponder{lines: append([]string(nil), lines...), intn: r.Intn}
}

func (r *RotatingResponder) Respond(ctx context.Context, _ Request) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	if len(r.lines) == 0 {
		return Reply{}, fmt.Errorf("rotating responder has no lines")
	}
	r.mu.Lock()
	i := r.intn(len(r.lines))
	r.mu.Unlock()
	return Reply{Text: r.lines[i]}, nil
}

// DelayedResponder waits before delegating, returning early with the context
// error if ctx ends first.
type DelayedResponder struct {
	Next  Responder
	Delay time.Duration
}

func (d DelayedResponder) Respond(ctx context.Context, req Request) (Reply, error) {
	if d.Delay > 0 {
		timer := time.NewTimer(d.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		case <-timer.C:
		}
	}
	return d.Next.Respond(ctx, req)
}
