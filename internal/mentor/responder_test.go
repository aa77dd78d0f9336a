package mentor

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordScript(t *testing.T) {
	script := NewKeywordScript()
	ctx := context.Background()
	cases := map[string]string{
		"Explain Circular 230 ethics":              "Circular 230: Practice Before the IRS",
		"Why is my ReadySCORE stuck?":              "Why your ReadySCORE is at 92",
		"Create practice questions for weak areas": "Practice question (focus: MACRS Depreciation)",
		"Best strategy for Part 3?":                "Part 3 (Representation) strategy",
		"What about trusts?":                       `You asked about "What about trusts?"`,
	}
	for text, want := range cases {
		reply, err := script.Respond(ctx, Request{Text: text, Learner: learner()})
		require.NoError(t, err)
		assert.Contains(t, reply.Text, want, text)
	}
}

func TestReadyScoreReplyMentionsBothWeakAreas(t *testing.T) {
	reply := readyScoreReply(Request{Learner: learner()})
	assert.Contains(t, reply, "MACRS Depreciation")
	assert.Contains(t, reply, "Self-Employment Tax")
}

func TestFixedAndRotatingScripts(t *testing.T) {
	ctx := context.Background()
	reply, err := NewFixedScript().Respond(ctx, Request{Text: "anything"})
	require.NoError(t, err)
	assert.Equal(t, bubbleReply, reply.Text)

	rotating := NewRotatingScript(rand.New(rand.NewSource(1)))
	for i := 0; i < 20; i++ {
		reply, err := rotating.Respond(ctx, Request{})
		require.NoError(t, err)
		assert.Contains(t, sidebarLines, reply.Text)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = rotating.Respond(cancelled, Request{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestClassify(t *testing.T) {
	route := Classify("Explain the depreciation deduction on Form 4562")
	assert.Equal(t, AgentTaxSpecialist, route.Agent)
	assert.Equal(t, 1.0, route.Confidence)
	assert.True(t, route.UseSources)

	route = Classify("hello there")
	assert.Equal(t, AgentTaxSpecialist, route.Agent)
	assert.Equal(t, 0.5, route.Confidence)
	assert.Equal(t, "keyword_default", route.Method)

	route = Classify("help me study my score")
	assert.Equal(t, AgentSocraticCoach, route.Agent)
	assert.Equal(t, 0.5, route.Confidence)
	assert.False(t, route.UseSources)

	route = Classify("How long until my accuracy trend predicts a pass?")
	assert.Equal(t, AgentDataAnalyst, route.Agent)

	assert.True(t, Classify("explain partnerships and build a study plan").MultiIntent)
	assert.False(t, Classify("explain partnerships").MultiIntent)
}

type mapCache struct {
	mu    sync.Mutex
	items map[string]Reply
}

func (c *mapCache) Get(_ context.Context, key string) (Reply, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.items[key]
	return r, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, reply Reply, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = reply
	return nil
}

func TestCachedResponder(t *testing.T) {
	calls := 0
	next := ResponderFunc(func(_ context.Context, req Request) (Reply, error) {
		calls++
		return Reply{Text: "answer to " + req.Text}, nil
	})
	c := CachedResponder{Next: next, Cache: &mapCache{items: map[string]Reply{}}, TTL: time.Hour}
	ctx := context.Background()

	req := Request{Placement: PlacementChat, Text: "What is basis?", Learner: learner()}
	first, err := c.Respond(ctx, req)
	require.NoError(t, err)
	req.Text = "  what is BASIS?  "
	second, err := c.Respond(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	other := learner()
	other.ReadyScore = 110
	_, err = c.Respond(ctx, Request{Placement: PlacementChat, Text: "What is basis?", Learner: other})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheKeyScopedByPlacement(t *testing.T) {
	a := CacheKey(Request{Placement: PlacementChat, Text: "x"})
	b := CacheKey(Request{Placement: PlacementBubble, Text: "x"})
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^chat:[0-9a-f]{64}$`, a)
}
