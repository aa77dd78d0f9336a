package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ea-coach-service/internal/content"
	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/mentor"
)

type countingLoader struct {
	FormLoader
	mu    sync.Mutex
	calls int
}

func (l *countingLoader) LoadForm(ctx context.Context, formID string) (domain.ExamForm, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	return l.FormLoader.LoadForm(ctx, formID)
}

func (l *countingLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestFormRepositoryCaches(t *testing.T) {
	loader := &countingLoader{FormLoader: NewStaticFormLoader(content.Forms())}
	repo := NewFormRepository(loader, time.Minute)
	ctx := context.Background()

	form, err := repo.GetForm(ctx, content.Part1FormID)
	require.NoError(t, err)
	assert.Equal(t, content.Part1FormID, form.ID)
	assert.Equal(t, 1, loader.Calls())

	_, err = repo.GetForm(ctx, content.Part1FormID)
	require.NoError(t, err)
	assert.Equal(t, 1, loader.Calls(), "expected cache hit")
}

func TestFormRepositoryExpires(t *testing.T) {
	loader := &countingLoader{FormLoader: NewStaticFormLoader(content.Forms())}
	repo := NewFormRepository(loader, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	repo.clock = func() time.Time { return now }
	ctx := context.Background()

	_, err := repo.GetForm(ctx, content.Part2FormID)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = repo.GetForm(ctx, content.Part2FormID)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.Calls())
}

func TestFormRepositoryConcurrentLoads(t *testing.T) {
	loader := &countingLoader{FormLoader: NewStaticFormLoader(content.Forms())}
	repo := NewFormRepository(loader, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.GetForm(context.Background(), content.Part3FormID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, loader.Calls(), 16)
	assert.GreaterOrEqual(t, loader.Calls(), 1)
}

func TestFormRepositoryUnknownForm(t *testing.T) {
	repo := NewFormRepository(NewStaticFormLoader(content.Forms()), time.Minute)
	_, err := repo.GetForm(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrFormNotFound)
}

func TestStaticFormLoaderListsSorted(t *testing.T) {
	forms, err := NewStaticFormLoader(content.Forms()).ListForms(context.Background())
	require.NoError(t, err)
	require.Len(t, forms, 3)
	assert.Equal(t, content.Part1FormID, forms[0].ID)
	assert.Equal(t, content.Part3FormID, forms[2].ID)
	assert.Positive(t, forms[0].QuestionCount)
}

func TestResultStoreRecentNewestFirst(t *testing.T) {
	store := NewResultStore()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, domain.ExamRecord{SessionID: id}))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].SessionID)
	assert.Equal(t, "b", recent[1].SessionID)

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReplyCacheExpiryAndCopy(t *testing.T) {
	cache := NewReplyCache()
	now := time.Unix(1_700_000_000, 0)
	cache.clock = func() time.Time { return now }
	ctx := context.Background()

	reply := mentor.Reply{Text: "hi", Suggestions: []string{"one"}}
	require.NoError(t, cache.Set(ctx, "k", reply, time.Hour))
	reply.Suggestions[0] = "mutated"

	got, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"one"}, got.Suggestions)

	now = now.Add(time.Hour)
	_, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLimiterFixedWindow(t *testing.T) {
	limiter := NewLimiter(2, time.Hour)
	now := time.Unix(1_700_000_000, 0)
	limiter.clock = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := limiter.Allow(ctx, "u1")
	assert.False(t, ok)
	ok, _ = limiter.Allow(ctx, "u2")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Hour)
	ok, _ = limiter.Allow(ctx, "u1")
	assert.True(t, ok, "window resets")
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(0, time.Hour)
	for i := 0; i < 100; i++ {
		ok, err := limiter.Allow(context.Background(), "u")
		require.NoError(t, err)
		require.True(t, ok)
	}
}

var (
	_ mentor.ReplyCache = (*ReplyCache)(nil)
	_ mentor.Limiter    = (*Limiter)(nil)
)
