package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ea-coach-service/internal/domain"
)

// FormLoader fetches exam forms from a backing store (e.g., Postgres).
type FormLoader interface {
	LoadForm(ctx context.Context, formID string) (domain.ExamForm, error)
	ListForms(ctx context.Context) ([]domain.FormSummary, error)
}

// FormRepository caches forms with TTL to avoid repeated DB hits.
type FormRepository struct {
	loader FormLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedForm
}

type cachedForm struct {
	form      domain.ExamForm
	expiresAt time.Time
}

func NewFormRepository(loader FormLoader, ttl time.Duration) *FormRepository {
	return &FormRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedForm),
	}
}

func (r *FormRepository) GetForm(ctx context.Context, formID string) (domain.ExamForm, error) {
	if form, ok := r.lookup(formID); ok {
		return form, nil
	}

	result, err, _ := r.sf.Do(formID, func() (interface{}, error) {
		if form, ok := r.lookup(formID); ok {
			return form, nil
		}

		form, err := r.loader.LoadForm(ctx, formID)
		if err != nil {
			return domain.ExamForm{}, err
		}

		r.mu.Lock()
		r.cache[formID] = cachedForm{
			form:      form,
			expiresAt: r.clock().Add(r.ttlWithJitterLocked()),
		}
		r.mu.Unlock()
		return form, nil
	})
	if err != nil {
		return domain.ExamForm{}, err
	}
	return result.(domain.ExamForm), nil
}

// ListForms is not cached; listing is rare next to GetForm.
func (r *FormRepository) ListForms(ctx context.Context) ([]domain.FormSummary, error) {
	return r.loader.ListForms(ctx)
}

func (r *FormRepository) lookup(formID string) (domain.ExamForm, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.cache[formID]; ok && entry.expiresAt.After(now) {
		return entry.form, true
	}
	return domain.ExamForm{}, false
}

func (r *FormRepository) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticFormLoader serves forms from memory (built-in content, tests, demos).
type StaticFormLoader struct {
	forms map[string]domain.ExamForm
}

func NewStaticFormLoader(forms []domain.ExamForm) *StaticFormLoader {
	m := make(map[string]domain.ExamForm, len(forms))
	for _, f := range forms {
		m[f.ID] = f
	}
	return &StaticFormLoader{forms: m}
}

func (l *StaticFormLoader) LoadForm(_ context.Context, formID string) (domain.ExamForm, error) {
	if form, ok := l.forms[formID]; ok {
		return form, nil
	}
	return domain.ExamForm{}, domain.ErrFormNotFound
}

func (l *StaticFormLoader) ListForms(_ context.Context) ([]domain.FormSummary, error) {
	out := make([]domain.FormSummary, 0, len(l.forms))
	for _, f := range l.forms {
		out = append(out, f.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
