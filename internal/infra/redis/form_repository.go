package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"go.uber.org/zap"

	"ea-coach-service/internal/domain"
)

const formListKey = "exam:forms"

// FormLoader fetches exam forms from a backing store (e.g., Postgres).
type FormLoader interface {
	LoadForm(ctx context.Context, formID string) (domain.ExamForm, error)
	ListForms(ctx context.Context) ([]domain.FormSummary, error)
}

// FormRepository caches exam forms in Redis as JSON and falls back to a loader
// on a miss.
//
//	SET exam:form:{formID} <json form>
//	SET exam:forms         <json summaries>
type FormRepository struct {
	client *redis.Client
	loader FormLoader
	ttl    time.Duration
	logger *zap.Logger
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewFormRepository(client *redis.Client, loader FormLoader, ttl time.Duration, logger *zap.Logger) *FormRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *FormRepository) GetForm(ctx context.Context, formID string) (domain.ExamForm, error) {
	var form domain.ExamForm
	if ok := r.readJSON(ctx, formKey(formID), &form); ok {
		return form, nil
	}

	result, err, _ := r.sf.Do(formKey(formID), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		var cached domain.ExamForm
		if ok := r.readJSON(ctx, formKey(formID), &cached); ok {
			return cached, nil
		}

		form, err := r.loader.LoadForm(ctx, formID)
		if err != nil {
			return domain.ExamForm{}, err
		}
		r.writeJSON(ctx, formKey(formID), form)
		return form, nil
	})
	if err != nil {
		return domain.ExamForm{}, err
	}
	return result.(domain.ExamForm), nil
}

func (r *FormRepository) ListForms(ctx context.Context) ([]domain.FormSummary, error) {
	var forms []domain.FormSummary
	if ok := r.readJSON(ctx, formListKey, &forms); ok {
		return forms, nil
	}

	result, err, _ := r.sf.Do(formListKey, func() (interface{}, error) {
		forms, err := r.loader.ListForms(ctx)
		if err != nil {
			return nil, err
		}
		r.writeJSON(ctx, formListKey, forms)
		return forms, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.FormSummary), nil
}

// Invalidate drops the cached form and listing.
func (r *FormRepository) Invalidate(ctx context.Context, formID string) error {
	return r.client.Del(ctx, formKey(formID), formListKey).Err()
}

// readJSON reports a hit only when the key exists and decodes cleanly.
func (r *FormRepository) readJSON(ctx context.Context, key string, dst any) bool {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("form cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn("form cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *FormRepository) writeJSON(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err(); err != nil {
		r.logger.Warn("form cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func formKey(formID string) string {
	return "exam:form:" + formID
}

func (r *FormRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
