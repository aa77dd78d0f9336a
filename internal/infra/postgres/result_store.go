package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"ea-coach-service/internal/domain"
)

type examResultRow struct {
	bun.BaseModel `bun:"table:exam_results"`

	SessionID   string             `bun:"session_id,pk"`
	FormID      string             `bun:"form_id,notnull"`
	Part        int                `bun:"part,notnull"`
	ScaledScore int                `bun:"scaled_score,notnull"`
	Passed      bool               `bun:"passed,notnull"`
	EndReason   string             `bun:"end_reason,notnull"`
	Results     domain.ExamResults `bun:"results,type:jsonb"`
	EndedAt     time.Time          `bun:"ended_at,notnull"`
}

// ResultStore persists ended exam sessions through bun.
type ResultStore struct {
	db *bun.DB
}

func NewResultStore(db *bun.DB) *ResultStore {
	return &ResultStore{db: db}
}

// Record is idempotent per session.
func (s *ResultStore) Record(ctx context.Context, rec domain.ExamRecord) error {
	row := &examResultRow{
		SessionID:   rec.SessionID,
		FormID:      rec.Results.FormID,
		Part:        rec.Results.Part,
		ScaledScore: rec.Results.ScaledScore,
		Passed:      rec.Results.Passed,
		EndReason:   string(rec.Results.EndReason),
		Results:     rec.Results,
		EndedAt:     rec.EndedAt,
	}
	if _, err := s.db.NewInsert().Model(row).On("CONFLICT (session_id) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("record result %s: %w", rec.SessionID, err)
	}
	return nil
}

// Recent returns up to limit records, newest first. limit <= 0 means all.
func (s *ResultStore) Recent(ctx context.Context, limit int) ([]domain.ExamRecord, error) {
	var rows []examResultRow
	q := s.db.NewSelect().Model(&rows).Order("ended_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("recent results: %w", err)
	}
	out := make([]domain.ExamRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ExamRecord{
			SessionID: row.SessionID,
			Results:   row.Results,
			EndedAt:   row.EndedAt,
		})
	}
	return out, nil
}
