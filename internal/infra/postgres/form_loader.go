package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ea-coach-service/internal/domain"
)

// FormLoader loads exam form JSONB from Postgres.
type FormLoader struct {
	pool *pgxpool.Pool
}

func NewFormLoader(pool *pgxpool.Pool) *FormLoader {
	return &FormLoader{pool: pool}
}

func (l *FormLoader) LoadForm(ctx context.Context, formID string) (domain.ExamForm, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM exam_forms WHERE id=$1`, formID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ExamForm{}, domain.ErrFormNotFound
	}
	if err != nil {
		return domain.ExamForm{}, fmt.Errorf("load form: %w", err)
	}
	var form domain.ExamForm
	if err := json.Unmarshal(raw, &form); err != nil {
		return domain.ExamForm{}, fmt.Errorf("unmarshal form: %w", err)
	}
	return form, nil
}

func (l *FormLoader) ListForms(ctx context.Context) ([]domain.FormSummary, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, part, title, duration_seconds, jsonb_array_length(data->'questions')
		FROM exam_forms
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	var forms []domain.FormSummary
	for rows.Next() {
		var f domain.FormSummary
		if err := rows.Scan(&f.ID, &f.Part, &f.Title, &f.DurationSeconds, &f.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

// SaveForm inserts or replaces a form.
func (l *FormLoader) SaveForm(ctx context.Context, form domain.ExamForm) error {
	raw, err := json.Marshal(form)
	if err != nil {
		return err
	}
	_, err = l.pool.Exec(ctx, `
		INSERT INTO exam_forms (id, part, title, duration_seconds, data)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET part = EXCLUDED.part, title = EXCLUDED.title,
		    duration_seconds = EXCLUDED.duration_seconds, data = EXCLUDED.data`,
		form.ID, form.Part, form.Title, form.DurationSeconds, raw)
	if err != nil {
		return fmt.Errorf("save form %s: %w", form.ID, err)
	}
	return nil
}
