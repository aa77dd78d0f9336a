package migrations

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"ea-coach-service/internal/content"
)

//go:embed 0001_create_exam_forms.sql
var createFormsSQL string

//go:embed 0002_create_exam_results.sql
var createResultsSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.Add(migrate.Migration{
		Name: "20241122010000",
		Up: func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createFormsSQL)
			return err
		},
		Down: func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS exam_forms`)
			return err
		},
	})
	Migrations.Add(migrate.Migration{
		Name: "20241122020000",
		Up: func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createResultsSQL)
			return err
		},
		Down: func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS exam_results`)
			return err
		},
	})
	Migrations.Add(migrate.Migration{
		Name: "20241122030000",
		Up:   seedForms,
		Down: func(ctx context.Context, db *bun.DB) error {
			ids := make([]string, 0, len(content.Forms()))
			for _, f := range content.Forms() {
				ids = append(ids, f.ID)
			}
			_, err := db.ExecContext(ctx, `DELETE FROM exam_forms WHERE id IN (?)`, bun.In(ids))
			return err
		},
	})
}

// seedForms loads the built-in practice forms; existing rows are kept.
func seedForms(ctx context.Context, db *bun.DB) error {
	for _, form := range content.Forms() {
		raw, err := json.Marshal(form)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx, `
			INSERT INTO exam_forms (id, part, title, duration_seconds, data)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO NOTHING`,
			form.ID, form.Part, form.Title, form.DurationSeconds, string(raw))
		if err != nil {
			return err
		}
	}
	return nil
}
