package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"painting_estimator_backend/internal/catalog/index"
	"painting_estimator_backend/internal/shared/surface"
	"painting_estimator_backend/platform/validator"
)

// Repo reads and replaces catalog tasks in Postgres.
type Repo struct {
	pool *pgxpool.Pool
	val  *validator.Validator
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool, val *validator.Validator) *Repo {
	return &Repo{pool: pool, val: val}
}

// Compile-time check that Repo implements Source.
var _ Source = (*Repo)(nil)

// Load returns the active tasks in sort order.
func (r *Repo) Load(ctx context.Context) ([]index.Record, error) {
	query := `
		SELECT id, name, unit, labor_norm_per_unit, material_price_per_unit,
			price_per_unit, default_layers, surface, synonyms, markup_pct, prep_required
		FROM catalog_tasks
		WHERE active
		ORDER BY sort_order, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog tasks: %w", err)
	}
	defer rows.Close()

	records := make([]index.Record, 0)
	for rows.Next() {
		var rec index.Record
		var unit, surf string
		if err := rows.Scan(
			&rec.ID, &rec.Name, &unit, &rec.LaborNormPerUnit, &rec.MaterialPricePerUnit,
			&rec.PricePerUnit, &rec.DefaultLayers, &surf, &rec.Synonyms, &rec.MarkupPct, &rec.PrepRequired,
		); err != nil {
			return nil, fmt.Errorf("scan catalog task: %w", err)
		}
		rec.Unit = index.Unit(unit)
		rec.Surface = surface.Type(surf)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog tasks: %w", err)
	}

	return normalizeRecords(records, r.val)
}

// Replace swaps the whole catalog for records in one transaction. Records
// keep their slice order as sort order.
func (r *Repo) Replace(ctx context.Context, records []index.Record) error {
	records, err := normalizeRecords(records, r.val)
	if err != nil {
		return err
	}
	if _, err := index.NewIndex(records); err != nil {
		return fmt.Errorf("validate catalog: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM catalog_tasks`); err != nil {
			return fmt.Errorf("clear catalog tasks: %w", err)
		}

		insert := `
			INSERT INTO catalog_tasks (id, name, unit, labor_norm_per_unit, material_price_per_unit,
				price_per_unit, default_layers, surface, synonyms, markup_pct, prep_required, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

		batch := &pgx.Batch{}
		for i, rec := range records {
			batch.Queue(insert,
				rec.ID, rec.Name, string(rec.Unit), rec.LaborNormPerUnit, rec.MaterialPricePerUnit,
				rec.PricePerUnit, rec.DefaultLayers, string(rec.Surface), rec.Synonyms, rec.MarkupPct,
				rec.PrepRequired, i,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert catalog tasks: %w", err)
		}
		return nil
	})
}
