// Package repository loads catalog records from a YAML file or from Postgres.
// Both sources hand validated records to index.NewIndex; neither is consulted
// again after startup.
package repository

import (
	"context"
	"fmt"
	"strings"

	"painting_estimator_backend/internal/catalog/index"
	"painting_estimator_backend/internal/shared/surface"
	"painting_estimator_backend/platform/validator"
)

// Source loads the full list of catalog records.
type Source interface {
	Load(ctx context.Context) ([]index.Record, error)
}

// normalizeRecords trims identifiers, maps surface aliases to canonical
// values and validates every record. The first failure is returned.
func normalizeRecords(records []index.Record, val *validator.Validator) ([]index.Record, error) {
	out := make([]index.Record, 0, len(records))
	for i, r := range records {
		r.ID = strings.TrimSpace(r.ID)
		r.Name = strings.TrimSpace(r.Name)
		r.Unit = index.Unit(strings.ToLower(strings.TrimSpace(string(r.Unit))))
		if raw := strings.TrimSpace(string(r.Surface)); raw != "" {
			parsed := surface.Parse(raw)
			if parsed == surface.Unknown {
				return nil, fmt.Errorf("catalog record %d (%s): unknown surface %q", i, r.ID, raw)
			}
			r.Surface = parsed
		}
		if err := val.Struct(r); err != nil {
			return nil, fmt.Errorf("catalog record %d (%s): %w", i, r.ID, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// LoadIndex loads records from src and builds the index.
func LoadIndex(ctx context.Context, src Source) (*index.Index, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	ix, err := index.NewIndex(records)
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}
	return ix, nil
}
