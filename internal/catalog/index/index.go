// Package index holds the immutable in-memory task catalog and the guarded
// mapper that resolves spoken task phrases against it. Nothing here performs
// I/O; loaders in the repository package build Records and hand them over.
package index

import (
	"errors"
	"fmt"
	"strings"

	"painting_estimator_backend/internal/shared/surface"
)

// Unit is the unit of measure a task is billed in.
type Unit string

const (
	UnitArea   Unit = "m2"
	UnitLinear Unit = "lm"
	UnitCount  Unit = "st"
)

// SynonymSeparator splits Record.Synonyms.
const SynonymSeparator = ";"

// Record is one permitted catalog task.
type Record struct {
	ID                   string       `json:"id" yaml:"id" validate:"required,max=64"`
	Name                 string       `json:"name" yaml:"name" validate:"required,max=200"`
	Unit                 Unit         `json:"unit" yaml:"unit" validate:"required,oneof=m2 lm st"`
	LaborNormPerUnit     float64      `json:"laborNormPerUnit" yaml:"labor_norm_per_unit" validate:"gte=0"`
	MaterialPricePerUnit float64      `json:"materialPricePerUnit" yaml:"material_price_per_unit" validate:"gte=0"`
	PricePerUnit         *float64     `json:"pricePerUnit,omitempty" yaml:"price_per_unit" validate:"omitempty,gte=0"`
	DefaultLayers        *int         `json:"defaultLayers,omitempty" yaml:"default_layers" validate:"omitempty,gte=1,lte=10"`
	Surface              surface.Type `json:"surface,omitempty" yaml:"surface" validate:"omitempty,oneof=wall ceiling floor door window trim"`
	Synonyms             string       `json:"synonyms,omitempty" yaml:"synonyms"`
	MarkupPct            *float64     `json:"markupPct,omitempty" yaml:"markup_pct" validate:"omitempty,gte=0,lte=100"`
	PrepRequired         bool         `json:"prepRequired" yaml:"prep_required"`
}

// SynonymList returns the normalized, non-empty synonyms of r.
func (r Record) SynonymList() []string {
	parts := strings.Split(r.Synonyms, SynonymSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := Normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Normalize lowercases, trims and collapses inner whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ErrDuplicateID is returned when two records share an identifier.
var ErrDuplicateID = errors.New("duplicate catalog id")

// ErrEmptyID is returned for a record without an identifier.
var ErrEmptyID = errors.New("catalog record without id")

// Index is the read-only catalog. It is safe for concurrent use because it
// never changes after NewIndex returns.
type Index struct {
	records   []Record
	byID      map[string]int
	byPhrase  map[string][]int
	bySurface map[surface.Type][]int
}

// NewIndex builds the lookup structures over records. Records are copied.
func NewIndex(records []Record) (*Index, error) {
	ix := &Index{
		records:   make([]Record, len(records)),
		byID:      make(map[string]int, len(records)),
		byPhrase:  make(map[string][]int),
		bySurface: make(map[surface.Type][]int),
	}
	copy(ix.records, records)

	for i, r := range ix.records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrEmptyID)
		}
		key := strings.ToLower(id)
		if _, exists := ix.byID[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		ix.byID[key] = i

		phrases := append([]string{Normalize(r.Name)}, r.SynonymList()...)
		seen := make(map[string]bool, len(phrases))
		for _, p := range phrases {
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			ix.byPhrase[p] = append(ix.byPhrase[p], i)
		}
		if r.Surface != surface.Unknown {
			ix.bySurface[r.Surface] = append(ix.bySurface[r.Surface], i)
		}
	}
	return ix, nil
}

// Len returns the number of records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Records returns a copy of all records in load order.
func (ix *Index) Records() []Record {
	out := make([]Record, len(ix.records))
	copy(out, ix.records)
	return out
}

// Get returns the record with the given id, case-insensitively.
func (ix *Index) Get(id string) (Record, bool) {
	i, ok := ix.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Record{}, false
	}
	return ix.records[i], true
}

// Contains reports whether id belongs to the catalog.
func (ix *Index) Contains(id string) bool {
	_, ok := ix.Get(id)
	return ok
}

// LookupPhrase returns the records whose name or synonym equals phrase after normalization.
func (ix *Index) LookupPhrase(phrase string) []Record {
	return ix.collect(ix.byPhrase[Normalize(phrase)])
}

// BySurface returns the records tagged with surface t.
func (ix *Index) BySurface(t surface.Type) []Record {
	return ix.collect(ix.bySurface[t])
}

func (ix *Index) collect(positions []int) []Record {
	if len(positions) == 0 {
		return nil
	}
	out := make([]Record, 0, len(positions))
	for _, i := range positions {
		out = append(out, ix.records[i])
	}
	return out
}
