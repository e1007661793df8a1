package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/catalog/index"
	"painting_estimator_backend/internal/estimates/transport"
	"painting_estimator_backend/internal/shared/surface"
)

// Pricing holds the rates applied to catalog records. Amounts are in kronor.
type Pricing struct {
	LaborPricePerHour float64
	GlobalMarkupPct   float64
	ROTRate           float64
	ROTCap            float64
	// MinConfidence is the mapping confidence below which a line gets a warning.
	MinConfidence float64
}

// DefaultPricing returns the documented defaults.
func DefaultPricing() Pricing {
	return Pricing{
		LaborPricePerHour: 500,
		GlobalMarkupPct:   10,
		ROTRate:           0.30,
		ROTCap:            50000,
		MinConfidence:     index.ConfidenceExact,
	}
}

var sectionTitles = map[string]string{
	transport.SectionPreparation: "Förarbete",
	transport.SectionPainting:    "Målning",
	transport.SectionFinishing:   "Ytbehandling",
}

var sectionOrder = []string{transport.SectionPreparation, transport.SectionPainting, transport.SectionFinishing}

var (
	preparationMarkers = []string{"spackl", "slip", "grund"}
	finishingMarkers   = []string{"lack", "fernis", "lasyr", "laser"}
)

// roundCents converts kronor to the nearest öre.
func roundCents(kr float64) int64 {
	return int64(math.Round(kr * 100))
}

// roundQuantity keeps two decimals on billed quantities.
func roundQuantity(v float64) float64 {
	return math.Round(v*100) / 100
}

// sectionFor places a record in preparation, finishing or painting.
func sectionFor(rec index.Record) string {
	if rec.PrepRequired {
		return transport.SectionPreparation
	}
	text := strings.ToLower(rec.ID + " " + rec.Name)
	for _, m := range preparationMarkers {
		if strings.Contains(text, m) {
			return transport.SectionPreparation
		}
	}
	for _, m := range finishingMarkers {
		if strings.Contains(text, m) {
			return transport.SectionFinishing
		}
	}
	return transport.SectionPainting
}

// resolveLayers picks override, then spoken count, then the record default, then 1.
func resolveLayers(task transport.TaskInput, rec index.Record) int {
	switch {
	case task.LayersOverride != nil && *task.LayersOverride > 0:
		return *task.LayersOverride
	case task.SpokenLayers > 0:
		return task.SpokenLayers
	case rec.DefaultLayers != nil && *rec.DefaultLayers > 0:
		return *rec.DefaultLayers
	}
	return 1
}

// baseQuantity selects the room measure a record is billed against, before layers.
func baseQuantity(rec index.Record, calc transport.RoomCalculation) float64 {
	switch rec.Unit {
	case index.UnitCount:
		return 1
	case index.UnitLinear:
		switch rec.Surface {
		case surface.Door, surface.Window:
			return 0
		}
		return calc.Perimeter
	}
	switch rec.Surface {
	case surface.Ceiling:
		return calc.CeilingNet
	case surface.Floor:
		return calc.FloorNet
	case surface.Door:
		return calc.DoorsArea
	case surface.Window:
		return calc.WindowsArea
	case surface.Trim:
		return 0
	}
	return calc.WallsNet
}

// quantityFor returns the billed quantity and the layer count applied to it.
// Count units are not multiplied by layers.
func quantityFor(task transport.TaskInput, rec index.Record, calc transport.RoomCalculation) (float64, int) {
	if rec.Unit == index.UnitCount {
		if task.QuantityOverride != nil {
			return roundQuantity(*task.QuantityOverride), 1
		}
		return 1, 1
	}
	layers := resolveLayers(task, rec)
	base := baseQuantity(rec, calc)
	if task.QuantityOverride != nil {
		base = *task.QuantityOverride
	}
	return roundQuantity(base * float64(layers)), layers
}

// unitComponents returns labor and material per unit in kronor, before markup.
// A fixed price per unit replaces the labor norm and is counted as labor.
func unitComponents(rec index.Record, pricing Pricing) (float64, float64) {
	labor := rec.LaborNormPerUnit * pricing.LaborPricePerHour
	if rec.PricePerUnit != nil {
		labor = *rec.PricePerUnit
	}
	return labor, rec.MaterialPricePerUnit
}

func markupPct(rec index.Record, pricing Pricing) float64 {
	if rec.MarkupPct != nil {
		return *rec.MarkupPct
	}
	return pricing.GlobalMarkupPct
}

// ComputeEstimate prices tasks against the catalog for one room. Invalid
// geometry is the only error; unmapped, low-confidence and zero-quantity
// tasks are reported through Warnings and UnmappedPhrases.
func ComputeEstimate(room transport.RoomInput, tasks []transport.TaskInput, catalog *index.Index, pricing Pricing) (transport.Estimate, error) {
	calc, err := CalculateRoom(room)
	if err != nil {
		return transport.Estimate{}, err
	}

	mapper := index.NewMapper(catalog)
	items := make(map[string][]transport.LineItem, len(sectionOrder))
	warnings := []string{}
	unmapped := []string{}
	var laborTotal, materialTotal, markupTotal float64

	for _, task := range tasks {
		match := mapper.Resolve(task.Phrase)
		if !match.Found() {
			unmapped = append(unmapped, task.Phrase)
			warnings = append(warnings, fmt.Sprintf("Ingen katalogpost matchar %q", task.Phrase))
			continue
		}
		rec := *match.Record
		if match.Confidence < pricing.MinConfidence {
			warnings = append(warnings, fmt.Sprintf("Osäker matchning: %q tolkades som %q (säkerhet %.1f)", task.Phrase, rec.Name, match.Confidence))
		}

		qty, layers := quantityFor(task, rec, calc)
		if qty <= 0 {
			warnings = append(warnings, fmt.Sprintf("%q hoppades över: ingen mängd för ytan", rec.Name))
			continue
		}

		laborUnit, materialUnit := unitComponents(rec, pricing)
		pct := markupPct(rec, pricing)
		unitPrice := (laborUnit + materialUnit) * (1 + pct/100)

		laborTotal += laborUnit * qty
		materialTotal += materialUnit * qty
		markupTotal += (laborUnit + materialUnit) * qty * pct / 100

		key := sectionFor(rec)
		items[key] = append(items[key], transport.LineItem{
			CatalogID:      rec.ID,
			Name:           rec.Name,
			Unit:           string(rec.Unit),
			Phrase:         task.Phrase,
			Layers:         layers,
			Quantity:       qty,
			UnitPriceCents: roundCents(unitPrice),
			SubtotalCents:  roundCents(unitPrice * qty),
			Confidence:     match.Confidence,
		})
	}

	sections := make([]transport.Section, 0, len(sectionOrder))
	for _, key := range sectionOrder {
		if len(items[key]) == 0 {
			continue
		}
		var subtotal int64
		for _, li := range items[key] {
			subtotal += li.SubtotalCents
		}
		sections = append(sections, transport.Section{
			Key:           key,
			Title:         sectionTitles[key],
			Items:         items[key],
			SubtotalCents: subtotal,
		})
	}

	totals := transport.Totals{
		LaborCents:    roundCents(laborTotal),
		MaterialCents: roundCents(materialTotal),
		MarkupCents:   roundCents(markupTotal),
	}
	totals.GrandTotalCents = totals.LaborCents + totals.MaterialCents + totals.MarkupCents

	return transport.Estimate{
		ID:                uuid.New(),
		RoomName:          room.Name,
		Room:              calc,
		Sections:          sections,
		Totals:            totals,
		TaxDeductionCents: roundCents(taxDeduction(laborTotal, pricing)),
		Warnings:          warnings,
		UnmappedPhrases:   unmapped,
		ComputedAt:        time.Now().UTC(),
	}, nil
}

// taxDeduction is the informational ROT estimate: a share of labor, capped.
func taxDeduction(labor float64, pricing Pricing) float64 {
	return math.Min(labor*pricing.ROTRate, pricing.ROTCap)
}
