package transport

import (
	"time"

	"github.com/google/uuid"
)

// Section keys in presentation order.
const (
	SectionPreparation = "preparation"
	SectionPainting    = "painting"
	SectionFinishing   = "finishing"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// DoorInput is one door opening. Unset dimensions fall back to a standard door.
type DoorInput struct {
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Sides  *int     `json:"sides,omitempty" validate:"omitempty,min=1,max=2"`
}

// WindowInput is one window opening.
type WindowInput struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WardrobeInput is a built-in wardrobe run covering part of a wall.
// Height defaults to the room height and CoveragePct to 100.
type WardrobeInput struct {
	Length      float64  `json:"length"`
	Height      *float64 `json:"height,omitempty"`
	CoveragePct *float64 `json:"coveragePct,omitempty"`
}

// RoomInput is the geometry of one room in meters.
type RoomInput struct {
	Name      string          `json:"name" validate:"max=200"`
	Width     float64         `json:"width"`
	Length    float64         `json:"length"`
	Height    float64         `json:"height"`
	Doors     []DoorInput     `json:"doors" validate:"max=50,dive"`
	Windows   []WindowInput   `json:"windows" validate:"max=50"`
	Wardrobes []WardrobeInput `json:"wardrobes" validate:"max=50"`
}

// TaskInput is one task phrase to price. SpokenLayers carries a layer count
// parsed from speech; the override fields win over everything else.
type TaskInput struct {
	Phrase           string   `json:"phrase" validate:"required,max=500"`
	SpokenLayers     int      `json:"spokenLayers,omitempty" validate:"min=0,max=10"`
	LayersOverride   *int     `json:"layersOverride,omitempty" validate:"omitempty,min=1,max=10"`
	QuantityOverride *float64 `json:"quantityOverride,omitempty" validate:"omitempty,gte=0"`
}

// EstimateRequest is the request body for computing an estimate directly.
type EstimateRequest struct {
	Room  RoomInput   `json:"room"`
	Tasks []TaskInput `json:"tasks" validate:"required,min=1,max=100,dive"`
}

// SessionEstimateRequest optionally refines an estimate computed from a session.
type SessionEstimateRequest struct {
	Windows   []WindowInput   `json:"windows,omitempty" validate:"max=50"`
	Wardrobes []WardrobeInput `json:"wardrobes,omitempty" validate:"max=50"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// RoomCalculation holds derived areas in m² and the perimeter in meters, each
// rounded to one decimal.
type RoomCalculation struct {
	WallsGross     float64 `json:"wallsGross"`
	WallsNet       float64 `json:"wallsNet"`
	CeilingGross   float64 `json:"ceilingGross"`
	CeilingNet     float64 `json:"ceilingNet"`
	FloorGross     float64 `json:"floorGross"`
	FloorNet       float64 `json:"floorNet"`
	DoorsArea      float64 `json:"doorsArea"`
	WindowsArea    float64 `json:"windowsArea"`
	OpeningsTotal  float64 `json:"openingsTotal"`
	WardrobesTotal float64 `json:"wardrobesTotal"`
	Perimeter      float64 `json:"perimeter"`
}

// LineItem is one priced catalog task. Money is in öre.
type LineItem struct {
	CatalogID      string  `json:"catalogId"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	Phrase         string  `json:"phrase"`
	Layers         int     `json:"layers"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unitPriceCents"`
	SubtotalCents  int64   `json:"subtotalCents"`
	Confidence     float64 `json:"confidence"`
}

// Section groups line items of one kind of work.
type Section struct {
	Key           string     `json:"key"`
	Title         string     `json:"title"`
	Items         []LineItem `json:"items"`
	SubtotalCents int64      `json:"subtotalCents"`
}

// Totals are summed from raw labor and material components, not backed out of
// marked-up line subtotals.
type Totals struct {
	LaborCents      int64 `json:"laborCents"`
	MaterialCents   int64 `json:"materialCents"`
	MarkupCents     int64 `json:"markupCents"`
	GrandTotalCents int64 `json:"grandTotalCents"`
}

// Estimate is the priced result for one room.
type Estimate struct {
	ID                uuid.UUID       `json:"id"`
	SessionID         *uuid.UUID      `json:"sessionId,omitempty"`
	ClientName        string          `json:"clientName,omitempty"`
	ProjectName       string          `json:"projectName,omitempty"`
	RoomName          string          `json:"roomName,omitempty"`
	Room              RoomCalculation `json:"room"`
	Sections          []Section       `json:"sections"`
	Totals            Totals          `json:"totals"`
	TaxDeductionCents int64           `json:"taxDeductionCents"`
	Warnings          []string        `json:"warnings"`
	UnmappedPhrases   []string        `json:"unmappedPhrases"`
	ComputedAt        time.Time       `json:"computedAt"`
}

// PricingResponse exposes the rates in effect. Amounts are in kronor.
type PricingResponse struct {
	LaborPricePerHour float64 `json:"laborPricePerHour"`
	GlobalMarkupPct   float64 `json:"globalMarkupPct"`
	ROTRate           float64 `json:"rotRate"`
	ROTCap            float64 `json:"rotCap"`
	MinConfidence     float64 `json:"minConfidence"`
}
