package service

import (
	"fmt"
	"math"

	"painting_estimator_backend/internal/estimates/transport"
	"painting_estimator_backend/platform/apperr"
)

// Standard opening sizes in meters.
const (
	StandardDoorWidth    = 0.9
	StandardDoorHeight   = 2.1
	StandardWindowWidth  = 1.2
	StandardWindowHeight = 1.2
)

// round1 rounds to one decimal. Only applied to exposed values.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ValidateRoom lists every problem with the room geometry. An empty result
// means the room can be calculated.
func ValidateRoom(room transport.RoomInput) []apperr.Violation {
	var out []apperr.Violation
	add := func(field, reason string) {
		out = append(out, apperr.Violation{Field: field, Reason: reason})
	}

	if !(room.Width > 0) {
		add("width", "must be greater than 0")
	}
	if !(room.Length > 0) {
		add("length", "must be greater than 0")
	}
	if !(room.Height > 0) {
		add("height", "must be greater than 0")
	}
	for i, d := range room.Doors {
		if d.Width != nil && !(*d.Width > 0) {
			add(fmt.Sprintf("doors[%d].width", i), "must be greater than 0")
		}
		if d.Height != nil && !(*d.Height > 0) {
			add(fmt.Sprintf("doors[%d].height", i), "must be greater than 0")
		}
		if d.Sides != nil && (*d.Sides < 1 || *d.Sides > 2) {
			add(fmt.Sprintf("doors[%d].sides", i), "must be 1 or 2")
		}
	}
	for i, w := range room.Windows {
		if !(w.Width > 0) {
			add(fmt.Sprintf("windows[%d].width", i), "must be greater than 0")
		}
		if !(w.Height > 0) {
			add(fmt.Sprintf("windows[%d].height", i), "must be greater than 0")
		}
	}
	for i, w := range room.Wardrobes {
		if !(w.Length > 0) {
			add(fmt.Sprintf("wardrobes[%d].length", i), "must be greater than 0")
		}
		if w.Height != nil && !(*w.Height > 0) {
			add(fmt.Sprintf("wardrobes[%d].height", i), "must be greater than 0")
		}
		if w.CoveragePct != nil && !(*w.CoveragePct > 0 && *w.CoveragePct <= 100) {
			add(fmt.Sprintf("wardrobes[%d].coveragePct", i), "must be within (0, 100]")
		}
	}
	return out
}

// WallsGross is 2·(width+length)·height.
func WallsGross(room transport.RoomInput) float64 {
	return Perimeter(room) * room.Height
}

// Perimeter is 2·(width+length).
func Perimeter(room transport.RoomInput) float64 {
	return 2 * (room.Width + room.Length)
}

// CeilingGross is width·length; the floor has the same area.
func CeilingGross(room transport.RoomInput) float64 {
	return room.Width * room.Length
}

// DoorsArea sums width·height·sides over the doors.
func DoorsArea(doors []transport.DoorInput) float64 {
	var total float64
	for _, d := range doors {
		w, h, sides := StandardDoorWidth, StandardDoorHeight, 1
		if d.Width != nil {
			w = *d.Width
		}
		if d.Height != nil {
			h = *d.Height
		}
		if d.Sides != nil {
			sides = *d.Sides
		}
		total += w * h * float64(sides)
	}
	return total
}

// WindowsArea sums width·height over the windows.
func WindowsArea(windows []transport.WindowInput) float64 {
	var total float64
	for _, w := range windows {
		total += w.Width * w.Height
	}
	return total
}

// OpeningsTotal is the door and window deduction.
func OpeningsTotal(room transport.RoomInput) float64 {
	return DoorsArea(room.Doors) + WindowsArea(room.Windows)
}

// WardrobesTotal sums length·height·coverage/100, with height defaulting to
// the room height and coverage to 100%.
func WardrobesTotal(room transport.RoomInput) float64 {
	var total float64
	for _, w := range room.Wardrobes {
		h, pct := room.Height, 100.0
		if w.Height != nil {
			h = *w.Height
		}
		if w.CoveragePct != nil {
			pct = *w.CoveragePct
		}
		total += w.Length * h * pct / 100
	}
	return total
}

// WallsNet is the gross wall area less openings and wardrobes, never below zero.
func WallsNet(room transport.RoomInput) float64 {
	return math.Max(0, WallsGross(room)-OpeningsTotal(room)-WardrobesTotal(room))
}

// CalculateRoom validates the room and derives all areas. Intermediate values
// keep full precision; each exposed value is rounded to one decimal.
func CalculateRoom(room transport.RoomInput) (transport.RoomCalculation, error) {
	if violations := ValidateRoom(room); len(violations) > 0 {
		return transport.RoomCalculation{}, apperr.Validation("invalid room geometry").
			WithOp("estimates.CalculateRoom").
			WithDetails(violations)
	}

	ceiling := CeilingGross(room)
	return transport.RoomCalculation{
		WallsGross:     round1(WallsGross(room)),
		WallsNet:       round1(WallsNet(room)),
		CeilingGross:   round1(ceiling),
		CeilingNet:     round1(ceiling),
		FloorGross:     round1(ceiling),
		FloorNet:       round1(ceiling),
		DoorsArea:      round1(DoorsArea(room.Doors)),
		WindowsArea:    round1(WindowsArea(room.Windows)),
		OpeningsTotal:  round1(OpeningsTotal(room)),
		WardrobesTotal: round1(WardrobesTotal(room)),
		Perimeter:      round1(Perimeter(room)),
	}, nil
}
